package mongodb

import (
	"context"
	"time"

	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("ganhadores"),
	}
}

// Upsert writes a winner keyed on (resultadoId, bilheteId). A retried
// distribution run finds the row from the earlier attempt and replaces it
// instead of inserting a duplicate; the return value tells the caller
// whether the row is new.
func (r *WinnerRepository) Upsert(ctx context.Context, winner *models.Winner) (bool, error) {
	winner.CreatedAt = time.Now()
	filter := bson.M{"resultadoId": winner.ResultID, "bilheteId": winner.BetID}
	res, err := r.collection.ReplaceOne(ctx, filter, winner, options.Replace().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

// CreateMany creates winner records in bulk
func (r *WinnerRepository) CreateMany(ctx context.Context, winners []*models.Winner) error {
	if len(winners) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(winners))
	for _, w := range winners {
		w.CreatedAt = time.Now()
		docs = append(docs, w)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByResultID finds all winners of a result
func (r *WinnerRepository) FindByResultID(ctx context.Context, resultID primitive.ObjectID) ([]*models.Winner, error) {
	return r.find(ctx, bson.M{"resultadoId": resultID}, 0, 0)
}

// FindByGameID finds winners by game ID with pagination
func (r *WinnerRepository) FindByGameID(ctx context.Context, gameID primitive.ObjectID, page, limit int) ([]*models.Winner, error) {
	return r.find(ctx, bson.M{"jogoId": gameID}, page, limit)
}

// FindByCustomerID finds winners by customer ID with pagination
func (r *WinnerRepository) FindByCustomerID(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Winner, error) {
	return r.find(ctx, bson.M{"clienteId": customerID}, page, limit)
}

func (r *WinnerRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.M{"processadoEm": -1})
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	if winners == nil {
		winners = []*models.Winner{}
	}
	return winners, nil
}

// Count counts all winners
func (r *WinnerRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
