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

// ResultRepository implements the repositories.ResultRepository interface
type ResultRepository struct {
	collection *mongo.Collection
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *mongo.Database) repositories.ResultRepository {
	return &ResultRepository{
		collection: db.Collection("resultados"),
	}
}

// Create creates a new result
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	result.CreatedAt = time.Now()
	result.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, result)
	if err != nil {
		return err
	}
	result.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a result by ID
func (r *ResultRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error) {
	var result models.Result
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByStatus finds results by status with pagination, oldest first so
// retried results are picked up before fresh ones.
func (r *ResultRepository) FindByStatus(ctx context.Context, status models.ResultStatus, page, limit int) ([]*models.Result, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*models.Result
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.Result{}
	}
	return results, nil
}

// Claim atomically flips PENDENTE -> PROCESSANDO. The status filter makes
// the update a compare-and-swap: of two overlapping workers only one sees
// ModifiedCount == 1, the other must skip the result.
func (r *ResultRepository) Claim(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.ResultStatusPending},
		bson.M{"$set": bson.M{"status": models.ResultStatusProcessing, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// Release returns a claimed result to PENDENTE so the next run retries it.
func (r *ResultRepository) Release(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.ResultStatusProcessing},
		bson.M{"$set": bson.M{"status": models.ResultStatusPending, "updatedAt": time.Now()}},
	)
	return err
}

// MarkProcessed flips a claimed result to PROCESSADO with its processing
// timestamp.
func (r *ResultRepository) MarkProcessed(ctx context.Context, id primitive.ObjectID, processedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.ResultStatusProcessing},
		bson.M{"$set": bson.M{
			"status":       models.ResultStatusProcessed,
			"processadoEm": processedAt,
			"updatedAt":    time.Now(),
		}},
	)
	return err
}
