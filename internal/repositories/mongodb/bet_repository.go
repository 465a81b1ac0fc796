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

// BetRepository implements the repositories.BetRepository interface
type BetRepository struct {
	collection *mongo.Collection
}

// NewBetRepository creates a new BetRepository
func NewBetRepository(db *mongo.Database) repositories.BetRepository {
	return &BetRepository{
		collection: db.Collection("bilhetes"),
	}
}

// Create creates a new bet
func (r *BetRepository) Create(ctx context.Context, bet *models.Bet) error {
	bet.CreatedAt = time.Now()
	bet.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, bet)
	if err != nil {
		return err
	}
	bet.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a bet by ID
func (r *BetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bet, error) {
	var bet models.Bet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bet)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// FindByGameID finds bets by game ID with pagination (game-id index)
func (r *BetRepository) FindByGameID(ctx context.Context, gameID primitive.ObjectID, page, limit int) ([]*models.Bet, error) {
	return r.find(ctx, bson.M{"jogoId": gameID}, page, limit)
}

// FindByCustomerID finds bets by customer ID with pagination
func (r *BetRepository) FindByCustomerID(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Bet, error) {
	return r.find(ctx, bson.M{"clienteId": customerID}, page, limit)
}

func (r *BetRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Bet, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bets []*models.Bet
	if err := cursor.All(ctx, &bets); err != nil {
		return nil, err
	}
	if bets == nil {
		bets = []*models.Bet{}
	}
	return bets, nil
}

// FindByPaymentRef finds the bet tied to a payment gateway reference
func (r *BetRepository) FindByPaymentRef(ctx context.Context, ref string) (*models.Bet, error) {
	var bet models.Bet
	err := r.collection.FindOne(ctx, bson.M{"referenciaPagamento": ref}).Decode(&bet)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// UpdateOutcome records the distribution outcome on a bet
func (r *BetRepository) UpdateOutcome(ctx context.Context, id primitive.ObjectID, status models.BetStatus, outcome string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":    status,
			"resultado": outcome,
			"updatedAt": time.Now(),
		}},
	)
	return err
}

// ConfirmIfPending flips PENDENTE -> CONFIRMADA and stamps the gateway's
// transaction reference. The customer-facing payment reference is left
// untouched so a duplicate delivery still resolves the same bet. Returns
// false when the bet was not pending.
func (r *BetRepository) ConfirmIfPending(ctx context.Context, id primitive.ObjectID, gatewayRef string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.BetStatusPending},
		bson.M{"$set": bson.M{
			"status":            models.BetStatusConfirmed,
			"referenciaGateway": gatewayRef,
			"updatedAt":         time.Now(),
		}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// CountByGameID counts the bets placed on a game
func (r *BetRepository) CountByGameID(ctx context.Context, gameID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"jogoId": gameID})
}
