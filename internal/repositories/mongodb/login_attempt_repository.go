package mongodb

import (
	"context"
	"time"

	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoginAttemptRepository implements the repositories.LoginAttemptRepository
// interface. Failure counters live in the database so throttling holds
// across horizontally scaled instances.
type LoginAttemptRepository struct {
	collection *mongo.Collection
}

// NewLoginAttemptRepository creates a new LoginAttemptRepository
func NewLoginAttemptRepository(db *mongo.Database) repositories.LoginAttemptRepository {
	return &LoginAttemptRepository{
		collection: db.Collection("tentativas_login"),
	}
}

// Get fetches the counter for an email
func (r *LoginAttemptRepository) Get(ctx context.Context, email string) (*models.LoginAttempt, error) {
	var attempt models.LoginAttempt
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&attempt)
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// RecordFailure atomically increments the failure counter
func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, email string, at time.Time) error {
	update := bson.M{
		"$inc": bson.M{"falhas": 1},
		"$set": bson.M{"ultimaFalha": at, "updatedAt": time.Now()},
		"$setOnInsert": bson.M{"email": email},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update, opts)
	return err
}

// Reset clears the counter after a successful login
func (r *LoginAttemptRepository) Reset(ctx context.Context, email string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"email": email})
	return err
}
