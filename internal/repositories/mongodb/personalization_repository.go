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

// PersonalizationRepository implements the
// repositories.PersonalizationRepository interface
type PersonalizationRepository struct {
	collection *mongo.Collection
}

// NewPersonalizationRepository creates a new PersonalizationRepository
func NewPersonalizationRepository(db *mongo.Database) repositories.PersonalizationRepository {
	return &PersonalizationRepository{
		collection: db.Collection("personalizacao"),
	}
}

// FindByKey finds a layout document by key
func (r *PersonalizationRepository) FindByKey(ctx context.Context, key string) (*models.Personalization, error) {
	var p models.Personalization
	err := r.collection.FindOne(ctx, bson.M{"chave": key}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertByKey writes a layout document by key, creating it if absent
func (r *PersonalizationRepository) UpsertByKey(ctx context.Context, key string, values map[string]string, updatedBy string) error {
	update := bson.M{
		"$set": bson.M{
			"valores":       values,
			"atualizadoPor": updatedBy,
			"updatedAt":     time.Now(),
		},
		"$setOnInsert": bson.M{
			"chave":     key,
			"createdAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"chave": key}, update, opts)
	return err
}
