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

// The rateio configuration is a singleton document addressed by a fixed key.
const rateConfigKey = "rateio"

// RateConfigRepository implements the repositories.RateConfigRepository interface
type RateConfigRepository struct {
	collection *mongo.Collection
}

// NewRateConfigRepository creates a new RateConfigRepository
func NewRateConfigRepository(db *mongo.Database) repositories.RateConfigRepository {
	return &RateConfigRepository{
		collection: db.Collection("configuracao_rateio"),
	}
}

// Get fetches the singleton. Returns mongo.ErrNoDocuments when it was never
// provisioned; the distribution engine treats that as a configuration error.
func (r *RateConfigRepository) Get(ctx context.Context) (*models.RateConfig, error) {
	var config models.RateConfig
	err := r.collection.FindOne(ctx, bson.M{"chave": rateConfigKey}).Decode(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Upsert writes the singleton, creating it on first use
func (r *RateConfigRepository) Upsert(ctx context.Context, config *models.RateConfig) error {
	update := bson.M{
		"$set": bson.M{
			"rateio_10_pontos":     config.Rateio10Pontos,
			"rateio_9_pontos":      config.Rateio9Pontos,
			"rateio_menos_pontos":  config.RateioMenosPontos,
			"comissao_colaborador": config.ComissaoPct,
			"atualizadoPor":        config.UpdatedBy,
			"updatedAt":            time.Now(),
		},
		"$setOnInsert": bson.M{
			"chave":     rateConfigKey,
			"createdAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"chave": rateConfigKey}, update, opts)
	return err
}
