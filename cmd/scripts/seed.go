package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sortelabs/bolao-backend/internal/config"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the database: indexes, the first superadmin account and the default
// rateio configuration. Safe to run repeatedly.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := config.GetEnv("MONGODB_DATABASE", "bolao")

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := client.Database(dbName)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := createIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if err := seedSuperAdmin(ctx, db); err != nil {
		log.Fatalf("Failed to seed superadmin: %v", err)
	}
	if err := seedRateConfig(ctx, db); err != nil {
		log.Fatalf("Failed to seed rateio configuration: %v", err)
	}

	log.Println("Seed completed")
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"jogos": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"bilhetes": {
			{Keys: bson.D{{Key: "jogoId", Value: 1}}},
			{Keys: bson.D{{Key: "clienteId", Value: 1}}},
			{Keys: bson.D{{Key: "referenciaPagamento", Value: 1}}},
		},
		"resultados": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		"ganhadores": {
			{Keys: bson.D{{Key: "resultadoId", Value: 1}, {Key: "bilheteId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "jogoId", Value: 1}}},
		},
		"clientes": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"colaboradores": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "codigoIndicacao", Value: 1}}, Options: unique},
		},
		"admins": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"financeiro_colaboradores": {
			{Keys: bson.D{{Key: "titularId", Value: 1}}},
			{Keys: bson.D{{Key: "referenciaTransacao", Value: 1}}},
		},
		"financeiro_admins": {
			{Keys: bson.D{{Key: "titularId", Value: 1}}},
			{Keys: bson.D{{Key: "referenciaTransacao", Value: 1}}},
		},
		"tentativas_login": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"personalizacao": {
			{Keys: bson.D{{Key: "chave", Value: 1}}, Options: unique},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
		log.Printf("Indexes created for %s", collection)
	}
	return nil
}

func seedSuperAdmin(ctx context.Context, db *mongo.Database) error {
	email := config.GetEnv("SEED_ADMIN_EMAIL", "admin@bolao.local")
	password := config.GetEnv("SEED_ADMIN_PASSWORD", "trocar-esta-senha")

	admins := db.Collection("admins")
	count, err := admins.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Superadmin %s already exists, skipping", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = admins.InsertOne(ctx, &models.AdminUser{
		Name:      "Superadmin",
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleSuperAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	log.Printf("Superadmin %s created", email)
	return nil
}

func seedRateConfig(ctx context.Context, db *mongo.Database) error {
	configs := db.Collection("configuracao_rateio")
	count, err := configs.CountDocuments(ctx, bson.M{"chave": "rateio"})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Rateio configuration already exists, skipping")
		return nil
	}

	now := time.Now()
	_, err = configs.InsertOne(ctx, bson.M{
		"chave":                "rateio",
		"rateio_10_pontos":     50.0,
		"rateio_9_pontos":      30.0,
		"rateio_menos_pontos":  20.0,
		"comissao_colaborador": 10.0,
		"createdAt":            now,
		"updatedAt":            now,
	})
	if err != nil {
		return err
	}
	log.Println("Default rateio configuration created")
	return nil
}
