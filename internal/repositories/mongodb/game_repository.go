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

// GameRepository implements the repositories.GameRepository interface
type GameRepository struct {
	collection *mongo.Collection
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *mongo.Database) repositories.GameRepository {
	return &GameRepository{
		collection: db.Collection("jogos"),
	}
}

// Create creates a new game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, game)
	if err != nil {
		return err
	}
	game.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a game by ID
func (r *GameRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindBySlug finds a game by its public slug
func (r *GameRepository) FindBySlug(ctx context.Context, slug string) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindByStatus finds games by status with pagination
func (r *GameRepository) FindByStatus(ctx context.Context, status models.GameStatus, page, limit int) ([]*models.Game, error) {
	return r.find(ctx, bson.M{"status": status}, page, limit)
}

// FindVisible finds games flagged for the public site with pagination
func (r *GameRepository) FindVisible(ctx context.Context, page, limit int) ([]*models.Game, error) {
	return r.find(ctx, bson.M{"visivel": true}, page, limit)
}

// FindAll finds all games with pagination
func (r *GameRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Game, error) {
	return r.find(ctx, bson.M{}, page, limit)
}

func (r *GameRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Game, error) {
	opts := options.Find().SetSort(bson.M{"dataFim": -1})
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

// Update updates a game
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	game.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": game.ID}, game)
	return err
}

// UpdateStatusIf flips the game status only when the stored status still
// matches expected. Returns false when the document was not modified.
func (r *GameRepository) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, expected, next models.GameStatus) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": expected},
		bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// SetDrawnNumbers records the drawn numbers on a finalized game
func (r *GameRepository) SetDrawnNumbers(ctx context.Context, id primitive.ObjectID, numbers []string, finalizedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"numerosSorteados": numbers,
			"finalizadoEm":     finalizedAt,
			"updatedAt":        time.Now(),
		}},
	)
	return err
}
