package services

import (
	"context"
	"errors"
	"time"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"github.com/sortelabs/bolao-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// GameService handles game configuration and lifecycle
type GameService interface {
	CreateGame(ctx context.Context, input *CreateGameInput) (*models.Game, error)
	UpdateGame(ctx context.Context, id string, input *UpdateGameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id string) (*models.Game, error)
	GetGameBySlug(ctx context.Context, slug string) (*models.Game, error)
	ListGames(ctx context.Context, page, limit int) ([]*models.Game, error)
	ListVisibleGames(ctx context.Context, page, limit int) ([]*models.Game, error)
	CloseExpiredGames(ctx context.Context, now time.Time) (int, error)
	OpenUpcomingGames(ctx context.Context, now time.Time) (int, error)
}

// Compile-time check to ensure GameServiceImpl implements GameService
var _ GameService = (*GameServiceImpl)(nil)

// GameServiceImpl handles game-related business logic
type GameServiceImpl struct {
	gameRepo repositories.GameRepository
}

// NewGameService creates a new GameServiceImpl
func NewGameService(gameRepo repositories.GameRepository) *GameServiceImpl {
	return &GameServiceImpl{gameRepo: gameRepo}
}

// CreateGameInput carries the fields an administrator sets on a new game
type CreateGameInput struct {
	Name        string
	Type        models.GameType
	StartDate   time.Time
	EndDate     time.Time
	TicketPrice string
	PrizePool   string
	MinNumbers  int
	MaxNumbers  int
	Visible     bool
}

// UpdateGameInput carries the mutable fields of an existing game
type UpdateGameInput struct {
	Name        string
	EndDate     time.Time
	TicketPrice string
	PrizePool   string
	Visible     *bool
}

// CreateGame validates and persists a new game in EM_BREVE or ABERTO state
// depending on its start date.
func (s *GameServiceImpl) CreateGame(ctx context.Context, input *CreateGameInput) (*models.Game, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("nome is required")
	}
	if input.Type != models.GameTypeBolao && input.Type != models.GameTypeBicho {
		return nil, apperrors.Validation("tipo must be BOLAO or BICHO")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.Validation("dataFim must be after dataInicio")
	}
	if input.Type == models.GameTypeBolao {
		if input.MinNumbers <= 0 || input.MaxNumbers < input.MinNumbers {
			return nil, apperrors.Validation("invalid number count constraints")
		}
	}
	if _, err := utils.ParseMoney(input.TicketPrice); err != nil {
		return nil, apperrors.Validation("invalid valorBilhete")
	}
	if _, err := utils.ParseMoney(input.PrizePool); err != nil {
		return nil, apperrors.Validation("invalid premioTotal")
	}

	status := models.GameStatusUpcoming
	if !input.StartDate.After(time.Now()) {
		status = models.GameStatusOpen
	}

	game := &models.Game{
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Type:        input.Type,
		Status:      status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		TicketPrice: input.TicketPrice,
		PrizePool:   input.PrizePool,
		MinNumbers:  input.MinNumbers,
		MaxNumbers:  input.MaxNumbers,
		Visible:     input.Visible,
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, apperrors.Dependency("create game", err)
	}

	slog.Info("game created", "gameId", game.ID.Hex(), "slug", game.Slug, "type", game.Type)
	return game, nil
}

// UpdateGame applies an administrator's edits. Finalized games are
// immutable.
func (s *GameServiceImpl) UpdateGame(ctx context.Context, id string, input *UpdateGameInput) (*models.Game, error) {
	game, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Status == models.GameStatusFinalized {
		return nil, apperrors.Validation("finalized games cannot be edited")
	}

	if input.Name != "" {
		game.Name = input.Name
	}
	if !input.EndDate.IsZero() {
		game.EndDate = input.EndDate
	}
	if input.TicketPrice != "" {
		if _, err := utils.ParseMoney(input.TicketPrice); err != nil {
			return nil, apperrors.Validation("invalid valorBilhete")
		}
		game.TicketPrice = input.TicketPrice
	}
	if input.PrizePool != "" {
		if _, err := utils.ParseMoney(input.PrizePool); err != nil {
			return nil, apperrors.Validation("invalid premioTotal")
		}
		game.PrizePool = input.PrizePool
	}
	if input.Visible != nil {
		game.Visible = *input.Visible
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, apperrors.Dependency("update game", err)
	}
	return game, nil
}

// GetGameByID retrieves a game by its hex id
func (s *GameServiceImpl) GetGameByID(ctx context.Context, id string) (*models.Game, error) {
	return s.getByID(ctx, id)
}

func (s *GameServiceImpl) getByID(ctx context.Context, id string) (*models.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("invalid game id")
	}
	game, err := s.gameRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("game", id)
		}
		return nil, apperrors.Dependency("find game", err)
	}
	return game, nil
}

// GetGameBySlug retrieves a game by its public slug
func (s *GameServiceImpl) GetGameBySlug(ctx context.Context, slug string) (*models.Game, error) {
	game, err := s.gameRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("game", slug)
		}
		return nil, apperrors.Dependency("find game", err)
	}
	return game, nil
}

// ListGames lists all games with pagination
func (s *GameServiceImpl) ListGames(ctx context.Context, page, limit int) ([]*models.Game, error) {
	games, err := s.gameRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Dependency("list games", err)
	}
	return games, nil
}

// ListVisibleGames lists the games shown on the public site
func (s *GameServiceImpl) ListVisibleGames(ctx context.Context, page, limit int) ([]*models.Game, error) {
	games, err := s.gameRepo.FindVisible(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Dependency("list games", err)
	}
	return games, nil
}

const gamePageSize = 100

// CloseExpiredGames sweeps every ABERTO game and flips those past their end
// date to ENCERRADO. One game failing does not stop the sweep. Returns the
// number of games closed.
func (s *GameServiceImpl) CloseExpiredGames(ctx context.Context, now time.Time) (int, error) {
	return s.sweep(ctx, models.GameStatusOpen, models.GameStatusClosed, func(g *models.Game) bool {
		return g.EndDate.Before(now)
	})
}

// OpenUpcomingGames sweeps EM_BREVE games and opens those whose start date
// arrived.
func (s *GameServiceImpl) OpenUpcomingGames(ctx context.Context, now time.Time) (int, error) {
	return s.sweep(ctx, models.GameStatusUpcoming, models.GameStatusOpen, func(g *models.Game) bool {
		return !g.StartDate.After(now)
	})
}

func (s *GameServiceImpl) sweep(ctx context.Context, from, to models.GameStatus, due func(*models.Game) bool) (int, error) {
	// Collect every page before mutating: the status flips would shift the
	// pagination underneath the loop otherwise.
	var games []*models.Game
	for page := 1; ; page++ {
		batch, err := s.gameRepo.FindByStatus(ctx, from, page, gamePageSize)
		if err != nil {
			return 0, apperrors.Dependency("sweep games", err)
		}
		games = append(games, batch...)
		if len(batch) < gamePageSize {
			break
		}
	}

	transitioned := 0
	for _, game := range games {
		if !due(game) {
			continue
		}
		ok, err := s.gameRepo.UpdateStatusIf(ctx, game.ID, from, to)
		if err != nil {
			slog.Error("failed to transition game", "error", err, "gameId", game.ID.Hex(), "from", from, "to", to)
			continue
		}
		if ok {
			transitioned++
			slog.Info("game transitioned", "gameId", game.ID.Hex(), "from", from, "to", to)
		}
	}
	return transitioned, nil
}
