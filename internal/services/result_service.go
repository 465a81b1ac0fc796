package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"github.com/sortelabs/bolao-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// ResultService records drawn results for later prize distribution
type ResultService interface {
	Ingest(ctx context.Context, input *IngestResultInput, caller *models.TokenClaims) (*models.Result, error)
	GetResultByID(ctx context.Context, id string) (*models.Result, error)
	ListByStatus(ctx context.Context, status models.ResultStatus, page, limit int) ([]*models.Result, error)
}

// Compile-time check to ensure ResultServiceImpl implements ResultService
var _ ResultService = (*ResultServiceImpl)(nil)

// ResultServiceImpl validates and persists draw results in PENDENTE state
type ResultServiceImpl struct {
	resultRepo       repositories.ResultRepository
	gameRepo         repositories.GameRepository
	collaboratorRepo repositories.CollaboratorRepository
}

// NewResultService creates a new ResultServiceImpl
func NewResultService(
	resultRepo repositories.ResultRepository,
	gameRepo repositories.GameRepository,
	collaboratorRepo repositories.CollaboratorRepository,
) *ResultServiceImpl {
	return &ResultServiceImpl{
		resultRepo:       resultRepo,
		gameRepo:         gameRepo,
		collaboratorRepo: collaboratorRepo,
	}
}

// IngestResultInput carries a submitted draw. Either GameID or GameSlug
// identifies the game; Numbers applies to BOLAO games, Dezena+Horario to
// BICHO games.
type IngestResultInput struct {
	GameID     string
	GameSlug   string
	Numbers    []string
	Dezena     string
	Horario    string
	DrawDate   time.Time
	PrizeTotal string
}

// Ingest validates the caller and the draw and persists a PENDENTE result.
func (s *ResultServiceImpl) Ingest(ctx context.Context, input *IngestResultInput, caller *models.TokenClaims) (*models.Result, error) {
	if caller == nil || !caller.Role.CanIngestResults() {
		return nil, apperrors.Authorization("caller may not submit results")
	}

	game, err := s.resolveGame(ctx, input)
	if err != nil {
		return nil, err
	}

	if caller.Role == models.RoleColaborador {
		if err := s.checkCollaboratorGame(ctx, caller.Subject, game.ID); err != nil {
			return nil, err
		}
	}

	if input.DrawDate.IsZero() {
		return nil, apperrors.Validation("data_sorteio is required")
	}
	if _, err := utils.ParseMoney(input.PrizeTotal); err != nil {
		return nil, apperrors.Validation("invalid premio")
	}

	result := &models.Result{
		GameID:      game.ID,
		DrawDate:    input.DrawDate,
		PrizeTotal:  input.PrizeTotal,
		Status:      models.ResultStatusPending,
		SubmittedBy: caller.Subject,
	}

	switch game.Type {
	case models.GameTypeBicho:
		dezena := strings.TrimSpace(input.Dezena)
		horario := strings.TrimSpace(input.Horario)
		if !isTwoDigits(dezena) || horario == "" {
			return nil, apperrors.Validation("dezena must have 2 digits and horario is required")
		}
		result.Dezena = dezena
		result.Horario = horario
	default:
		if len(input.Numbers) == 0 {
			return nil, apperrors.Validation("numeros is required")
		}
		if len(input.Numbers) < game.MinNumbers || len(input.Numbers) > game.MaxNumbers {
			return nil, apperrors.Validation("numeros must have between %d and %d entries", game.MinNumbers, game.MaxNumbers)
		}
		numbers := make([]string, 0, len(input.Numbers))
		seen := map[string]struct{}{}
		for _, n := range input.Numbers {
			n = strings.TrimSpace(n)
			if n == "" {
				return nil, apperrors.Validation("numeros must not contain empty entries")
			}
			if _, dup := seen[n]; dup {
				return nil, apperrors.Validation("numeros must not contain duplicates")
			}
			seen[n] = struct{}{}
			numbers = append(numbers, n)
		}
		result.Numbers = numbers
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, apperrors.Dependency("create result", err)
	}

	slog.Info("result ingested", "resultId", result.ID.Hex(), "gameId", game.ID.Hex(), "submittedBy", caller.Subject)
	return result, nil
}

func isTwoDigits(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *ResultServiceImpl) resolveGame(ctx context.Context, input *IngestResultInput) (*models.Game, error) {
	if input.GameID == "" && input.GameSlug == "" {
		return nil, apperrors.Validation("jog_id or jogo_slug is required")
	}

	var game *models.Game
	var err error
	if input.GameID != "" {
		var oid primitive.ObjectID
		oid, err = primitive.ObjectIDFromHex(input.GameID)
		if err != nil {
			return nil, apperrors.Validation("invalid jog_id")
		}
		game, err = s.gameRepo.FindByID(ctx, oid)
	} else {
		game, err = s.gameRepo.FindBySlug(ctx, input.GameSlug)
	}

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			key := input.GameID
			if key == "" {
				key = input.GameSlug
			}
			return nil, apperrors.NotFound("game", key)
		}
		return nil, apperrors.Dependency("find game", err)
	}
	return game, nil
}

func (s *ResultServiceImpl) checkCollaboratorGame(ctx context.Context, collaboratorID string, gameID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(collaboratorID)
	if err != nil {
		return apperrors.Authorization("invalid collaborator identity")
	}
	collaborator, err := s.collaboratorRepo.FindByID(ctx, oid)
	if err != nil {
		return apperrors.Authorization("collaborator not found")
	}
	if !collaborator.HasGame(gameID) {
		return apperrors.Authorization("collaborator is not associated with this game")
	}
	return nil
}

// GetResultByID retrieves a result by its hex id
func (s *ResultServiceImpl) GetResultByID(ctx context.Context, id string) (*models.Result, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("invalid result id")
	}
	result, err := s.resultRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("result", id)
		}
		return nil, apperrors.Dependency("find result", err)
	}
	return result, nil
}

// ListByStatus lists results in a given status with pagination
func (s *ResultServiceImpl) ListByStatus(ctx context.Context, status models.ResultStatus, page, limit int) ([]*models.Result, error) {
	results, err := s.resultRepo.FindByStatus(ctx, status, page, limit)
	if err != nil {
		return nil, apperrors.Dependency("list results", err)
	}
	return results, nil
}
