package repositories

import (
	"context"
	"time"

	"github.com/sortelabs/bolao-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRepository defines the interface for game data operations
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
	FindBySlug(ctx context.Context, slug string) (*models.Game, error)
	FindByStatus(ctx context.Context, status models.GameStatus, page, limit int) ([]*models.Game, error)
	FindVisible(ctx context.Context, page, limit int) ([]*models.Game, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	// UpdateStatusIf flips the status only when the stored status still
	// matches expected. Returns false when another writer got there first.
	UpdateStatusIf(ctx context.Context, id primitive.ObjectID, expected, next models.GameStatus) (bool, error)
	SetDrawnNumbers(ctx context.Context, id primitive.ObjectID, numbers []string, finalizedAt time.Time) error
}

// BetRepository defines the interface for bet (ticket) data operations
type BetRepository interface {
	Create(ctx context.Context, bet *models.Bet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bet, error)
	FindByGameID(ctx context.Context, gameID primitive.ObjectID, page, limit int) ([]*models.Bet, error)
	FindByCustomerID(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Bet, error)
	FindByPaymentRef(ctx context.Context, ref string) (*models.Bet, error)
	UpdateOutcome(ctx context.Context, id primitive.ObjectID, status models.BetStatus, outcome string) error
	// ConfirmIfPending flips PENDENTE -> CONFIRMADA; false when the bet was
	// already confirmed (duplicate webhook delivery).
	ConfirmIfPending(ctx context.Context, id primitive.ObjectID, gatewayRef string) (bool, error)
	CountByGameID(ctx context.Context, gameID primitive.ObjectID) (int64, error)
}

// ResultRepository defines the interface for draw result data operations
type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error)
	FindByStatus(ctx context.Context, status models.ResultStatus, page, limit int) ([]*models.Result, error)
	// Claim atomically flips PENDENTE -> PROCESSANDO; false means another
	// worker already claimed the result and it must be skipped.
	Claim(ctx context.Context, id primitive.ObjectID) (bool, error)
	// Release returns a claimed result to PENDENTE after a failed run.
	Release(ctx context.Context, id primitive.ObjectID) error
	MarkProcessed(ctx context.Context, id primitive.ObjectID, processedAt time.Time) error
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	// Upsert writes a winner keyed on (resultadoId, bilheteId); false means
	// the row already existed from an earlier run and was left in place.
	Upsert(ctx context.Context, winner *models.Winner) (bool, error)
	CreateMany(ctx context.Context, winners []*models.Winner) error
	FindByResultID(ctx context.Context, resultID primitive.ObjectID) ([]*models.Winner, error)
	FindByGameID(ctx context.Context, gameID primitive.ObjectID, page, limit int) ([]*models.Winner, error)
	FindByCustomerID(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Winner, error)
	Count(ctx context.Context) (int64, error)
}

// RateConfigRepository manages the rateio/commission singleton
type RateConfigRepository interface {
	Get(ctx context.Context) (*models.RateConfig, error)
	Upsert(ctx context.Context, config *models.RateConfig) error
}

// LedgerRepository defines the interface for an append-only financial
// ledger. The collaborator and admin ledgers are two instances of the same
// implementation bound to different collections.
type LedgerRepository interface {
	Create(ctx context.Context, entry *models.LedgerEntry) error
	FindAll(ctx context.Context, page, limit int) ([]*models.LedgerEntry, error)
	FindByOwnerID(ctx context.Context, ownerID primitive.ObjectID, page, limit int) ([]*models.LedgerEntry, error)
	FindByTransactionRef(ctx context.Context, ref string) ([]*models.LedgerEntry, error)
	SummarizeAll(ctx context.Context) (*models.LedgerSummary, error)
	SummarizeByOwnerID(ctx context.Context, ownerID primitive.ObjectID) (*models.LedgerSummary, error)
}

// CustomerRepository defines the interface for customer account operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
}

// CollaboratorRepository defines the interface for collaborator account operations
type CollaboratorRepository interface {
	Create(ctx context.Context, collaborator *models.Collaborator) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collaborator, error)
	FindByEmail(ctx context.Context, email string) (*models.Collaborator, error)
	FindByReferralCode(ctx context.Context, code string) (*models.Collaborator, error)
	Update(ctx context.Context, collaborator *models.Collaborator) error
}

// AdminUserRepository defines the interface for back-office account operations
type AdminUserRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// LoginAttemptRepository is the shared login-failure counter store
type LoginAttemptRepository interface {
	Get(ctx context.Context, email string) (*models.LoginAttempt, error)
	RecordFailure(ctx context.Context, email string, at time.Time) error
	Reset(ctx context.Context, email string) error
}

// PersonalizationRepository stores the public site's layout documents
type PersonalizationRepository interface {
	FindByKey(ctx context.Context, key string) (*models.Personalization, error)
	UpsertByKey(ctx context.Context, key string, values map[string]string, updatedBy string) error
}
