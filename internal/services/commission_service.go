package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"github.com/sortelabs/bolao-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// The lenient fallback when no commission percentage was configured. The
// rateio config is mandatory for distribution, but commissions degrade
// gracefully instead of blocking payouts.
const defaultCommissionPct = 10.0

// CommissionService settles collaborator commissions on winning bets
type CommissionService interface {
	Settle(ctx context.Context, bet *models.Bet, prize decimal.Decimal, at time.Time) error
}

// Compile-time check to ensure CommissionServiceImpl implements CommissionService
var _ CommissionService = (*CommissionServiceImpl)(nil)

// CommissionServiceImpl splits a winning bet's prize between the referring
// collaborator and the house, appending one entry to each ledger. The two
// entries share a transaction reference and timestamp.
type CommissionServiceImpl struct {
	collaboratorRepo repositories.CollaboratorRepository
	rateConfigRepo   repositories.RateConfigRepository
	collabLedger     repositories.LedgerRepository
	adminLedger      repositories.LedgerRepository
}

// NewCommissionService creates a new CommissionServiceImpl
func NewCommissionService(
	collaboratorRepo repositories.CollaboratorRepository,
	rateConfigRepo repositories.RateConfigRepository,
	collabLedger repositories.LedgerRepository,
	adminLedger repositories.LedgerRepository,
) *CommissionServiceImpl {
	return &CommissionServiceImpl{
		collaboratorRepo: collaboratorRepo,
		rateConfigRepo:   rateConfigRepo,
		collabLedger:     collabLedger,
		adminLedger:      adminLedger,
	}
}

// Settle computes the collaborator's and the administrator's share of a
// prize and appends the ledger pair. An unresolvable collaborator is a
// logged skip, not an error: commissions are optional. There is no
// compensating write if the admin entry fails after the collaborator entry
// succeeded; the orphan is found later by the shared transaction ref.
func (s *CommissionServiceImpl) Settle(ctx context.Context, bet *models.Bet, prize decimal.Decimal, at time.Time) error {
	collaborator, err := s.collaboratorRepo.FindByID(ctx, bet.CollaboratorID)
	if err != nil {
		slog.Warn("collaborator not found, skipping commission", "collaboratorId", bet.CollaboratorID.Hex(), "betId", bet.ID.Hex(), "error", err)
		return nil
	}

	pct := defaultCommissionPct
	rateConfig, err := s.rateConfigRepo.Get(ctx)
	if err == nil && rateConfig.ComissaoPct > 0 {
		pct = rateConfig.ComissaoPct
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Warn("failed to fetch commission percentage, using default", "error", err, "default", defaultCommissionPct)
	}

	collaboratorShare, adminShare := utils.SplitCommission(prize, pct)
	ref := uuid.NewString()
	gross := utils.FormatMoney(prize)

	collabEntry := &models.LedgerEntry{
		OwnerID:        collaborator.ID,
		CustomerID:     bet.CustomerID,
		BetID:          bet.ID,
		TransactionRef: ref,
		GrossAmount:    gross,
		Percentage:     pct,
		Commission:     utils.FormatMoney(collaboratorShare),
		Category:       models.LedgerCategoryCommission,
		Description:    fmt.Sprintf("comissão de %.1f%% sobre prêmio de %s", pct, gross),
		Status:         models.LedgerStatusPending,
		CreatedAt:      at,
	}
	if err := s.collabLedger.Create(ctx, collabEntry); err != nil {
		return fmt.Errorf("failed to create collaborator ledger entry: %w", err)
	}

	adminEntry := &models.LedgerEntry{
		OwnerID:        collaborator.ID,
		CustomerID:     bet.CustomerID,
		BetID:          bet.ID,
		TransactionRef: ref,
		GrossAmount:    gross,
		Percentage:     100 - pct,
		Commission:     utils.FormatMoney(adminShare),
		Category:       models.LedgerCategoryCommission,
		Description:    fmt.Sprintf("parte da casa sobre prêmio de %s", gross),
		Status:         models.LedgerStatusPending,
		CreatedAt:      at,
	}
	if err := s.adminLedger.Create(ctx, adminEntry); err != nil {
		// Known inconsistency window: the collaborator entry is already
		// written. Log with the shared ref so reconciliation can find it.
		slog.Error("admin ledger entry failed after collaborator entry", "error", err, "transactionRef", ref)
		return fmt.Errorf("failed to create admin ledger entry: %w", err)
	}

	slog.Info("commission settled", "collaboratorId", collaborator.ID.Hex(), "betId", bet.ID.Hex(), "transactionRef", ref, "collaboratorShare", collabEntry.Commission, "adminShare", adminEntry.Commission)
	return nil
}
