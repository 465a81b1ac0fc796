package services

import (
	"context"
	"errors"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FinanceService serves the collaborator and admin financial dashboards and
// the rateio configuration screen.
type FinanceService interface {
	ListCollaboratorLedger(ctx context.Context, collaboratorID string, page, limit int) ([]*models.LedgerEntry, error)
	SummarizeCollaborator(ctx context.Context, collaboratorID string) (*models.LedgerSummary, error)
	ListAdminLedger(ctx context.Context, page, limit int) ([]*models.LedgerEntry, error)
	SummarizeAdmin(ctx context.Context) (*models.LedgerSummary, error)
	GetRateConfig(ctx context.Context) (*models.RateConfig, error)
	UpdateRateConfig(ctx context.Context, input *RateConfigInput, updatedBy string) (*models.RateConfig, error)
}

// Compile-time check to ensure FinanceServiceImpl implements FinanceService
var _ FinanceService = (*FinanceServiceImpl)(nil)

// FinanceServiceImpl handles financial read paths and rateio administration
type FinanceServiceImpl struct {
	collaboratorLedger repositories.LedgerRepository
	adminLedger        repositories.LedgerRepository
	rateConfigRepo     repositories.RateConfigRepository
}

// NewFinanceService creates a new FinanceServiceImpl
func NewFinanceService(
	collaboratorLedger repositories.LedgerRepository,
	adminLedger repositories.LedgerRepository,
	rateConfigRepo repositories.RateConfigRepository,
) *FinanceServiceImpl {
	return &FinanceServiceImpl{
		collaboratorLedger: collaboratorLedger,
		adminLedger:        adminLedger,
		rateConfigRepo:     rateConfigRepo,
	}
}

// RateConfigInput carries the rateio percentages submitted by an admin.
type RateConfigInput struct {
	Rateio10Pontos    float64 `json:"rateio_10_pontos" binding:"required"`
	Rateio9Pontos     float64 `json:"rateio_9_pontos" binding:"required"`
	RateioMenosPontos float64 `json:"rateio_menos_pontos" binding:"required"`
	ComissaoPct       float64 `json:"comissao_colaborador"`
}

// ListCollaboratorLedger lists a collaborator's commission entries.
func (s *FinanceServiceImpl) ListCollaboratorLedger(ctx context.Context, collaboratorID string, page, limit int) ([]*models.LedgerEntry, error) {
	return listLedger(ctx, s.collaboratorLedger, collaboratorID, page, limit)
}

// SummarizeCollaborator aggregates a collaborator's ledger.
func (s *FinanceServiceImpl) SummarizeCollaborator(ctx context.Context, collaboratorID string) (*models.LedgerSummary, error) {
	return summarizeLedger(ctx, s.collaboratorLedger, collaboratorID)
}

// ListAdminLedger lists the house ledger. The house share belongs to the
// operation as a whole, not to the admin who happens to be looking, so the
// listing is unfiltered; each entry still records the collaborator whose
// settlement produced it.
func (s *FinanceServiceImpl) ListAdminLedger(ctx context.Context, page, limit int) ([]*models.LedgerEntry, error) {
	entries, err := s.adminLedger.FindAll(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Dependency("list ledger", err)
	}
	return entries, nil
}

// SummarizeAdmin aggregates the whole house ledger.
func (s *FinanceServiceImpl) SummarizeAdmin(ctx context.Context) (*models.LedgerSummary, error) {
	summary, err := s.adminLedger.SummarizeAll(ctx)
	if err != nil {
		return nil, apperrors.Dependency("summarize ledger", err)
	}
	return summary, nil
}

func listLedger(ctx context.Context, repo repositories.LedgerRepository, ownerID string, page, limit int) ([]*models.LedgerEntry, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, apperrors.Validation("invalid owner id")
	}
	entries, err := repo.FindByOwnerID(ctx, oid, page, limit)
	if err != nil {
		return nil, apperrors.Dependency("list ledger", err)
	}
	return entries, nil
}

func summarizeLedger(ctx context.Context, repo repositories.LedgerRepository, ownerID string) (*models.LedgerSummary, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, apperrors.Validation("invalid owner id")
	}
	summary, err := repo.SummarizeByOwnerID(ctx, oid)
	if err != nil {
		return nil, apperrors.Dependency("summarize ledger", err)
	}
	return summary, nil
}

// GetRateConfig returns the rateio singleton.
func (s *FinanceServiceImpl) GetRateConfig(ctx context.Context) (*models.RateConfig, error) {
	config, err := s.rateConfigRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("rateio configuration", "rateio")
		}
		return nil, apperrors.Dependency("get rateio configuration", err)
	}
	return config, nil
}

// UpdateRateConfig validates and stores the rateio percentages. The three
// tier percentages must not exceed 100 combined; what is left over stays
// with the house.
func (s *FinanceServiceImpl) UpdateRateConfig(ctx context.Context, input *RateConfigInput, updatedBy string) (*models.RateConfig, error) {
	for _, pct := range []float64{input.Rateio10Pontos, input.Rateio9Pontos, input.RateioMenosPontos, input.ComissaoPct} {
		if pct < 0 || pct > 100 {
			return nil, apperrors.Validation("percentages must be between 0 and 100")
		}
	}
	if total := input.Rateio10Pontos + input.Rateio9Pontos + input.RateioMenosPontos; total > 100 {
		return nil, apperrors.Validation("tier percentages must not exceed 100 combined, got %.2f", total)
	}

	config := &models.RateConfig{
		Rateio10Pontos:    input.Rateio10Pontos,
		Rateio9Pontos:     input.Rateio9Pontos,
		RateioMenosPontos: input.RateioMenosPontos,
		ComissaoPct:       input.ComissaoPct,
		UpdatedBy:         updatedBy,
	}
	if err := s.rateConfigRepo.Upsert(ctx, config); err != nil {
		return nil, apperrors.Dependency("upsert rateio configuration", err)
	}
	return config, nil
}
