package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpdateRateConfig_Validation(t *testing.T) {
	service := NewFinanceService(&fakeLedgerRepo{}, &fakeLedgerRepo{}, &fakeRateConfigRepo{})

	cases := []struct {
		name  string
		input RateConfigInput
	}{
		{"negative tier", RateConfigInput{Rateio10Pontos: -1, Rateio9Pontos: 30, RateioMenosPontos: 20}},
		{"tier above 100", RateConfigInput{Rateio10Pontos: 110, Rateio9Pontos: 30, RateioMenosPontos: 20}},
		{"commission above 100", RateConfigInput{Rateio10Pontos: 50, Rateio9Pontos: 30, RateioMenosPontos: 20, ComissaoPct: 120}},
		{"tiers exceed 100 combined", RateConfigInput{Rateio10Pontos: 60, Rateio9Pontos: 30, RateioMenosPontos: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.UpdateRateConfig(context.Background(), &tc.input, "admin-1")
			require.Error(t, err)
			var validationErr *apperrors.ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestUpdateRateConfig_Persists(t *testing.T) {
	rates := &fakeRateConfigRepo{}
	service := NewFinanceService(&fakeLedgerRepo{}, &fakeLedgerRepo{}, rates)

	input := &RateConfigInput{Rateio10Pontos: 50, Rateio9Pontos: 30, RateioMenosPontos: 20, ComissaoPct: 12.5}
	saved, err := service.UpdateRateConfig(context.Background(), input, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, 12.5, saved.ComissaoPct)
	assert.Equal(t, "admin-1", saved.UpdatedBy)

	loaded, err := service.GetRateConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50.0, loaded.Rateio10Pontos)
}

func TestGetRateConfig_MissingIsNotFound(t *testing.T) {
	service := NewFinanceService(&fakeLedgerRepo{}, &fakeLedgerRepo{}, &fakeRateConfigRepo{})

	_, err := service.GetRateConfig(context.Background())
	require.Error(t, err)
	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}

func TestSummarizeCollaborator(t *testing.T) {
	ledger := &fakeLedgerRepo{}
	service := NewFinanceService(ledger, &fakeLedgerRepo{}, &fakeRateConfigRepo{})

	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	entries := []*models.LedgerEntry{
		{OwnerID: owner, Commission: "10.00", Status: models.LedgerStatusPending},
		{OwnerID: owner, Commission: "25.50", Status: models.LedgerStatusPaid},
		{OwnerID: other, Commission: "99.99", Status: models.LedgerStatusPending},
	}
	for _, entry := range entries {
		require.NoError(t, ledger.Create(context.Background(), entry))
	}

	summary, err := service.SummarizeCollaborator(context.Background(), owner.Hex())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEntries)
	assert.Equal(t, "35.50", summary.TotalCommission)
	assert.Equal(t, "10.00", summary.PendingAmount)
	assert.Equal(t, "25.50", summary.PaidAmount)
}

func TestAdminLedger_ShowsSettledCommissions(t *testing.T) {
	collabs := newFakeCollaboratorRepo()
	rates := &fakeRateConfigRepo{}
	collabLedger := &fakeLedgerRepo{}
	adminLedger := &fakeLedgerRepo{}

	collaborator := &models.Collaborator{Name: "Maria", Active: true}
	require.NoError(t, collabs.Create(context.Background(), collaborator))

	commissions := NewCommissionService(collabs, rates, collabLedger, adminLedger)
	bet := &models.Bet{
		ID:             primitive.NewObjectID(),
		CustomerID:     primitive.NewObjectID(),
		CollaboratorID: collaborator.ID,
	}
	prize, err := decimal.NewFromString("500.00")
	require.NoError(t, err)
	require.NoError(t, commissions.Settle(context.Background(), bet, prize, time.Now()))

	// The house ledger is shared: any admin sees the entry even though it
	// records the collaborator whose settlement produced it.
	service := NewFinanceService(collabLedger, adminLedger, rates)
	entries, err := service.ListAdminLedger(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "450.00", entries[0].Commission)
	assert.Equal(t, collaborator.ID, entries[0].OwnerID)

	summary, err := service.SummarizeAdmin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalEntries)
	assert.Equal(t, "450.00", summary.TotalCommission)
}

func TestListCollaboratorLedger_InvalidID(t *testing.T) {
	service := NewFinanceService(&fakeLedgerRepo{}, &fakeLedgerRepo{}, &fakeRateConfigRepo{})

	_, err := service.ListCollaboratorLedger(context.Background(), "nao-e-um-id", 1, 20)
	require.Error(t, err)
	var validationErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
