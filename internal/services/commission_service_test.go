package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCommissionFixture() (*CommissionServiceImpl, *fakeCollaboratorRepo, *fakeRateConfigRepo, *fakeLedgerRepo, *fakeLedgerRepo) {
	collabs := newFakeCollaboratorRepo()
	rateConfig := &fakeRateConfigRepo{}
	collabLed := &fakeLedgerRepo{}
	adminLed := &fakeLedgerRepo{}
	return NewCommissionService(collabs, rateConfig, collabLed, adminLed), collabs, rateConfig, collabLed, adminLed
}

func commissionBet(collaboratorID primitive.ObjectID) *models.Bet {
	return &models.Bet{
		ID:             primitive.NewObjectID(),
		GameID:         primitive.NewObjectID(),
		CustomerID:     primitive.NewObjectID(),
		CollaboratorID: collaboratorID,
		Status:         models.BetStatusWinning,
	}
}

func TestSettle_SplitsExactly(t *testing.T) {
	service, collabs, rateConfig, collabLed, adminLed := newCommissionFixture()

	collaborator := &models.Collaborator{Name: "João", Active: true}
	require.NoError(t, collabs.Create(context.Background(), collaborator))
	rateConfig.config = &models.RateConfig{ComissaoPct: 12.5}

	prize := decimal.RequireFromString("333.33")
	err := service.Settle(context.Background(), commissionBet(collaborator.ID), prize, time.Now())
	require.NoError(t, err)

	require.Len(t, collabLed.entries, 1)
	require.Len(t, adminLed.entries, 1)

	collabShare := decimal.RequireFromString(collabLed.entries[0].Commission)
	adminShare := decimal.RequireFromString(adminLed.entries[0].Commission)

	// 12.5% of 333.33 rounded to two places, remainder to the house; the
	// two shares always reconstruct the prize exactly.
	assert.Equal(t, "41.67", collabLed.entries[0].Commission)
	assert.True(t, collabShare.Add(adminShare).Equal(prize))
	assert.Equal(t, collabLed.entries[0].TransactionRef, adminLed.entries[0].TransactionRef)
	assert.NotEmpty(t, collabLed.entries[0].TransactionRef)
	assert.Equal(t, models.LedgerStatusPending, collabLed.entries[0].Status)
}

func TestSettle_DefaultPercentage(t *testing.T) {
	service, collabs, _, collabLed, adminLed := newCommissionFixture()

	collaborator := &models.Collaborator{Name: "Ana", Active: true}
	require.NoError(t, collabs.Create(context.Background(), collaborator))

	// No rateio configuration stored: the default 10% applies.
	err := service.Settle(context.Background(), commissionBet(collaborator.ID), decimal.RequireFromString("200.00"), time.Now())
	require.NoError(t, err)

	require.Len(t, collabLed.entries, 1)
	assert.Equal(t, "20.00", collabLed.entries[0].Commission)
	assert.Equal(t, "180.00", adminLed.entries[0].Commission)
	assert.Equal(t, 10.0, collabLed.entries[0].Percentage)
}

func TestSettle_MissingCollaboratorIsSkipped(t *testing.T) {
	service, _, _, collabLed, adminLed := newCommissionFixture()

	err := service.Settle(context.Background(), commissionBet(primitive.NewObjectID()), decimal.RequireFromString("100.00"), time.Now())
	require.NoError(t, err)

	assert.Empty(t, collabLed.entries)
	assert.Empty(t, adminLed.entries)
}

func TestSettle_AdminLedgerFailureSurfaces(t *testing.T) {
	service, collabs, _, collabLed, adminLed := newCommissionFixture()

	collaborator := &models.Collaborator{Name: "Rui", Active: true}
	require.NoError(t, collabs.Create(context.Background(), collaborator))
	adminLed.createErr = errors.New("write concern failed")

	err := service.Settle(context.Background(), commissionBet(collaborator.ID), decimal.RequireFromString("100.00"), time.Now())
	require.Error(t, err)

	// The collaborator entry stays: reconciliation finds the orphan by its
	// transaction ref.
	assert.Len(t, collabLed.entries, 1)
	assert.Empty(t, adminLed.entries)
}
