package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/pkg/paygate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type betFixture struct {
	service   *BetServiceImpl
	games     *fakeGameRepo
	bets      *fakeBetRepo
	customers *fakeCustomerRepo
	mail      *fakeMailer
}

func newBetFixture() *betFixture {
	games := newFakeGameRepo()
	bets := &fakeBetRepo{}
	customers := newFakeCustomerRepo()
	mail := &fakeMailer{}
	return &betFixture{
		service:   NewBetService(bets, games, customers, mail),
		games:     games,
		bets:      bets,
		customers: customers,
		mail:      mail,
	}
}

func (f *betFixture) addOpenGame(t *testing.T) *models.Game {
	t.Helper()
	game := &models.Game{
		Name:        "Bolão Aberto",
		Slug:        "bolao-aberto",
		Type:        models.GameTypeBolao,
		Status:      models.GameStatusOpen,
		StartDate:   time.Now().Add(-time.Hour),
		EndDate:     time.Now().Add(time.Hour),
		TicketPrice: "10.00",
		MinNumbers:  10,
		MaxNumbers:  10,
		Visible:     true,
	}
	require.NoError(t, f.games.Create(context.Background(), game))
	return game
}

func (f *betFixture) addCustomer(t *testing.T, collaboratorID primitive.ObjectID) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:           "Cliente",
		Email:          "cliente@example.com",
		CollaboratorID: collaboratorID,
		Active:         true,
	}
	require.NoError(t, f.customers.Create(context.Background(), customer))
	return customer
}

func TestPlaceBet_CarriesReferringCollaborator(t *testing.T) {
	f := newBetFixture()
	game := f.addOpenGame(t)
	collaboratorID := primitive.NewObjectID()
	customer := f.addCustomer(t, collaboratorID)

	bet, err := f.service.PlaceBet(context.Background(), &PlaceBetInput{
		GameSlug:      game.Slug,
		Numbers:       drawnTen,
		PaymentMethod: "pix",
		ExternalRef:   "pedido-123",
	}, customer.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.BetStatusPending, bet.Status)
	assert.Equal(t, collaboratorID, bet.CollaboratorID)
	assert.Equal(t, game.ID, bet.GameID)
	// Amount defaults to the game's ticket price when not sent.
	assert.Equal(t, "10.00", bet.Amount)
}

func TestPlaceBet_RejectsClosedGame(t *testing.T) {
	f := newBetFixture()
	game := f.addOpenGame(t)
	game.Status = models.GameStatusClosed
	customer := f.addCustomer(t, primitive.NilObjectID)

	_, err := f.service.PlaceBet(context.Background(), &PlaceBetInput{
		GameSlug:      game.Slug,
		Numbers:       drawnTen,
		PaymentMethod: "pix",
		ExternalRef:   "pedido-124",
	}, customer.ID.Hex())
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestPlaceBet_RejectsBadNumbers(t *testing.T) {
	f := newBetFixture()
	game := f.addOpenGame(t)
	customer := f.addCustomer(t, primitive.NilObjectID)

	tests := []struct {
		name    string
		numbers []string
	}{
		{"too few", []string{"01", "02"}},
		{"duplicates", []string{"01", "01", "03", "04", "05", "06", "07", "08", "09", "10"}},
		{"empty entry", []string{"01", " ", "03", "04", "05", "06", "07", "08", "09", "10"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.PlaceBet(context.Background(), &PlaceBetInput{
				GameSlug:      game.Slug,
				Numbers:       tc.numbers,
				PaymentMethod: "pix",
				ExternalRef:   "pedido-125",
			}, customer.ID.Hex())
			require.Error(t, err)
			var validationErr *apperrors.ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestConfirmPayment_FlipsOnceAndMails(t *testing.T) {
	f := newBetFixture()
	game := f.addOpenGame(t)
	customer := f.addCustomer(t, primitive.NilObjectID)

	bet, err := f.service.PlaceBet(context.Background(), &PlaceBetInput{
		GameSlug:      game.Slug,
		Numbers:       drawnTen,
		PaymentMethod: "pix",
		ExternalRef:   "pedido-200",
	}, customer.ID.Hex())
	require.NoError(t, err)

	notification := &paygate.Notification{
		TransactionRef: "tx-900",
		ExternalRef:    "pedido-200",
		Status:         paygate.StatusApproved,
	}
	require.NoError(t, f.service.ConfirmPayment(context.Background(), notification))

	assert.Equal(t, models.BetStatusConfirmed, bet.Status)
	assert.Equal(t, "tx-900", bet.GatewayRef)
	assert.Equal(t, "pedido-200", bet.PaymentRef)
	assert.Equal(t, []string{"cliente@example.com"}, f.mail.sent)

	// A duplicate delivery is acknowledged without a second flip or mail.
	require.NoError(t, f.service.ConfirmPayment(context.Background(), notification))
	assert.Len(t, f.mail.sent, 1)
}

func TestConfirmPayment_IgnoresNonApproved(t *testing.T) {
	f := newBetFixture()
	game := f.addOpenGame(t)
	customer := f.addCustomer(t, primitive.NilObjectID)

	bet, err := f.service.PlaceBet(context.Background(), &PlaceBetInput{
		GameSlug:      game.Slug,
		Numbers:       drawnTen,
		PaymentMethod: "pix",
		ExternalRef:   "pedido-201",
	}, customer.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, f.service.ConfirmPayment(context.Background(), &paygate.Notification{
		TransactionRef: "tx-901",
		ExternalRef:    "pedido-201",
		Status:         paygate.StatusRefused,
	}))

	assert.Equal(t, models.BetStatusPending, bet.Status)
	assert.Empty(t, f.mail.sent)
}

func TestConfirmPayment_UnknownRef(t *testing.T) {
	f := newBetFixture()

	err := f.service.ConfirmPayment(context.Background(), &paygate.Notification{
		TransactionRef: "tx-902",
		ExternalRef:    "pedido-inexistente",
		Status:         paygate.StatusApproved,
	})
	require.Error(t, err)

	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}
