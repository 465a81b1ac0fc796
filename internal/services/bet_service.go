package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"github.com/sortelabs/bolao-backend/pkg/mailer"
	"github.com/sortelabs/bolao-backend/pkg/paygate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// BetService handles ticket placement and payment confirmation
type BetService interface {
	PlaceBet(ctx context.Context, input *PlaceBetInput, customerID string) (*models.Bet, error)
	ConfirmPayment(ctx context.Context, notification *paygate.Notification) error
	ListCustomerBets(ctx context.Context, customerID string, page, limit int) ([]*models.Bet, error)
}

// Compile-time check to ensure BetServiceImpl implements BetService
var _ BetService = (*BetServiceImpl)(nil)

// BetServiceImpl handles bet-related business logic
type BetServiceImpl struct {
	betRepo      repositories.BetRepository
	gameRepo     repositories.GameRepository
	customerRepo repositories.CustomerRepository
	mail         mailer.Mailer
}

// NewBetService creates a new BetServiceImpl
func NewBetService(
	betRepo repositories.BetRepository,
	gameRepo repositories.GameRepository,
	customerRepo repositories.CustomerRepository,
	mail mailer.Mailer,
) *BetServiceImpl {
	return &BetServiceImpl{
		betRepo:      betRepo,
		gameRepo:     gameRepo,
		customerRepo: customerRepo,
		mail:         mail,
	}
}

// PlaceBetInput carries a customer's ticket
type PlaceBetInput struct {
	GameSlug      string
	Numbers       []string
	Amount        string
	PaymentMethod string
	ExternalRef   string
}

// PlaceBet validates the ticket against the game's constraints and persists
// it in PENDENTE state until the payment webhook confirms it. The referring
// collaborator, if any, is taken from the customer's registration.
func (s *BetServiceImpl) PlaceBet(ctx context.Context, input *PlaceBetInput, customerID string) (*models.Bet, error) {
	custID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, apperrors.Authorization("invalid customer identity")
	}
	customer, err := s.customerRepo.FindByID(ctx, custID)
	if err != nil {
		return nil, apperrors.Authorization("customer not found")
	}

	game, err := s.gameRepo.FindBySlug(ctx, input.GameSlug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("game", input.GameSlug)
		}
		return nil, apperrors.Dependency("find game", err)
	}
	if game.Status != models.GameStatusOpen {
		return nil, apperrors.Validation("game is not open for bets")
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

	switch game.Type {
	case models.GameTypeBicho:
		if len(numbers) != 2 {
			return nil, apperrors.Validation("a BICHO bet needs dezena and horario")
		}
	default:
		if len(numbers) < game.MinNumbers || len(numbers) > game.MaxNumbers {
			return nil, apperrors.Validation("numeros must have between %d and %d entries", game.MinNumbers, game.MaxNumbers)
		}
	}

	if input.Amount == "" {
		input.Amount = game.TicketPrice
	}

	bet := &models.Bet{
		GameID:         game.ID,
		CustomerID:     customer.ID,
		CollaboratorID: customer.CollaboratorID,
		Numbers:        numbers,
		Amount:         input.Amount,
		PaymentMethod:  input.PaymentMethod,
		PaymentRef:     input.ExternalRef,
		Status:         models.BetStatusPending,
	}
	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, apperrors.Dependency("create bet", err)
	}

	slog.Info("bet placed", "betId", bet.ID.Hex(), "gameId", game.ID.Hex(), "customerId", customer.ID.Hex())
	return bet, nil
}

// ConfirmPayment applies an approved gateway notification to the bet it
// references. Duplicate deliveries are idempotent: the conditional flip
// only succeeds once.
func (s *BetServiceImpl) ConfirmPayment(ctx context.Context, notification *paygate.Notification) error {
	if notification.Status != paygate.StatusApproved {
		slog.Info("ignoring non-approved payment notification", "ref", notification.TransactionRef, "status", notification.Status)
		return nil
	}

	bet, err := s.betRepo.FindByPaymentRef(ctx, notification.ExternalRef)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("bet", notification.ExternalRef)
		}
		return apperrors.Dependency("find bet", err)
	}

	confirmed, err := s.betRepo.ConfirmIfPending(ctx, bet.ID, notification.TransactionRef)
	if err != nil {
		return apperrors.Dependency("confirm bet", err)
	}
	if !confirmed {
		slog.Info("bet already confirmed, ignoring duplicate notification", "betId", bet.ID.Hex())
		return nil
	}

	s.sendConfirmationMail(ctx, bet)
	slog.Info("bet payment confirmed", "betId", bet.ID.Hex(), "transactionRef", notification.TransactionRef)
	return nil
}

// sendConfirmationMail is best effort; a mail failure never fails the
// webhook.
func (s *BetServiceImpl) sendConfirmationMail(ctx context.Context, bet *models.Bet) {
	customer, err := s.customerRepo.FindByID(ctx, bet.CustomerID)
	if err != nil {
		slog.Warn("customer not found for confirmation mail", "customerId", bet.CustomerID.Hex())
		return
	}
	body := fmt.Sprintf("Olá %s, seu bilhete %s foi confirmado. Boa sorte!", customer.Name, bet.ID.Hex())
	if err := s.mail.Send(customer.Email, "Bilhete confirmado", body); err != nil {
		slog.Warn("failed to send confirmation mail", "error", err, "customerId", customer.ID.Hex())
	}
}

// ListCustomerBets lists a customer's bets with pagination
func (s *BetServiceImpl) ListCustomerBets(ctx context.Context, customerID string, page, limit int) ([]*models.Bet, error) {
	custID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, apperrors.Validation("invalid customer id")
	}
	bets, err := s.betRepo.FindByCustomerID(ctx, custID, page, limit)
	if err != nil {
		return nil, apperrors.Dependency("list bets", err)
	}
	return bets, nil
}
