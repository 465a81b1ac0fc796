package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"github.com/sortelabs/bolao-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// PrizeService runs the prize distribution over pending results
type PrizeService interface {
	DistributePendingPrizes(ctx context.Context) (*models.DistributionReport, error)
	GetWinnersByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Winner, error)
}

// Compile-time check to ensure PrizeServiceImpl implements PrizeService
var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl consumes pending results, classifies the bets placed on
// the same game into score tiers, splits each tier's share of the prize
// pool among its winners and settles collaborator commissions.
type PrizeServiceImpl struct {
	resultRepo     repositories.ResultRepository
	gameRepo       repositories.GameRepository
	betRepo        repositories.BetRepository
	winnerRepo     repositories.WinnerRepository
	rateConfigRepo repositories.RateConfigRepository
	commissions    CommissionService
}

// NewPrizeService creates a new PrizeServiceImpl
func NewPrizeService(
	resultRepo repositories.ResultRepository,
	gameRepo repositories.GameRepository,
	betRepo repositories.BetRepository,
	winnerRepo repositories.WinnerRepository,
	rateConfigRepo repositories.RateConfigRepository,
	commissions CommissionService,
) *PrizeServiceImpl {
	return &PrizeServiceImpl{
		resultRepo:     resultRepo,
		gameRepo:       gameRepo,
		betRepo:        betRepo,
		winnerRepo:     winnerRepo,
		rateConfigRepo: rateConfigRepo,
		commissions:    commissions,
	}
}

const resultPageSize = 100

// DistributePendingPrizes processes every PENDENTE result. Each result is
// claimed with a conditional status flip before any winner or ledger row is
// written, so overlapping invocations cannot double-pay; a claim miss is a
// normal skip. Failure of one result is recorded in the report and does not
// abort the others. A missing rateio configuration aborts the whole batch
// before any write.
func (s *PrizeServiceImpl) DistributePendingPrizes(ctx context.Context) (*models.DistributionReport, error) {
	pending, err := s.collectPending(ctx)
	if err != nil {
		return nil, apperrors.Dependency("fetch pending results", err)
	}

	report := &models.DistributionReport{
		Message:   "nenhum resultado pendente",
		Processed: []models.ResultSummary{},
	}
	if len(pending) == 0 {
		return report, nil
	}

	rateConfig, err := s.rateConfigRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Configuration("rateio configuration missing")
		}
		return nil, apperrors.Dependency("fetch rateio configuration", err)
	}

	for _, result := range pending {
		summary, err := s.processResult(ctx, result, rateConfig)
		if err != nil {
			slog.Error("failed to process result", "error", err, "resultId", result.ID.Hex())
			report.Processed = append(report.Processed, models.ResultSummary{
				ResultID: result.ID.Hex(),
				GameID:   result.GameID.Hex(),
				Error:    err.Error(),
			})
			continue
		}
		if summary != nil {
			report.Processed = append(report.Processed, *summary)
		}
	}

	report.Message = fmt.Sprintf("%d resultado(s) processado(s)", len(report.Processed))
	return report, nil
}

// collectPending drains the PENDENTE pages up front so releases during the
// run cannot make the loop revisit a result.
func (s *PrizeServiceImpl) collectPending(ctx context.Context) ([]*models.Result, error) {
	var all []*models.Result
	for page := 1; ; page++ {
		batch, err := s.resultRepo.FindByStatus(ctx, models.ResultStatusPending, page, resultPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < resultPageSize {
			return all, nil
		}
	}
}

// processResult handles one result end to end. The status flips to
// PROCESSADO/FINALIZADO happen only after all winner and ledger writes
// succeeded; any earlier failure releases the claim so the result stays
// PENDENTE for the next run.
func (s *PrizeServiceImpl) processResult(ctx context.Context, result *models.Result, rateConfig *models.RateConfig) (*models.ResultSummary, error) {
	game, err := s.gameRepo.FindByID(ctx, result.GameID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			slog.Warn("result references missing game, skipping", "resultId", result.ID.Hex(), "gameId", result.GameID.Hex())
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find game: %w", err)
	}

	claimed, err := s.resultRepo.Claim(ctx, result.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim result: %w", err)
	}
	if !claimed {
		slog.Info("result already claimed by another worker, skipping", "resultId", result.ID.Hex())
		return nil, nil
	}

	summary, err := s.distribute(ctx, result, game, rateConfig)
	if err != nil {
		s.release(ctx, result.ID)
		return nil, err
	}

	processedAt := time.Now()
	if err := s.resultRepo.MarkProcessed(ctx, result.ID, processedAt); err != nil {
		// Winner writes are keyed on (resultadoId, bilheteId), so handing
		// the result back to PENDENTE here cannot double-pay on the retry.
		s.release(ctx, result.ID)
		return nil, fmt.Errorf("failed to mark result processed: %w", err)
	}
	s.finalizeGame(ctx, game, result, processedAt)

	return summary, nil
}

func (s *PrizeServiceImpl) release(ctx context.Context, resultID primitive.ObjectID) {
	if err := s.resultRepo.Release(ctx, resultID); err != nil {
		slog.Error("failed to release claimed result", "error", err, "resultId", resultID.Hex())
	}
}

// distribute writes the winner rows, bet outcomes and commission entries
// for one claimed result.
func (s *PrizeServiceImpl) distribute(ctx context.Context, result *models.Result, game *models.Game, rateConfig *models.RateConfig) (*models.ResultSummary, error) {
	bets, err := s.collectBets(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bets: %w", err)
	}

	prizePool, err := utils.ParseMoney(result.PrizeTotal)
	if err != nil {
		return nil, fmt.Errorf("invalid prize total %q: %w", result.PrizeTotal, err)
	}

	summary := &models.ResultSummary{
		ResultID:     result.ID.Hex(),
		GameID:       game.ID.Hex(),
		DrawnNumbers: result.Numbers,
		PrizeTotal:   utils.FormatMoney(prizePool),
	}

	processedAt := time.Now()
	if game.Type == models.GameTypeBicho {
		return summary, s.distributeBicho(ctx, result, bets, prizePool, summary, processedAt)
	}
	return summary, s.distributeTiers(ctx, result, bets, prizePool, rateConfig, summary, processedAt)
}

// distributeTiers is the ten-number path: every bet lands in exactly one of
// the three tiers, each tier gets its configured share of the pool, and the
// share is split evenly among the tier's winners. Tiers with no winners
// forfeit their allocation; rounding residuals are not redistributed.
func (s *PrizeServiceImpl) distributeTiers(ctx context.Context, result *models.Result, bets []*models.Bet, prizePool decimal.Decimal, rateConfig *models.RateConfig, summary *models.ResultSummary, processedAt time.Time) error {
	tiers := map[string][]*models.Bet{}
	scores := map[string]int{}
	for _, bet := range bets {
		score := utils.CountMatches(bet.Numbers, result.Numbers)
		tier := utils.ClassifyTier(score)
		tiers[tier] = append(tiers[tier], bet)
		scores[bet.ID.Hex()] = score
	}

	for _, tier := range []string{models.TierTenPoints, models.TierNinePoints, models.TierFewerPoints} {
		tierBets := tiers[tier]
		if len(tierBets) == 0 {
			continue
		}

		pct := rateConfig.TierRate(tier)
		tierPool := prizePool.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))
		perWinner := tierPool.Div(decimal.NewFromInt(int64(len(tierBets)))).Round(2)

		for _, bet := range tierBets {
			if err := s.awardPrize(ctx, result, bet, tier, scores[bet.ID.Hex()], perWinner, rateConfig, processedAt); err != nil {
				return err
			}
		}

		switch tier {
		case models.TierTenPoints:
			summary.WinnersTenPoints = len(tierBets)
		case models.TierNinePoints:
			summary.WinnersNinePoints = len(tierBets)
		case models.TierFewerPoints:
			summary.WinnersFewer = len(tierBets)
		}
	}

	return nil
}

// distributeBicho is the animal-game path: a bet wins only on exact
// dezena+horário equality, and the whole pool is split evenly among the
// exact hits. Exact hits are reported in the report's top slot.
func (s *PrizeServiceImpl) distributeBicho(ctx context.Context, result *models.Result, bets []*models.Bet, prizePool decimal.Decimal, summary *models.ResultSummary, processedAt time.Time) error {
	var hits []*models.Bet
	var losers []*models.Bet
	for _, bet := range bets {
		if betMatchesBicho(bet, result) {
			hits = append(hits, bet)
		} else {
			losers = append(losers, bet)
		}
	}

	if len(hits) > 0 {
		perWinner := prizePool.Div(decimal.NewFromInt(int64(len(hits)))).Round(2)
		for _, bet := range hits {
			if err := s.awardPrizeExact(ctx, result, bet, perWinner, processedAt); err != nil {
				return err
			}
		}
	}
	for _, bet := range losers {
		if err := s.betRepo.UpdateOutcome(ctx, bet.ID, models.BetStatusNonWinning, "não premiado"); err != nil {
			return fmt.Errorf("failed to update bet outcome: %w", err)
		}
	}

	summary.WinnersTenPoints = len(hits)
	summary.WinnersFewer = len(losers)
	summary.DrawnNumbers = []string{result.Dezena, result.Horario}
	return nil
}

func betMatchesBicho(bet *models.Bet, result *models.Result) bool {
	if len(bet.Numbers) < 2 {
		return false
	}
	return strings.TrimSpace(bet.Numbers[0]) == strings.TrimSpace(result.Dezena) &&
		strings.TrimSpace(bet.Numbers[1]) == strings.TrimSpace(result.Horario)
}

// awardPrize writes the winner row, the bet outcome and, when the bet
// carries a referring collaborator, the commission ledger pair. The winner
// row is keyed on (resultadoId, bilheteId): a retry of a partially failed
// run replaces the existing row and skips the commission, so nothing is
// paid twice. Amounts in the fewer-points tier still count as prizes; only
// the percentages differ.
func (s *PrizeServiceImpl) awardPrize(ctx context.Context, result *models.Result, bet *models.Bet, tier string, score int, prize decimal.Decimal, rateConfig *models.RateConfig, processedAt time.Time) error {
	winner := &models.Winner{
		ResultID:    result.ID,
		GameID:      result.GameID,
		BetID:       bet.ID,
		CustomerID:  bet.CustomerID,
		Score:       score,
		Tier:        tier,
		PrizeAmount: utils.FormatMoney(prize),
		ProcessedAt: processedAt,
	}
	created, err := s.winnerRepo.Upsert(ctx, winner)
	if err != nil {
		return fmt.Errorf("failed to write winner: %w", err)
	}

	outcome := fmt.Sprintf("premiado na faixa %s com %s", tier, winner.PrizeAmount)
	if err := s.betRepo.UpdateOutcome(ctx, bet.ID, models.BetStatusWinning, outcome); err != nil {
		return fmt.Errorf("failed to update bet outcome: %w", err)
	}

	if created && bet.HasCollaborator() {
		if err := s.commissions.Settle(ctx, bet, prize, processedAt); err != nil {
			// Ledger failures are logged, never rolled back: the winner row
			// stays and reconciliation finds the gap by transaction ref.
			slog.Error("commission settlement failed", "error", err, "betId", bet.ID.Hex())
		}
	}
	return nil
}

func (s *PrizeServiceImpl) awardPrizeExact(ctx context.Context, result *models.Result, bet *models.Bet, prize decimal.Decimal, processedAt time.Time) error {
	winner := &models.Winner{
		ResultID:    result.ID,
		GameID:      result.GameID,
		BetID:       bet.ID,
		CustomerID:  bet.CustomerID,
		Score:       1,
		Tier:        models.TierExactHit,
		PrizeAmount: utils.FormatMoney(prize),
		ProcessedAt: processedAt,
	}
	created, err := s.winnerRepo.Upsert(ctx, winner)
	if err != nil {
		return fmt.Errorf("failed to write winner: %w", err)
	}

	outcome := fmt.Sprintf("acerto exato premiado com %s", winner.PrizeAmount)
	if err := s.betRepo.UpdateOutcome(ctx, bet.ID, models.BetStatusWinning, outcome); err != nil {
		return fmt.Errorf("failed to update bet outcome: %w", err)
	}

	if created && bet.HasCollaborator() {
		if err := s.commissions.Settle(ctx, bet, prize, processedAt); err != nil {
			slog.Error("commission settlement failed", "error", err, "betId", bet.ID.Hex())
		}
	}
	return nil
}

// finalizeGame flips the game to FINALIZADO and stamps the drawn numbers.
// Failures here are logged only: the result is already PROCESSADO and a
// re-run must not re-pay it.
func (s *PrizeServiceImpl) finalizeGame(ctx context.Context, game *models.Game, result *models.Result, processedAt time.Time) {
	drawn := result.Numbers
	if game.Type == models.GameTypeBicho {
		drawn = []string{result.Dezena, result.Horario}
	}

	ok, err := s.gameRepo.UpdateStatusIf(ctx, game.ID, models.GameStatusClosed, models.GameStatusFinalized)
	if err != nil {
		slog.Error("failed to finalize game", "error", err, "gameId", game.ID.Hex())
		return
	}
	if !ok {
		// The game may never have been swept to ENCERRADO.
		ok, err = s.gameRepo.UpdateStatusIf(ctx, game.ID, models.GameStatusOpen, models.GameStatusFinalized)
		if err != nil || !ok {
			slog.Warn("game not finalized, unexpected status", "gameId", game.ID.Hex(), "error", err)
			return
		}
	}

	if err := s.gameRepo.SetDrawnNumbers(ctx, game.ID, drawn, processedAt); err != nil {
		slog.Error("failed to record drawn numbers", "error", err, "gameId", game.ID.Hex())
	}
}

const betPageSize = 500

// collectBets drains the game-id index page by page.
func (s *PrizeServiceImpl) collectBets(ctx context.Context, gameID primitive.ObjectID) ([]*models.Bet, error) {
	var all []*models.Bet
	for page := 1; ; page++ {
		batch, err := s.betRepo.FindByGameID(ctx, gameID, page, betPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < betPageSize {
			return all, nil
		}
	}
}

// GetWinnersByGameID lists the winners recorded for a game.
func (s *PrizeServiceImpl) GetWinnersByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Winner, error) {
	id, err := primitive.ObjectIDFromHex(gameID)
	if err != nil {
		return nil, apperrors.Validation("invalid game id")
	}
	winners, err := s.winnerRepo.FindByGameID(ctx, id, page, limit)
	if err != nil {
		return nil, apperrors.Dependency("fetch winners", err)
	}
	return winners, nil
}
