package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sortelabs/bolao-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes. Each fake honors the same contract the mongodb
// implementation does, in particular mongo.ErrNoDocuments on misses and the
// conditional-update semantics of the claim methods.

type fakeGameRepo struct {
	mu    sync.Mutex
	games map[primitive.ObjectID]*models.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: map[primitive.ObjectID]*models.Game{}}
}

func (r *fakeGameRepo) Create(_ context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if game.ID.IsZero() {
		game.ID = primitive.NewObjectID()
	}
	game.CreatedAt = time.Now()
	r.games[game.ID] = game
	return nil
}

func (r *fakeGameRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	game, ok := r.games[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return game, nil
}

func (r *fakeGameRepo) FindBySlug(_ context.Context, slug string) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, game := range r.games {
		if game.Slug == slug {
			return game, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeGameRepo) FindByStatus(_ context.Context, status models.GameStatus, page, limit int) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Game
	for _, game := range r.games {
		if game.Status == status {
			matched = append(matched, game)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return paginate(matched, page, limit), nil
}

func (r *fakeGameRepo) FindVisible(_ context.Context, page, limit int) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Game
	for _, game := range r.games {
		if game.Visible {
			matched = append(matched, game)
		}
	}
	return paginate(matched, page, limit), nil
}

func (r *fakeGameRepo) FindAll(_ context.Context, page, limit int) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Game
	for _, game := range r.games {
		all = append(all, game)
	}
	return paginate(all, page, limit), nil
}

func (r *fakeGameRepo) Update(_ context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[game.ID] = game
	return nil
}

func (r *fakeGameRepo) UpdateStatusIf(_ context.Context, id primitive.ObjectID, expected, next models.GameStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	game, ok := r.games[id]
	if !ok || game.Status != expected {
		return false, nil
	}
	game.Status = next
	return true, nil
}

func (r *fakeGameRepo) SetDrawnNumbers(_ context.Context, id primitive.ObjectID, numbers []string, finalizedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if game, ok := r.games[id]; ok {
		game.DrawnNumbers = numbers
		game.FinalizedAt = finalizedAt
	}
	return nil
}

type fakeBetRepo struct {
	mu   sync.Mutex
	bets []*models.Bet
}

func (r *fakeBetRepo) Create(_ context.Context, bet *models.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bet.ID.IsZero() {
		bet.ID = primitive.NewObjectID()
	}
	bet.CreatedAt = time.Now()
	r.bets = append(r.bets, bet)
	return nil
}

func (r *fakeBetRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bet := range r.bets {
		if bet.ID == id {
			return bet, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBetRepo) FindByGameID(_ context.Context, gameID primitive.ObjectID, page, limit int) ([]*models.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Bet
	for _, bet := range r.bets {
		if bet.GameID == gameID {
			matched = append(matched, bet)
		}
	}
	return paginate(matched, page, limit), nil
}

func (r *fakeBetRepo) FindByCustomerID(_ context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Bet
	for _, bet := range r.bets {
		if bet.CustomerID == customerID {
			matched = append(matched, bet)
		}
	}
	return paginate(matched, page, limit), nil
}

func (r *fakeBetRepo) FindByPaymentRef(_ context.Context, ref string) (*models.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bet := range r.bets {
		if bet.PaymentRef == ref {
			return bet, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBetRepo) UpdateOutcome(_ context.Context, id primitive.ObjectID, status models.BetStatus, outcome string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bet := range r.bets {
		if bet.ID == id {
			bet.Status = status
			bet.Outcome = outcome
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeBetRepo) ConfirmIfPending(_ context.Context, id primitive.ObjectID, gatewayRef string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bet := range r.bets {
		if bet.ID == id {
			if bet.Status != models.BetStatusPending {
				return false, nil
			}
			bet.Status = models.BetStatusConfirmed
			bet.GatewayRef = gatewayRef
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBetRepo) CountByGameID(_ context.Context, gameID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, bet := range r.bets {
		if bet.GameID == gameID {
			count++
		}
	}
	return count, nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results []*models.Result
	markErr error
}

func (r *fakeResultRepo) Create(_ context.Context, result *models.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if result.ID.IsZero() {
		result.ID = primitive.NewObjectID()
	}
	result.CreatedAt = time.Now()
	r.results = append(r.results, result)
	return nil
}

func (r *fakeResultRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, result := range r.results {
		if result.ID == id {
			return result, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeResultRepo) FindByStatus(_ context.Context, status models.ResultStatus, page, limit int) ([]*models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Result
	for _, result := range r.results {
		if result.Status == status {
			matched = append(matched, result)
		}
	}
	return paginate(matched, page, limit), nil
}

func (r *fakeResultRepo) Claim(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, result := range r.results {
		if result.ID == id {
			if result.Status != models.ResultStatusPending {
				return false, nil
			}
			result.Status = models.ResultStatusProcessing
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeResultRepo) Release(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, result := range r.results {
		if result.ID == id && result.Status == models.ResultStatusProcessing {
			result.Status = models.ResultStatusPending
		}
	}
	return nil
}

func (r *fakeResultRepo) MarkProcessed(_ context.Context, id primitive.ObjectID, processedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markErr != nil {
		return r.markErr
	}
	for _, result := range r.results {
		if result.ID == id {
			result.Status = models.ResultStatusProcessed
			result.ProcessedAt = processedAt
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeWinnerRepo struct {
	mu        sync.Mutex
	winners   []*models.Winner
	upserts   int
	failAfter int // fail every Upsert once this many have succeeded, 0 disables
}

func (r *fakeWinnerRepo) Upsert(_ context.Context, winner *models.Winner) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAfter > 0 && r.upserts >= r.failAfter {
		return false, errors.New("winner write failed")
	}
	r.upserts++
	for i, existing := range r.winners {
		if existing.ResultID == winner.ResultID && existing.BetID == winner.BetID {
			winner.ID = existing.ID
			r.winners[i] = winner
			return false, nil
		}
	}
	if winner.ID.IsZero() {
		winner.ID = primitive.NewObjectID()
	}
	r.winners = append(r.winners, winner)
	return true, nil
}

func (r *fakeWinnerRepo) CreateMany(ctx context.Context, winners []*models.Winner) error {
	for _, winner := range winners {
		if _, err := r.Upsert(ctx, winner); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeWinnerRepo) FindByResultID(_ context.Context, resultID primitive.ObjectID) ([]*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Winner
	for _, winner := range r.winners {
		if winner.ResultID == resultID {
			matched = append(matched, winner)
		}
	}
	return matched, nil
}

func (r *fakeWinnerRepo) FindByGameID(_ context.Context, gameID primitive.ObjectID, page, limit int) ([]*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Winner
	for _, winner := range r.winners {
		if winner.GameID == gameID {
			matched = append(matched, winner)
		}
	}
	return paginate(matched, page, limit), nil
}

func (r *fakeWinnerRepo) FindByCustomerID(_ context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Winner
	for _, winner := range r.winners {
		if winner.CustomerID == customerID {
			matched = append(matched, winner)
		}
	}
	return paginate(matched, page, limit), nil
}

func (r *fakeWinnerRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.winners)), nil
}

type fakeRateConfigRepo struct {
	mu     sync.Mutex
	config *models.RateConfig
}

func (r *fakeRateConfigRepo) Get(_ context.Context) (*models.RateConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.config == nil {
		return nil, mongo.ErrNoDocuments
	}
	return r.config, nil
}

func (r *fakeRateConfigRepo) Upsert(_ context.Context, config *models.RateConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = config
	return nil
}

type fakeLedgerRepo struct {
	mu        sync.Mutex
	entries   []*models.LedgerEntry
	createErr error
}

func (r *fakeLedgerRepo) Create(_ context.Context, entry *models.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeLedgerRepo) FindAll(_ context.Context, page, limit int) ([]*models.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return paginate(r.entries, page, limit), nil
}

func (r *fakeLedgerRepo) SummarizeAll(_ context.Context) (*models.LedgerSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return summarizeEntries(r.entries)
}

func (r *fakeLedgerRepo) FindByOwnerID(_ context.Context, ownerID primitive.ObjectID, page, limit int) ([]*models.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.LedgerEntry
	for _, entry := range r.entries {
		if entry.OwnerID == ownerID {
			matched = append(matched, entry)
		}
	}
	return paginate(matched, page, limit), nil
}

func (r *fakeLedgerRepo) FindByTransactionRef(_ context.Context, ref string) ([]*models.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.LedgerEntry
	for _, entry := range r.entries {
		if entry.TransactionRef == ref {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (r *fakeLedgerRepo) SummarizeByOwnerID(_ context.Context, ownerID primitive.ObjectID) (*models.LedgerSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.LedgerEntry
	for _, entry := range r.entries {
		if entry.OwnerID == ownerID {
			matched = append(matched, entry)
		}
	}
	return summarizeEntries(matched)
}

func summarizeEntries(entries []*models.LedgerEntry) (*models.LedgerSummary, error) {
	total := decimal.Zero
	pending := decimal.Zero
	paid := decimal.Zero
	for _, entry := range entries {
		amount, err := decimal.NewFromString(entry.Commission)
		if err != nil {
			return nil, err
		}
		total = total.Add(amount)
		if entry.Status == models.LedgerStatusPaid {
			paid = paid.Add(amount)
		} else {
			pending = pending.Add(amount)
		}
	}
	return &models.LedgerSummary{
		TotalEntries:    len(entries),
		TotalCommission: total.StringFixed(2),
		PendingAmount:   pending.StringFixed(2),
		PaidAmount:      paid.StringFixed(2),
	}, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[primitive.ObjectID]*models.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return customer, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, customer := range r.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = customer
	return nil
}

type fakeCollaboratorRepo struct {
	mu            sync.Mutex
	collaborators map[primitive.ObjectID]*models.Collaborator
}

func newFakeCollaboratorRepo() *fakeCollaboratorRepo {
	return &fakeCollaboratorRepo{collaborators: map[primitive.ObjectID]*models.Collaborator{}}
}

func (r *fakeCollaboratorRepo) Create(_ context.Context, collaborator *models.Collaborator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if collaborator.ID.IsZero() {
		collaborator.ID = primitive.NewObjectID()
	}
	r.collaborators[collaborator.ID] = collaborator
	return nil
}

func (r *fakeCollaboratorRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	collaborator, ok := r.collaborators[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return collaborator, nil
}

func (r *fakeCollaboratorRepo) FindByEmail(_ context.Context, email string) (*models.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, collaborator := range r.collaborators {
		if collaborator.Email == email {
			return collaborator, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCollaboratorRepo) FindByReferralCode(_ context.Context, code string) (*models.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, collaborator := range r.collaborators {
		if collaborator.ReferralCode == code {
			return collaborator, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCollaboratorRepo) Update(_ context.Context, collaborator *models.Collaborator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collaborators[collaborator.ID] = collaborator
	return nil
}

type fakeAdminUserRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.AdminUser
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{admins: map[primitive.ObjectID]*models.AdminUser{}}
}

func (r *fakeAdminUserRepo) Create(_ context.Context, admin *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return admin, nil
}

func (r *fakeAdminUserRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeLoginAttemptRepo struct {
	mu       sync.Mutex
	attempts map[string]*models.LoginAttempt
}

func newFakeLoginAttemptRepo() *fakeLoginAttemptRepo {
	return &fakeLoginAttemptRepo{attempts: map[string]*models.LoginAttempt{}}
}

func (r *fakeLoginAttemptRepo) Get(_ context.Context, email string) (*models.LoginAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return attempt, nil
}

func (r *fakeLoginAttemptRepo) RecordFailure(_ context.Context, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[email]
	if !ok {
		attempt = &models.LoginAttempt{Email: email}
		r.attempts[email] = attempt
	}
	attempt.Failures++
	attempt.LastFail = at
	return nil
}

func (r *fakeLoginAttemptRepo) Reset(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, email)
	return nil
}

type fakePersonalizationRepo struct {
	mu   sync.Mutex
	docs map[string]*models.Personalization
}

func newFakePersonalizationRepo() *fakePersonalizationRepo {
	return &fakePersonalizationRepo{docs: map[string]*models.Personalization{}}
}

func (r *fakePersonalizationRepo) FindByKey(_ context.Context, key string) (*models.Personalization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[key]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return doc, nil
}

func (r *fakePersonalizationRepo) UpsertByKey(_ context.Context, key string, values map[string]string, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[key]
	if !ok {
		doc = &models.Personalization{Key: key, CreatedAt: time.Now()}
		r.docs[key] = doc
	}
	doc.Values = values
	doc.UpdatedBy = updatedBy
	doc.UpdatedAt = time.Now()
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
