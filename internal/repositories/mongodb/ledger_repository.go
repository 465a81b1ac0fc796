package mongodb

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LedgerRepository implements the repositories.LedgerRepository interface.
// The collaborator and admin ledgers are two instances bound to different
// collections.
type LedgerRepository struct {
	collection *mongo.Collection
}

// NewCollaboratorLedgerRepository creates the collaborator-side ledger
func NewCollaboratorLedgerRepository(db *mongo.Database) repositories.LedgerRepository {
	return &LedgerRepository{collection: db.Collection("financeiro_colaboradores")}
}

// NewAdminLedgerRepository creates the admin-side ledger
func NewAdminLedgerRepository(db *mongo.Database) repositories.LedgerRepository {
	return &LedgerRepository{collection: db.Collection("financeiro_admins")}
}

// Create appends a ledger entry. Entries are never updated or deleted.
func (r *LedgerRepository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindAll lists the whole ledger with pagination, newest first
func (r *LedgerRepository) FindAll(ctx context.Context, page, limit int) ([]*models.LedgerEntry, error) {
	return r.find(ctx, bson.M{}, page, limit)
}

// FindByOwnerID finds entries by owner with pagination, newest first
func (r *LedgerRepository) FindByOwnerID(ctx context.Context, ownerID primitive.ObjectID, page, limit int) ([]*models.LedgerEntry, error) {
	return r.find(ctx, bson.M{"titularId": ownerID}, page, limit)
}

func (r *LedgerRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.LedgerEntry, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.LedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.LedgerEntry{}
	}
	return entries, nil
}

// FindByTransactionRef finds the entries sharing a transaction reference
func (r *LedgerRepository) FindByTransactionRef(ctx context.Context, ref string) ([]*models.LedgerEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"referenciaTransacao": ref})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.LedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.LedgerEntry{}
	}
	return entries, nil
}

// SummarizeAll totals the whole ledger.
func (r *LedgerRepository) SummarizeAll(ctx context.Context) (*models.LedgerSummary, error) {
	entries, err := r.FindAll(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return summarize(entries), nil
}

// SummarizeByOwnerID totals an owner's ledger. Amounts are stored as
// two-decimal strings, so the sum is computed in decimal, not in the
// database.
func (r *LedgerRepository) SummarizeByOwnerID(ctx context.Context, ownerID primitive.ObjectID) (*models.LedgerSummary, error) {
	entries, err := r.FindByOwnerID(ctx, ownerID, 0, 0)
	if err != nil {
		return nil, err
	}
	return summarize(entries), nil
}

func summarize(entries []*models.LedgerEntry) *models.LedgerSummary {
	total := decimal.Zero
	pending := decimal.Zero
	paid := decimal.Zero
	for _, e := range entries {
		amount, err := decimal.NewFromString(e.Commission)
		if err != nil {
			continue
		}
		total = total.Add(amount)
		switch e.Status {
		case models.LedgerStatusPaid:
			paid = paid.Add(amount)
		default:
			pending = pending.Add(amount)
		}
	}

	return &models.LedgerSummary{
		TotalEntries:    len(entries),
		TotalCommission: total.StringFixed(2),
		PendingAmount:   pending.StringFixed(2),
		PaidAmount:      paid.StringFixed(2),
	}
}
