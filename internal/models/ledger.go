package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerStatus represents the payout status of a ledger entry
type LedgerStatus string

const (
	LedgerStatusPending LedgerStatus = "PENDENTE"
	LedgerStatusPaid    LedgerStatus = "PAGO"
)

// Ledger entry categories
const (
	LedgerCategoryCommission = "COMISSAO_PREMIO"
)

// LedgerEntry is an append-only financial record crediting a collaborator
// or an administrator. Each winning bet with a referring collaborator
// produces exactly one pair of entries (collaborator + admin) sharing the
// same TransactionRef and timestamp.
type LedgerEntry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID        primitive.ObjectID `bson:"titularId" json:"titularId"`
	CustomerID     primitive.ObjectID `bson:"clienteId" json:"clienteId"`
	BetID          primitive.ObjectID `bson:"bilheteId" json:"bilheteId"`
	TransactionRef string             `bson:"referenciaTransacao" json:"referenciaTransacao"`
	GrossAmount    string             `bson:"valorBruto" json:"valorBruto"`
	Percentage     float64            `bson:"percentualAplicado" json:"percentualAplicado"`
	Commission     string             `bson:"comissao" json:"comissao"`
	Category       string             `bson:"categoria" json:"categoria"`
	Description    string             `bson:"descricao" json:"descricao"`
	Status         LedgerStatus       `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// LedgerSummary aggregates a collaborator's ledger for the dashboard.
type LedgerSummary struct {
	TotalEntries    int    `json:"totalLancamentos"`
	TotalCommission string `json:"totalComissao"`
	PendingAmount   string `json:"totalPendente"`
	PaidAmount      string `json:"totalPago"`
}
