package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BetStatus represents the status of a bet (ticket)
type BetStatus string

const (
	BetStatusPending    BetStatus = "PENDENTE"
	BetStatusConfirmed  BetStatus = "CONFIRMADA"
	BetStatusWinning    BetStatus = "PREMIADA"
	BetStatusNonWinning BetStatus = "NAO_PREMIADA"
)

// Bet represents a customer's paid entry into a game. Bets are never
// deleted; the prize distribution engine mutates each bet exactly once
// (status + outcome note) when the owning game's result is processed.
type Bet struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID         primitive.ObjectID `bson:"jogoId" json:"jogoId"`
	CustomerID     primitive.ObjectID `bson:"clienteId" json:"clienteId"`
	CollaboratorID primitive.ObjectID `bson:"colaboradorId,omitempty" json:"colaboradorId,omitempty"`
	Numbers        []string           `bson:"numeros" json:"numeros"`
	Amount         string             `bson:"valorPago" json:"valorPago"`
	PaymentMethod  string             `bson:"metodoPagamento" json:"metodoPagamento"`
	PaymentRef     string             `bson:"referenciaPagamento,omitempty" json:"referenciaPagamento,omitempty"`
	GatewayRef     string             `bson:"referenciaGateway,omitempty" json:"referenciaGateway,omitempty"`
	Status         BetStatus          `bson:"status" json:"status"`
	Outcome        string             `bson:"resultado,omitempty" json:"resultado,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasCollaborator reports whether the bet was referred by a collaborator.
func (b *Bet) HasCollaborator() bool {
	return !b.CollaboratorID.IsZero()
}
