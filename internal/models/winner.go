package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize tiers. The first three belong to the ten-number variant and are
// evaluated in priority order; TierExactHit is the single winning bucket of
// the BICHO variant.
const (
	TierTenPoints   = "10_pontos"
	TierNinePoints  = "9_pontos"
	TierFewerPoints = "menos_pontos"
	TierExactHit    = "acerto_exato"
)

// Winner represents one winning bet of a processed result. One row per
// winning bet per result; append-only. PrizeAmount is a two-decimal
// currency string, the representation the financial endpoints serve as-is.
type Winner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ResultID    primitive.ObjectID `bson:"resultadoId" json:"resultadoId"`
	GameID      primitive.ObjectID `bson:"jogoId" json:"jogoId"`
	BetID       primitive.ObjectID `bson:"bilheteId" json:"bilheteId"`
	CustomerID  primitive.ObjectID `bson:"clienteId" json:"clienteId"`
	Score       int                `bson:"pontuacao" json:"pontuacao"`
	Tier        string             `bson:"faixa" json:"faixa"`
	PrizeAmount string             `bson:"premio" json:"premio"`
	ProcessedAt time.Time          `bson:"processadoEm" json:"processadoEm"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
