package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RateConfig is the singleton record holding the percentage of a prize pool
// allocated to each score tier, plus the collaborator commission percentage.
// Written by administrative screens, read-only from the distribution engine.
type RateConfig struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Rateio10Pontos    float64            `bson:"rateio_10_pontos" json:"rateio_10_pontos"`
	Rateio9Pontos     float64            `bson:"rateio_9_pontos" json:"rateio_9_pontos"`
	RateioMenosPontos float64            `bson:"rateio_menos_pontos" json:"rateio_menos_pontos"`
	ComissaoPct       float64            `bson:"comissao_colaborador" json:"comissao_colaborador"`
	UpdatedBy         string             `bson:"atualizadoPor,omitempty" json:"atualizadoPor,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TierRate returns the configured percentage for a tier.
func (c *RateConfig) TierRate(tier string) float64 {
	switch tier {
	case TierTenPoints:
		return c.Rateio10Pontos
	case TierNinePoints:
		return c.Rateio9Pontos
	default:
		return c.RateioMenosPontos
	}
}
