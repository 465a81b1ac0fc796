package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer represents a registered customer of the platform
type Customer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"nome" json:"nome"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Password       string             `bson:"senha" json:"-"`
	CollaboratorID primitive.ObjectID `bson:"colaboradorId,omitempty" json:"colaboradorId,omitempty"`
	Active         bool               `bson:"ativo" json:"ativo"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Collaborator represents a referral agent. Customers registered through a
// collaborator's referral code generate commission on their winning bets.
type Collaborator struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"nome" json:"nome"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Password     string             `bson:"senha" json:"-"`
	ReferralCode string             `bson:"codigoIndicacao" json:"codigoIndicacao"`
	GameIDs      []primitive.ObjectID `bson:"jogoIds,omitempty" json:"jogoIds,omitempty"`
	Active       bool               `bson:"ativo" json:"ativo"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasGame reports whether the collaborator is associated with the game.
func (c *Collaborator) HasGame(gameID primitive.ObjectID) bool {
	for _, id := range c.GameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}
