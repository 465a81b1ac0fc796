package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser represents a back-office account (admin or superadmin).
type AdminUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"nome" json:"nome"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"senha" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"senha" binding:"required"`
}

// RegisterRequest defines the structure for customer registration requests
type RegisterRequest struct {
	Name         string `json:"nome" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"telefone"`
	Password     string `json:"senha" binding:"required,min=6"`
	ReferralCode string `json:"codigoIndicacao"`
}

// TokenClaims carries the identity extracted from a verified bearer token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    Role
}

// LoginAttempt is a keyed failure counter shared across instances. The
// original system kept these counters in process memory, which does not
// survive horizontal scaling; here they live in their own collection.
type LoginAttempt struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Failures  int                `bson:"falhas" json:"falhas"`
	LastFail  time.Time          `bson:"ultimaFalha" json:"ultimaFalha"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
