package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Personalization is a named layout document for the public site (logo,
// banner, colors, free-form texts). The public endpoint serves it as-is;
// only administrators may write it.
type Personalization struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key       string             `bson:"chave" json:"chave"`
	Values    map[string]string  `bson:"valores" json:"valores"`
	UpdatedBy string             `bson:"atualizadoPor,omitempty" json:"atualizadoPor,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
