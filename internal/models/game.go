package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameStatus represents the lifecycle status of a game
type GameStatus string

const (
	GameStatusUpcoming  GameStatus = "EM_BREVE"
	GameStatusOpen      GameStatus = "ABERTO"
	GameStatusClosed    GameStatus = "ENCERRADO"
	GameStatusFinalized GameStatus = "FINALIZADO"
)

// GameType distinguishes the ten-number bolão from the animal-game variant
type GameType string

const (
	GameTypeBolao GameType = "BOLAO"
	GameTypeBicho GameType = "BICHO"
)

// Game represents a single bolão a customer can buy tickets for.
// Status is mutated by the lifecycle sweep (ABERTO -> ENCERRADO) and by the
// prize distribution engine (ENCERRADO -> FINALIZADO); a finalized game is
// immutable except for audit fields.
type Game struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"nome" json:"nome"`
	Slug         string             `bson:"slug" json:"slug"`
	Type         GameType           `bson:"tipo" json:"tipo"`
	Status       GameStatus         `bson:"status" json:"status"`
	StartDate    time.Time          `bson:"dataInicio" json:"dataInicio"`
	EndDate      time.Time          `bson:"dataFim" json:"dataFim"`
	TicketPrice  string             `bson:"valorBilhete" json:"valorBilhete"`
	PrizePool    string             `bson:"premioTotal" json:"premioTotal"`
	MinNumbers   int                `bson:"minNumeros" json:"minNumeros"`
	MaxNumbers   int                `bson:"maxNumeros" json:"maxNumeros"`
	Visible      bool               `bson:"visivel" json:"visivel"`
	DrawnNumbers []string           `bson:"numerosSorteados,omitempty" json:"numerosSorteados,omitempty"`
	FinalizedAt  time.Time          `bson:"finalizadoEm,omitempty" json:"finalizadoEm,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
