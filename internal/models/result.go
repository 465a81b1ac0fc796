package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultStatus represents the processing status of a draw result.
// PROCESSANDO is the claim state: a worker flips PENDENTE -> PROCESSANDO
// with a conditional update before touching winners or ledgers, so two
// overlapping distribution runs cannot double-process the same result.
type ResultStatus string

const (
	ResultStatusPending    ResultStatus = "PENDENTE"
	ResultStatusProcessing ResultStatus = "PROCESSANDO"
	ResultStatusProcessed  ResultStatus = "PROCESSADO"
)

// Result represents an administrator-submitted record of drawn numbers for
// a game's draw. For BICHO games the draw is a dezena + horário pair instead
// of a number list.
type Result struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID       primitive.ObjectID `bson:"jogoId" json:"jogoId"`
	Numbers      []string           `bson:"numeros,omitempty" json:"numeros,omitempty"`
	Dezena       string             `bson:"dezena,omitempty" json:"dezena,omitempty"`
	Horario      string             `bson:"horario,omitempty" json:"horario,omitempty"`
	DrawDate     time.Time          `bson:"dataSorteio" json:"dataSorteio"`
	PrizeTotal   string             `bson:"premioTotal" json:"premioTotal"`
	Status       ResultStatus       `bson:"status" json:"status"`
	ProcessedAt  time.Time          `bson:"processadoEm,omitempty" json:"processadoEm,omitempty"`
	SubmittedBy  string             `bson:"enviadoPor,omitempty" json:"enviadoPor,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
