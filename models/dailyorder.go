package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

type OrderStatus string

const (
	OrderStatusOrdered OrderStatus = "ordered"
	OrderStatusSkipped OrderStatus = "skipped"
)

// DailyOrder is an immutable snapshot of one user's preference for one
// shift of one day. Exactly one exists per (date, shift, userId) — the
// unique index in config.EnsureIndexes enforces it. Rows are never
// updated or deleted; the collection is the audit ledger billing is
// recomputed from.
type DailyOrder struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date     string             `bson:"date" json:"date"` // YYYY-MM-DD
	Shift    Shift              `bson:"shift" json:"shift"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	Quantity float64            `bson:"quantity" json:"quantity"`
	IsActive bool               `bson:"isActive" json:"isActive"`
	Status   OrderStatus        `bson:"status" json:"status"`
}
