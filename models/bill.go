package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillStatus string

const (
	BillStatusPaid   BillStatus = "paid"
	BillStatusUnpaid BillStatus = "unpaid"
)

func (s BillStatus) Valid() bool {
	return s == BillStatusPaid || s == BillStatusUnpaid
}

// Bill is the per-user monthly aggregate. At most one exists per
// (userId, month). Totals are overwritten on every recomputation;
// status is written only by the status endpoint and defaulted to
// unpaid when the document is first inserted.
type Bill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Month       string             `bson:"month" json:"month"` // YYYY-MM
	TotalLiters float64            `bson:"totalLiters" json:"totalLiters"`
	Amount      float64            `bson:"amount" json:"amount"`
	Status      BillStatus         `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// MonthlySummary is the read-side rollup over the bills of one month.
// It reflects whatever totals were last aggregated, not the order ledger.
type MonthlySummary struct {
	Month           string  `json:"month"`
	TotalBills      int     `json:"totalBills"`
	PaidCount       int     `json:"paidCount"`
	UnpaidCount     int     `json:"unpaidCount"`
	TotalAmount     float64 `json:"totalAmount"`
	CollectedAmount float64 `json:"collectedAmount"`
	PendingAmount   float64 `json:"pendingAmount"`
	TotalLiters     float64 `json:"totalLiters"`
}
