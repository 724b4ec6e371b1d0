package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/models"
)

// Storage interfaces are declared here, on the consumer side, and
// implemented by the mongo-backed types in the store package. Tests
// substitute in-memory fakes.

type UserDirectory interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
}

type DailyOrderStore interface {
	InsertMany(ctx context.Context, orders []models.DailyOrder) (int, error)
	FindUserRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DailyOrder, error)
	FindOrderedRange(ctx context.Context, from, to string) ([]models.DailyOrder, error)
	FindByDate(ctx context.Context, date string) ([]models.DailyOrder, error)
	FindByDateShift(ctx context.Context, date string, shift models.Shift) ([]models.DailyOrder, error)
}

type BillStore interface {
	UpsertTotals(ctx context.Context, userID primitive.ObjectID, month string, totalLiters, amount float64) (models.Bill, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.BillStatus) (models.Bill, error)
	FindByMonth(ctx context.Context, month string) ([]models.Bill, error)
}
