package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/models"
	"backend/services"
)

// BillStore owns bill totals. Status is written only through SetStatus
// and the $setOnInsert default, so a recompute can never clobber a
// concurrent payment mark.
type BillStore struct {
	coll *mongo.Collection
}

func NewBillStore(coll *mongo.Collection) *BillStore {
	return &BillStore{coll: coll}
}

// UpsertTotals overwrites totalLiters and amount for (user, month) in a
// single atomic operation. Status and createdAt are set only when the
// document is first inserted.
func (s *BillStore) UpsertTotals(ctx context.Context, userID primitive.ObjectID, month string, totalLiters, amount float64) (models.Bill, error) {
	filter := bson.M{"userId": userID, "month": month}
	update := bson.M{
		"$set": bson.M{"totalLiters": totalLiters, "amount": amount},
		"$setOnInsert": bson.M{
			"status":    models.BillStatusUnpaid,
			"createdAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var bill models.Bill
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&bill)
	return bill, err
}

func (s *BillStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.BillStatus) (models.Bill, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var bill models.Bill
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&bill)
	if err == mongo.ErrNoDocuments {
		return models.Bill{}, services.ErrBillNotFound
	}
	return bill, err
}

func (s *BillStore) FindByMonth(ctx context.Context, month string) ([]models.Bill, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"month": month})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []models.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}
