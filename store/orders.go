package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/models"
)

// DailyOrderStore is the append-only order ledger. Nothing here updates
// or deletes; the unique (date, shift, userId) index makes inserts
// retry-safe.
type DailyOrderStore struct {
	coll *mongo.Collection
}

func NewDailyOrderStore(coll *mongo.Collection) *DailyOrderStore {
	return &DailyOrderStore{coll: coll}
}

// InsertMany writes a generation batch unordered, so one failed row does
// not stop the rest. Duplicate-key failures mean the row already exists
// from an earlier run of the same cycle and are not errors; anything
// else is reported along with how many rows did land.
func (s *DailyOrderStore) InsertMany(ctx context.Context, orders []models.DailyOrder) (int, error) {
	if len(orders) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(orders))
	for i, order := range orders {
		docs[i] = order
	}

	res, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err == nil || duplicatesOnly(err) {
		return inserted, nil
	}
	return inserted, err
}

// duplicatesOnly reports whether err is a bulk write failure consisting
// solely of duplicate-key rejections. A write concern error disqualifies
// it: every row may have hit the index, but the acknowledged ones were
// not durably replicated, and the caller must hear about that.
func duplicatesOnly(err error) bool {
	var bulkErr mongo.BulkWriteException
	if !errors.As(err, &bulkErr) {
		return false
	}
	if bulkErr.WriteConcernError != nil {
		return false
	}
	if len(bulkErr.WriteErrors) == 0 {
		return false
	}
	for _, writeErr := range bulkErr.WriteErrors {
		if !mongo.IsDuplicateKeyError(writeErr) {
			return false
		}
	}
	return true
}

func (s *DailyOrderStore) FindUserRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DailyOrder, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "shift", Value: 1}})
	return s.find(ctx, filter, opts)
}

// FindOrderedRange fetches only status=ordered rows, for the whole-month
// aggregation that never needs skipped rows at all.
func (s *DailyOrderStore) FindOrderedRange(ctx context.Context, from, to string) ([]models.DailyOrder, error) {
	filter := bson.M{
		"date":   bson.M{"$gte": from, "$lte": to},
		"status": models.OrderStatusOrdered,
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "shift", Value: 1}})
	return s.find(ctx, filter, opts)
}

func (s *DailyOrderStore) FindByDate(ctx context.Context, date string) ([]models.DailyOrder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "shift", Value: 1}})
	return s.find(ctx, bson.M{"date": date}, opts)
}

func (s *DailyOrderStore) FindByDateShift(ctx context.Context, date string, shift models.Shift) ([]models.DailyOrder, error) {
	return s.find(ctx, bson.M{"date": date, "shift": shift}, nil)
}

func (s *DailyOrderStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.DailyOrder, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = s.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.DailyOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
