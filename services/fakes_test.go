package services

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/models"
)

type fakeUsers struct {
	users []models.User
	err   error
}

func (f *fakeUsers) FindAll(ctx context.Context) ([]models.User, error) {
	return f.users, f.err
}

func (f *fakeUsers) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (f *fakeUsers) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

// fakeOrders mimics the ledger's unique (date, shift, userId) index:
// duplicate inserts are silently skipped, like the mongo store treats
// duplicate-key write errors.
type fakeOrders struct {
	orders    []models.DailyOrder
	insertErr error
	findErr   error
}

func (f *fakeOrders) has(date string, shift models.Shift, userID primitive.ObjectID) bool {
	for _, o := range f.orders {
		if o.Date == date && o.Shift == shift && o.UserID == userID {
			return true
		}
	}
	return false
}

func (f *fakeOrders) InsertMany(ctx context.Context, orders []models.DailyOrder) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	inserted := 0
	for _, o := range orders {
		if f.has(o.Date, o.Shift, o.UserID) {
			continue
		}
		f.orders = append(f.orders, o)
		inserted++
	}
	return inserted, nil
}

func (f *fakeOrders) FindUserRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DailyOrder, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.DailyOrder
	for _, o := range f.orders {
		if o.UserID == userID && o.Date >= from && o.Date <= to {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) FindOrderedRange(ctx context.Context, from, to string) ([]models.DailyOrder, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.DailyOrder
	for _, o := range f.orders {
		if o.Status == models.OrderStatusOrdered && o.Date >= from && o.Date <= to {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) FindByDate(ctx context.Context, date string) ([]models.DailyOrder, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.DailyOrder
	for _, o := range f.orders {
		if o.Date == date {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) FindByDateShift(ctx context.Context, date string, shift models.Shift) ([]models.DailyOrder, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.DailyOrder
	for _, o := range f.orders {
		if o.Date == date && o.Shift == shift {
			out = append(out, o)
		}
	}
	return out, nil
}

// fakeBills reproduces the store's upsert contract: totals are always
// overwritten, status only set on first insert. The whole-month fan-out
// upserts from one goroutine per user, so every method locks.
type fakeBills struct {
	mu         sync.Mutex
	bills      []*models.Bill
	upsertErrs map[primitive.ObjectID]error
}

func (f *fakeBills) find(userID primitive.ObjectID, month string) *models.Bill {
	for _, b := range f.bills {
		if b.UserID == userID && b.Month == month {
			return b
		}
	}
	return nil
}

func (f *fakeBills) UpsertTotals(ctx context.Context, userID primitive.ObjectID, month string, totalLiters, amount float64) (models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.upsertErrs[userID]; err != nil {
		return models.Bill{}, err
	}
	if b := f.find(userID, month); b != nil {
		b.TotalLiters = totalLiters
		b.Amount = amount
		return *b, nil
	}
	b := &models.Bill{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Month:       month,
		TotalLiters: totalLiters,
		Amount:      amount,
		Status:      models.BillStatusUnpaid,
	}
	f.bills = append(f.bills, b)
	return *b, nil
}

func (f *fakeBills) SetStatus(ctx context.Context, id primitive.ObjectID, status models.BillStatus) (models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bills {
		if b.ID == id {
			b.Status = status
			return *b, nil
		}
	}
	return models.Bill{}, ErrBillNotFound
}

func (f *fakeBills) FindByMonth(ctx context.Context, month string) ([]models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Bill
	for _, b := range f.bills {
		if b.Month == month {
			out = append(out, *b)
		}
	}
	return out, nil
}

func fakeUser(name string) models.User {
	return models.User{ID: primitive.NewObjectID(), Name: name, Phone: fmt.Sprintf("%s-phone", name)}
}
