package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/models"
)

func newTestGenerator(users *fakeUsers, orders *fakeOrders, now time.Time) *Generator {
	g := NewGenerator(users, orders, testSettings())
	g.now = func() time.Time { return now }
	return g
}

func subscriber(name string, morning, evening models.ShiftPreference) models.User {
	u := fakeUser(name)
	u.MilkPreference = models.MilkPreference{Morning: morning, Evening: evening}
	return u
}

func TestGenerateShiftOrdersSnapshotsEverySubscriber(t *testing.T) {
	active := subscriber("Asha", models.ShiftPreference{IsActive: true, Quantity: 1.5}, models.ShiftPreference{})
	paused := subscriber("Bela", models.ShiftPreference{IsActive: false, Quantity: 2}, models.ShiftPreference{})
	orders := &fakeOrders{}
	gen := newTestGenerator(&fakeUsers{users: []models.User{active, paused}}, orders, time.Date(2025, 6, 10, 23, 30, 0, 0, ist))

	err := gen.GenerateShiftOrders(context.Background(), models.ShiftMorning)
	require.NoError(t, err)
	require.Len(t, orders.orders, 2)

	byUser := map[string]models.DailyOrder{}
	for _, o := range orders.orders {
		assert.Equal(t, "2025-06-10", o.Date)
		assert.Equal(t, models.ShiftMorning, o.Shift)
		byUser[o.UserID.Hex()] = o
	}

	got := byUser[active.ID.Hex()]
	assert.Equal(t, models.OrderStatusOrdered, got.Status)
	assert.Equal(t, 1.5, got.Quantity)
	assert.True(t, got.IsActive)

	got = byUser[paused.ID.Hex()]
	assert.Equal(t, models.OrderStatusSkipped, got.Status)
	assert.Equal(t, 0.0, got.Quantity, "a paused preference snapshots as zero, whatever quantity it holds")
	assert.False(t, got.IsActive)
}

func TestGenerateShiftOrdersUsesConfiguredZone(t *testing.T) {
	user := subscriber("Asha", models.ShiftPreference{IsActive: true, Quantity: 1}, models.ShiftPreference{})
	orders := &fakeOrders{}
	// 20:00 UTC is already the next day in IST
	gen := newTestGenerator(&fakeUsers{users: []models.User{user}}, orders, time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))

	err := gen.GenerateShiftOrders(context.Background(), models.ShiftEvening)
	require.NoError(t, err)
	require.Len(t, orders.orders, 1)
	assert.Equal(t, "2025-06-02", orders.orders[0].Date)
}

func TestGenerateShiftOrdersRerunIsIdempotent(t *testing.T) {
	user := subscriber("Asha", models.ShiftPreference{IsActive: true, Quantity: 1}, models.ShiftPreference{})
	orders := &fakeOrders{}
	gen := newTestGenerator(&fakeUsers{users: []models.User{user}}, orders, time.Date(2025, 6, 10, 23, 30, 0, 0, ist))

	require.NoError(t, gen.GenerateShiftOrders(context.Background(), models.ShiftMorning))
	require.NoError(t, gen.GenerateShiftOrders(context.Background(), models.ShiftMorning))

	assert.Len(t, orders.orders, 1, "a rerun for a covered (date, shift) must not duplicate rows")
}

func TestGenerateShiftOrdersShiftsAreIndependent(t *testing.T) {
	user := subscriber("Asha",
		models.ShiftPreference{IsActive: true, Quantity: 1},
		models.ShiftPreference{IsActive: true, Quantity: 0.5},
	)
	orders := &fakeOrders{}
	gen := newTestGenerator(&fakeUsers{users: []models.User{user}}, orders, time.Date(2025, 6, 10, 23, 30, 0, 0, ist))

	require.NoError(t, gen.GenerateShiftOrders(context.Background(), models.ShiftMorning))
	require.NoError(t, gen.GenerateShiftOrders(context.Background(), models.ShiftEvening))

	assert.Len(t, orders.orders, 2)
}

func TestGenerateShiftOrdersDirectoryFailureAbortsCycle(t *testing.T) {
	orders := &fakeOrders{}
	gen := newTestGenerator(&fakeUsers{err: errors.New("connection reset")}, orders, time.Now())

	err := gen.GenerateShiftOrders(context.Background(), models.ShiftMorning)
	assert.Error(t, err)
	assert.Empty(t, orders.orders)
}

func TestGenerateShiftOrdersInsertFailureIsReported(t *testing.T) {
	user := subscriber("Asha", models.ShiftPreference{IsActive: true, Quantity: 1}, models.ShiftPreference{})
	orders := &fakeOrders{insertErr: errors.New("write concern timeout")}
	gen := newTestGenerator(&fakeUsers{users: []models.User{user}}, orders, time.Now())

	err := gen.GenerateShiftOrders(context.Background(), models.ShiftMorning)
	assert.ErrorContains(t, err, "write concern timeout")
}
