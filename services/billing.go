package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/config"
	"backend/models"
	"backend/utils"
)

// BillingService recomputes bills from the daily order ledger on every
// request. Bills are a derived cache: totals are always overwritten,
// never merged, so rerunning after any failure is safe.
type BillingService struct {
	users    UserDirectory
	orders   DailyOrderStore
	bills    BillStore
	settings *config.Settings
	now      func() time.Time
}

func NewBillingService(users UserDirectory, orders DailyOrderStore, bills BillStore, settings *config.Settings) *BillingService {
	return &BillingService{
		users:    users,
		orders:   orders,
		bills:    bills,
		settings: settings,
		now:      time.Now,
	}
}

// UserBill is the per-user billing response: the upserted bill plus the
// itemized orders it was computed from.
type UserBill struct {
	Bill        models.Bill         `json:"bill"`
	DailyOrders []models.DailyOrder `json:"dailyOrders"`
}

// MonthEntry is one user's slice of the whole-month aggregation. A
// failed bill upsert is reported in Error without touching the other
// entries.
type MonthEntry struct {
	User        models.User         `json:"user"`
	Bill        *models.Bill        `json:"bill,omitempty"`
	DailyOrders []models.DailyOrder `json:"dailyOrders"`
	Error       string              `json:"error,omitempty"`
}

func (s *BillingService) today() time.Time {
	return s.now().In(s.settings.Location)
}

// monthRange is the ledger scan window for a month. For the month in
// progress the upper bound is today, so days that have not happened yet
// never bill.
func (s *BillingService) monthRange(month models.Month) (string, string) {
	from, to := month.FirstDay(), month.LastDay()
	if today := s.today(); month.Contains(today) {
		to = models.FormatDate(today)
	}
	return from, to
}

// UserMonthBill recomputes and upserts one user's bill for one month.
// A month with no orders yields a zero-total bill, not an error.
func (s *BillingService) UserMonthBill(ctx context.Context, userIDHex, monthToken string) (*UserBill, error) {
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, validationErrorf("invalid user id %q", userIDHex)
	}
	month, err := models.ParseMonth(monthToken)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	from, to := s.monthRange(month)
	orders, err := s.orders.FindUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	bill, err := s.upsertBill(ctx, userID, month.String(), sumOrdered(orders))
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.DailyOrder{}
	}
	return &UserBill{Bill: bill, DailyOrders: orders}, nil
}

// MonthBills aggregates the whole month for every user that has ordered
// rows in it. Zero matching rows short-circuits to an empty list; the
// per-user upserts run independently so one failure cannot abort the
// batch.
func (s *BillingService) MonthBills(ctx context.Context, monthToken string) ([]MonthEntry, error) {
	month, err := models.ParseMonth(monthToken)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	from, to := s.monthRange(month)
	orders, err := s.orders.FindOrderedRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []MonthEntry{}, nil
	}

	ordersByUser := make(map[primitive.ObjectID][]models.DailyOrder)
	litersByUser := make(map[primitive.ObjectID]float64)
	for _, order := range orders {
		ordersByUser[order.UserID] = append(ordersByUser[order.UserID], order)
		litersByUser[order.UserID] += order.Quantity
	}

	userIDs := make([]primitive.ObjectID, 0, len(ordersByUser))
	for id := range ordersByUser {
		userIDs = append(userIDs, id)
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]MonthEntry, len(users))
	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func(i int, user models.User) {
			defer wg.Done()
			entry := MonthEntry{User: user, DailyOrders: ordersByUser[user.ID]}
			bill, err := s.upsertBill(ctx, user.ID, month.String(), litersByUser[user.ID])
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Bill = &bill
			}
			entries[i] = entry
		}(i, user)
	}
	wg.Wait()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].User.Name < entries[j].User.Name
	})
	return entries, nil
}

func (s *BillingService) upsertBill(ctx context.Context, userID primitive.ObjectID, month string, totalLiters float64) (models.Bill, error) {
	totalLiters = utils.Round2(totalLiters)
	amount := utils.Round2(totalLiters * s.settings.MilkRatePerLiter)
	return s.bills.UpsertTotals(ctx, userID, month, totalLiters, amount)
}

// UpdateBillStatus flips the paid flag and nothing else. Totals are the
// aggregator's to write; this endpoint never recomputes them.
func (s *BillingService) UpdateBillStatus(ctx context.Context, billIDHex, status string) (models.Bill, error) {
	billID, err := primitive.ObjectIDFromHex(billIDHex)
	if err != nil {
		return models.Bill{}, validationErrorf("invalid bill id %q", billIDHex)
	}
	billStatus := models.BillStatus(status)
	if !billStatus.Valid() {
		return models.Bill{}, validationErrorf("invalid status %q: must be 'paid' or 'unpaid'", status)
	}
	return s.bills.SetStatus(ctx, billID, billStatus)
}

// MonthlySummary rolls up the bills already computed for a month. It
// reads bills only, so it reflects the last aggregation run, and it
// returns ErrNoBills when the month has no bill documents at all.
func (s *BillingService) MonthlySummary(ctx context.Context, monthToken string) (*models.MonthlySummary, error) {
	month, err := models.ParseMonth(monthToken)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	bills, err := s.bills.FindByMonth(ctx, month.String())
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, ErrNoBills
	}

	summary := &models.MonthlySummary{Month: month.String(), TotalBills: len(bills)}
	for _, bill := range bills {
		summary.TotalAmount += bill.Amount
		summary.TotalLiters += bill.TotalLiters
		switch bill.Status {
		case models.BillStatusPaid:
			summary.PaidCount++
			summary.CollectedAmount += bill.Amount
		case models.BillStatusUnpaid:
			summary.UnpaidCount++
			summary.PendingAmount += bill.Amount
		}
	}
	summary.TotalAmount = utils.Round2(summary.TotalAmount)
	summary.CollectedAmount = utils.Round2(summary.CollectedAmount)
	summary.PendingAmount = utils.Round2(summary.PendingAmount)
	summary.TotalLiters = utils.Round2(summary.TotalLiters)
	return summary, nil
}

// sumOrdered counts only ordered rows. Skipped rows carry quantity 0
// today, but the filter is deliberate: a skipped row must never bill no
// matter what its stored quantity says.
func sumOrdered(orders []models.DailyOrder) float64 {
	var total float64
	for _, order := range orders {
		if order.Status == models.OrderStatusOrdered {
			total += order.Quantity
		}
	}
	return total
}
