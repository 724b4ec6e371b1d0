package services

import (
	"context"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/config"
	"backend/models"
	"backend/utils"
)

// RosterService serves the delivery-day read endpoints: today's raw
// ledger rows and the per-shift delivery roster with bottle counts.
type RosterService struct {
	users    UserDirectory
	orders   DailyOrderStore
	settings *config.Settings
	now      func() time.Time
}

func NewRosterService(users UserDirectory, orders DailyOrderStore, settings *config.Settings) *RosterService {
	return &RosterService{
		users:    users,
		orders:   orders,
		settings: settings,
		now:      time.Now,
	}
}

type RosterUser struct {
	User             models.User         `json:"user"`
	Orders           []models.DailyOrder `json:"orders"`
	TotalQuantity    float64             `json:"totalQuantity"`
	LiterBottles     int                 `json:"literBottles"`
	HalfLiterBottles int                 `json:"halfLiterBottles"`
}

type RosterTotals struct {
	TotalLiters      float64 `json:"totalLiters"`
	LiterBottles     int     `json:"literBottles"`
	HalfLiterBottles int     `json:"halfLiterBottles"`
}

type Roster struct {
	Date        string       `json:"date"`
	Shift       models.Shift `json:"shift"`
	Users       []RosterUser `json:"users"`
	GrandTotals RosterTotals `json:"grandTotals"`
}

func (s *RosterService) todayString() string {
	return models.FormatDate(s.now().In(s.settings.Location))
}

// TodaysOrders returns today's ledger rows across both shifts.
func (s *RosterService) TodaysOrders(ctx context.Context) ([]models.DailyOrder, error) {
	orders, err := s.orders.FindByDate(ctx, s.todayString())
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.DailyOrder{}
	}
	return orders, nil
}

// ShiftRoster groups one shift's orders by subscriber and works out the
// bottle split the delivery crew packs by: one-liter bottles for the
// whole liters, a half-liter bottle when the fraction is exactly 0.5.
// dateStr defaults to today when empty.
func (s *RosterService) ShiftRoster(ctx context.Context, dateStr string, shift models.Shift) (*Roster, error) {
	if !shift.Valid() {
		return nil, validationErrorf("invalid shift %q", shift)
	}
	if dateStr == "" {
		dateStr = s.todayString()
	} else if _, err := models.ParseDate(dateStr); err != nil {
		return nil, validationErrorf("invalid date %q: want YYYY-MM-DD", dateStr)
	}

	orders, err := s.orders.FindByDateShift(ctx, dateStr, shift)
	if err != nil {
		return nil, err
	}

	roster := &Roster{Date: dateStr, Shift: shift, Users: []RosterUser{}}
	if len(orders) == 0 {
		return roster, nil
	}

	ordersByUser := make(map[primitive.ObjectID][]models.DailyOrder)
	for _, order := range orders {
		ordersByUser[order.UserID] = append(ordersByUser[order.UserID], order)
	}
	userIDs := make([]primitive.ObjectID, 0, len(ordersByUser))
	for id := range ordersByUser {
		userIDs = append(userIDs, id)
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		row := RosterUser{User: user, Orders: ordersByUser[user.ID]}
		for _, order := range row.Orders {
			if order.Status != models.OrderStatusOrdered {
				continue
			}
			row.TotalQuantity += order.Quantity
			row.LiterBottles += int(math.Floor(order.Quantity))
			if math.Mod(order.Quantity, 1) == 0.5 {
				row.HalfLiterBottles++
			}
		}
		row.TotalQuantity = utils.Round2(row.TotalQuantity)
		roster.Users = append(roster.Users, row)

		roster.GrandTotals.TotalLiters += row.TotalQuantity
		roster.GrandTotals.LiterBottles += row.LiterBottles
		roster.GrandTotals.HalfLiterBottles += row.HalfLiterBottles
	}
	roster.GrandTotals.TotalLiters = utils.Round2(roster.GrandTotals.TotalLiters)

	sort.Slice(roster.Users, func(i, j int) bool {
		return roster.Users[i].User.Name < roster.Users[j].User.Name
	})
	return roster, nil
}
