package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/models"
)

// Generator materializes the daily order ledger: one immutable snapshot
// row per subscriber per shift per day. It is the only writer of the
// dailyorders collection.
type Generator struct {
	users    UserDirectory
	orders   DailyOrderStore
	settings *config.Settings
	now      func() time.Time
}

func NewGenerator(users UserDirectory, orders DailyOrderStore, settings *config.Settings) *Generator {
	return &Generator{
		users:    users,
		orders:   orders,
		settings: settings,
		now:      time.Now,
	}
}

// GenerateShiftOrders runs one generation cycle for one shift. "Today"
// is computed in the configured zone, never the host's. Rerunning the
// cycle for an already-covered (date, shift) inserts nothing: the
// unique ledger index rejects the duplicates and the store treats that
// as success, which is what makes partial-failure retries safe.
func (g *Generator) GenerateShiftOrders(ctx context.Context, shift models.Shift) error {
	today := models.FormatDate(g.now().In(g.settings.Location))

	users, err := g.users.FindAll(ctx)
	if err != nil {
		middleware.GeneratorRuns.WithLabelValues(string(shift), "error").Inc()
		return fmt.Errorf("reading subscribers for %s %s: %w", shift, today, err)
	}

	orders := make([]models.DailyOrder, 0, len(users))
	for _, user := range users {
		pref := user.Preference(shift)
		order := models.DailyOrder{
			Date:     today,
			Shift:    shift,
			UserID:   user.ID,
			IsActive: pref.IsActive,
			Status:   models.OrderStatusSkipped,
		}
		if pref.IsActive {
			order.Quantity = pref.Quantity
			order.Status = models.OrderStatusOrdered
		}
		orders = append(orders, order)
	}

	inserted, err := g.orders.InsertMany(ctx, orders)
	if err != nil {
		middleware.GeneratorRuns.WithLabelValues(string(shift), "error").Inc()
		return fmt.Errorf("inserting %s orders for %s (%d of %d written): %w", shift, today, inserted, len(orders), err)
	}

	middleware.GeneratorRuns.WithLabelValues(string(shift), "ok").Inc()
	middleware.OrdersGenerated.WithLabelValues(string(shift)).Add(float64(inserted))
	log.Printf("%s milk orders generated for %s: %d new, %d subscribers", shift, today, inserted, len(orders))
	return nil
}
