package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"backend/config"
	"backend/models"
	"backend/utils"
)

// Scheduler owns the recurring jobs: one generation cycle per shift per
// day at the configured wall-clock time, and the monthly summary mail.
// It wraps gocron so main gets a start/stop lifecycle and tests can run
// a cycle directly through the Generator instead of waiting on the
// clock.
type Scheduler struct {
	scheduler *gocron.Scheduler
	generator *Generator
	billing   *BillingService
	settings  *config.Settings
}

func NewScheduler(settings *config.Settings, generator *Generator, billing *BillingService) (*Scheduler, error) {
	s := gocron.NewScheduler(settings.Location)
	sch := &Scheduler{scheduler: s, generator: generator, billing: billing, settings: settings}

	if _, err := s.Every(1).Day().At(settings.GenerationAt).Do(sch.runShift, models.ShiftMorning); err != nil {
		return nil, fmt.Errorf("scheduling morning generation: %w", err)
	}
	if _, err := s.Every(1).Day().At(settings.GenerationAt).Do(sch.runShift, models.ShiftEvening); err != nil {
		return nil, fmt.Errorf("scheduling evening generation: %w", err)
	}
	if settings.SummaryMailDay > 0 && settings.AdminEmail != "" {
		if _, err := s.Every(1).Month(settings.SummaryMailDay).At(settings.SummaryMailAt).Do(sch.mailLastMonthSummary); err != nil {
			return nil, fmt.Errorf("scheduling summary mail: %w", err)
		}
	}
	return sch, nil
}

func (sch *Scheduler) Start() {
	sch.scheduler.StartAsync()
}

func (sch *Scheduler) Stop() {
	sch.scheduler.Stop()
}

// runShift is one generation cycle. A failure is logged and the cycle
// abandoned; the ledger index makes the next day's run (or a manual
// rerun) safe, so there is nothing to roll back.
func (sch *Scheduler) runShift(shift models.Shift) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := sch.generator.GenerateShiftOrders(ctx, shift); err != nil {
		log.Printf("%s order generation failed: %v", shift, err)
	}
}

func (sch *Scheduler) mailLastMonthSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	month := models.MonthOf(time.Now().In(sch.settings.Location)).Prev()
	summary, err := sch.billing.MonthlySummary(ctx, month.String())
	if errors.Is(err, ErrNoBills) {
		log.Printf("no bills for %s, skipping summary mail", month)
		return
	}
	if err != nil {
		log.Printf("building %s summary mail: %v", month, err)
		return
	}

	subject := fmt.Sprintf("Milk billing summary for %s", summary.Month)
	body := fmt.Sprintf(
		"Billing summary for %s\n\nBills: %d (%d paid, %d unpaid)\nTotal liters: %.2f\nTotal amount: %.2f\nCollected: %.2f\nPending: %.2f\n",
		summary.Month, summary.TotalBills, summary.PaidCount, summary.UnpaidCount,
		summary.TotalLiters, summary.TotalAmount, summary.CollectedAmount, summary.PendingAmount,
	)
	if err := utils.SendEmail(sch.settings, sch.settings.AdminEmail, subject, body); err != nil {
		log.Printf("sending %s summary mail: %v", month, err)
	}
}
