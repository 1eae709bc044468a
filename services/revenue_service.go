package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"
)

// RevenueService aggregates payments per calendar day.
type RevenueService struct {
	Store store.Store
}

func NewRevenueService(st store.Store) *RevenueService {
	return &RevenueService{Store: st}
}

// GetRevenueForDate sums the payments dated on the given day and breaks the
// total down by payment mode.
func (s *RevenueService) GetRevenueForDate(ctx context.Context, date time.Time) (models.DailyRevenue, error) {
	day := models.FormatDay(date)
	var payments []models.Payment
	err := s.Store.View(ctx, func(tx store.Tx) error {
		var err error
		payments, err = tx.ListPaymentsByDate(day)
		return err
	})
	if err != nil {
		return models.DailyRevenue{}, err
	}
	return Aggregate(day, payments), nil
}

// Aggregate builds the daily revenue view for payments already filtered to
// one day. Breakdown entries follow models.PaymentModes order and skip modes
// without payments.
func Aggregate(day string, payments []models.Payment) models.DailyRevenue {
	rev := models.DailyRevenue{
		Date:             day,
		TotalIncome:      decimal.Zero,
		TotalBookings:    len(payments),
		Payments:         payments,
		PaymentBreakdown: []models.ModeTotal{},
	}
	if rev.Payments == nil {
		rev.Payments = []models.Payment{}
	}

	perMode := map[models.PaymentMode]decimal.Decimal{}
	for _, p := range payments {
		rev.TotalIncome = rev.TotalIncome.Add(p.Amount)
		perMode[p.Mode] = perMode[p.Mode].Add(p.Amount)
	}
	for _, mode := range models.PaymentModes {
		if amount, ok := perMode[mode]; ok {
			rev.PaymentBreakdown = append(rev.PaymentBreakdown, models.ModeTotal{Mode: mode, Amount: amount})
		}
	}
	return rev
}
