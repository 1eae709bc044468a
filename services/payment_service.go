package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"
)

// SettlementPolicy decides which repayment amounts are accepted.
type SettlementPolicy string

const (
	// SettlementLenient accepts any positive amount and marks the booking
	// fully paid.
	SettlementLenient SettlementPolicy = "lenient"
	// SettlementStrict only accepts an amount equal to the booking's due balance.
	SettlementStrict SettlementPolicy = "strict"
)

func ParseSettlementPolicy(raw string) (SettlementPolicy, error) {
	switch SettlementPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SettlementLenient:
		return SettlementLenient, nil
	case SettlementStrict:
		return SettlementStrict, nil
	}
	return "", fmt.Errorf("unknown settlement policy %q", raw)
}

// PaymentService records settlements and deletes payments.
type PaymentService struct {
	Store     store.Store
	Publisher Publisher
	Log       *logrus.Logger
	Policy    SettlementPolicy
	Now       func() time.Time
}

func NewPaymentService(st store.Store, pub Publisher, log *logrus.Logger) *PaymentService {
	if pub == nil {
		pub = NoopPublisher{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentService{
		Store:     st,
		Publisher: pub,
		Log:       log,
		Policy:    SettlementLenient,
		Now:       time.Now,
	}
}

// CreateRepayment records a settlement payment against a booking. The booking
// is marked Completed with nothing due and the room's due amount is cleared.
// An empty mode defaults to Cash.
func (s *PaymentService) CreateRepayment(ctx context.Context, bookingID string, amount decimal.Decimal, mode models.PaymentMode) (models.Payment, error) {
	if mode == "" {
		mode = models.PaymentCash
	}
	if !mode.Valid() {
		return models.Payment{}, invalid("mode", "unsupported payment mode %q", mode)
	}
	if !amount.IsPositive() {
		return models.Payment{}, invalid("amount", "must be greater than zero")
	}

	var payment models.Payment
	var booking models.Booking
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		var err error
		booking, err = tx.FindBooking(bookingID)
		if err != nil {
			return notFoundOr(err, "booking", bookingID)
		}
		if s.Policy == SettlementStrict && !amount.Equal(booking.AmountDue) {
			return invalid("amount", "must equal the amount due (%s)", booking.AmountDue.String())
		}

		payment = models.Payment{
			BookingID:  booking.ID,
			RoomNumber: booking.RoomNumber,
			Amount:     amount,
			Mode:       mode,
			Date:       models.FormatDay(s.Now()),
		}
		if err := tx.CreatePayment(&payment); err != nil {
			return err
		}

		booking.AmountPaid = booking.AmountPaid.Add(amount)
		booking.AmountDue = decimal.Zero
		booking.PaymentStatus = models.PaymentCompleted
		if err := tx.SaveBooking(booking); err != nil {
			return err
		}

		room, err := tx.FindRoomByNumber(booking.RoomNumber)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		// the room may already carry a newer booking
		if room.BookingID == nil || *room.BookingID != booking.ID {
			return nil
		}
		room.AmountDue = nil
		return tx.SaveRoom(room)
	})
	if err != nil {
		return models.Payment{}, err
	}

	s.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"payment_id":  payment.ID,
		"amount":      payment.Amount.String(),
		"mode":        payment.Mode,
		"amount_paid": booking.AmountPaid.String(),
	}).Info("repayment recorded")
	publish(ctx, s.Publisher, s.Log, NewEvent(EventPaymentRecorded, payment))

	return payment, nil
}

// DeletePayment removes a payment. The removal cascades: the payment's room is
// released and its booking is deleted.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID string) error {
	var payment models.Payment
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		var err error
		payment, err = tx.FindPayment(paymentID)
		if err != nil {
			return notFoundOr(err, "payment", paymentID)
		}
		if err := releaseBookingForPayment(tx, payment); err != nil {
			return err
		}
		return tx.DeletePayment(payment.ID)
	})
	if err != nil {
		return err
	}

	s.Log.WithFields(logrus.Fields{
		"payment_id":  payment.ID,
		"booking_id":  payment.BookingID,
		"room_number": payment.RoomNumber,
	}).Info("payment deleted, booking removed and room released")
	publish(ctx, s.Publisher, s.Log, NewEvent(EventPaymentDeleted, payment))

	return nil
}

// releaseBookingForPayment frees the payment's room and deletes the payment's
// booking. Any other payments recorded against that booking are left as they
// are.
func releaseBookingForPayment(tx store.Tx, p models.Payment) error {
	room, err := tx.FindRoomByNumber(p.RoomNumber)
	switch {
	case err == nil:
		room.Release()
		if err := tx.SaveRoom(room); err != nil {
			return err
		}
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	if err := tx.DeleteBooking(p.BookingID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}
