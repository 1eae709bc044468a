// services/booking_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"
)

// DefaultNightlyRate is the flat price of one night in any room.
const DefaultNightlyRate = 800

// BookingService creates bookings and answers booking queries.
type BookingService struct {
	Store       store.Store
	Publisher   Publisher
	Log         *logrus.Logger
	NightlyRate decimal.Decimal
	Now         func() time.Time
}

func NewBookingService(st store.Store, pub Publisher, log *logrus.Logger) *BookingService {
	if pub == nil {
		pub = NoopPublisher{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingService{
		Store:       st,
		Publisher:   pub,
		Log:         log,
		NightlyRate: decimal.NewFromInt(DefaultNightlyRate),
		Now:         time.Now,
	}
}

// CreateBookingInput carries the booking form as submitted by the desk.
type CreateBookingInput struct {
	RoomNumber      string             `json:"roomNumber"`
	GuestName       string             `json:"guestName"`
	CheckInDate     string             `json:"checkInDate"`
	CheckOutDate    string             `json:"checkOutDate"`
	NumberOfPersons int                `json:"numberOfPersons"`
	PaymentMode     models.PaymentMode `json:"paymentMode"`
	AdvancePayment  decimal.Decimal    `json:"advancePayment"`
}

func (s *BookingService) validate(in CreateBookingInput) (checkIn, checkOut time.Time, err error) {
	loc := s.Now().Location()
	if strings.TrimSpace(in.RoomNumber) == "" {
		return checkIn, checkOut, invalid("roomNumber", "is required")
	}
	if len([]rune(strings.TrimSpace(in.GuestName))) < 2 {
		return checkIn, checkOut, invalid("guestName", "must be at least 2 characters")
	}
	checkIn, err = models.ParseDay(in.CheckInDate, loc)
	if err != nil {
		return checkIn, checkOut, invalid("checkInDate", "%v", err)
	}
	checkOut, err = models.ParseDay(in.CheckOutDate, loc)
	if err != nil {
		return checkIn, checkOut, invalid("checkOutDate", "%v", err)
	}
	if in.NumberOfPersons < 1 {
		return checkIn, checkOut, invalid("numberOfPersons", "at least one person is required")
	}
	if !in.PaymentMode.Valid() {
		return checkIn, checkOut, invalid("paymentMode", "unsupported payment mode %q", in.PaymentMode)
	}
	if in.AdvancePayment.IsNegative() {
		return checkIn, checkOut, invalid("advancePayment", "cannot be negative")
	}
	return checkIn, checkOut, nil
}

// Price returns the number of nights (at least one) and the total amount for
// a stay between the two days.
func (s *BookingService) Price(checkIn, checkOut time.Time) (int, decimal.Decimal) {
	nights := models.DaysBetween(checkIn, checkOut)
	if nights < 1 {
		nights = 1
	}
	return nights, s.NightlyRate.Mul(decimal.NewFromInt(int64(nights)))
}

// CreateBooking records a booking, attaches it to the room and records the
// advance payment, all in one store update.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	checkIn, checkOut, err := s.validate(in)
	if err != nil {
		return models.Booking{}, err
	}

	now := s.Now()
	today := startOfDay(now)
	nights, total := s.Price(checkIn, checkOut)

	booking := models.Booking{
		RoomNumber:      strings.TrimSpace(in.RoomNumber),
		GuestName:       strings.TrimSpace(in.GuestName),
		CheckInDate:     models.FormatDay(checkIn),
		CheckOutDate:    models.FormatDay(checkOut),
		NumberOfPersons: in.NumberOfPersons,
		PaymentMode:     in.PaymentMode,
		Date:            models.FormatDay(checkIn),
		TotalAmount:     total,
		AmountPaid:      in.AdvancePayment,
	}
	booking.Settle()

	var advance *models.Payment
	err = s.Store.Update(ctx, func(tx store.Tx) error {
		if err := tx.CreateBooking(&booking); err != nil {
			return err
		}

		room, err := tx.FindRoomByNumber(booking.RoomNumber)
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.Log.WithFields(logrus.Fields{
				"booking_id":  booking.ID,
				"room_number": booking.RoomNumber,
			}).Warn("room not found, booking recorded without room update")
		case err != nil:
			return err
		default:
			occupy(&room, booking, today)
			if err := tx.SaveRoom(room); err != nil {
				return err
			}
		}

		if booking.AmountPaid.IsPositive() {
			p := models.Payment{
				BookingID:  booking.ID,
				RoomNumber: booking.RoomNumber,
				Amount:     booking.AmountPaid,
				Mode:       booking.PaymentMode,
				Date:       models.FormatDay(now),
			}
			if err := tx.CreatePayment(&p); err != nil {
				return err
			}
			advance = &p
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	s.Log.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"room_number":    booking.RoomNumber,
		"nights":         nights,
		"total_amount":   booking.TotalAmount.String(),
		"amount_due":     booking.AmountDue.String(),
		"payment_status": booking.PaymentStatus,
	}).Info("booking created")

	events := []Event{NewEvent(EventBookingCreated, booking)}
	if advance != nil {
		events = append(events, NewEvent(EventPaymentRecorded, *advance))
	}
	publish(ctx, s.Publisher, s.Log, events...)

	return booking, nil
}

// occupy attaches the booking to the room and sets its status for today.
func occupy(room *models.Room, b models.Booking, today time.Time) {
	guest, checkIn, checkOut, id := b.GuestName, b.CheckInDate, b.CheckOutDate, b.ID
	room.GuestName = &guest
	room.CheckIn = &checkIn
	room.CheckOut = &checkOut
	room.BookingID = &id
	room.AmountDue = nil
	if b.AmountDue.IsPositive() {
		due := b.AmountDue
		room.AmountDue = &due
	}
	room.Status = room.StatusOn(today)
}

// GetBookingsForDate lists the bookings attributed to the given day.
func (s *BookingService) GetBookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	day, err := models.ParseDay(date, s.Now().Location())
	if err != nil {
		return nil, invalid("date", "%v", err)
	}
	var out []models.Booking
	err = s.Store.View(ctx, func(tx store.Tx) error {
		var err error
		out, err = tx.ListBookingsByDate(models.FormatDay(day))
		return err
	})
	return out, err
}

// GetBooking returns a booking with every payment recorded against it.
func (s *BookingService) GetBooking(ctx context.Context, id string) (models.BookingDetails, error) {
	var details models.BookingDetails
	err := s.Store.View(ctx, func(tx store.Tx) error {
		b, err := tx.FindBooking(id)
		if err != nil {
			return notFoundOr(err, "booking", id)
		}
		payments, err := tx.ListPaymentsByBooking(id)
		if err != nil {
			return err
		}
		details = models.BookingDetails{Booking: b, Payments: payments}
		return nil
	})
	return details, err
}
