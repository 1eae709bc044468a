// Package store holds the front-desk entity collections (rooms, bookings,
// payments) behind one Store interface with an in-memory and a gorm-backed
// implementation.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hotel-frontdesk/models"
)

var (
	// ErrNotFound is returned when a room, booking or payment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would violate a uniqueness rule,
	// such as a duplicate room number.
	ErrConflict = errors.New("conflict")
)

// Store runs operations against the entity collections. Update is
// all-or-nothing: when fn returns an error none of its writes are kept.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of primitive reads and writes available inside View/Update.
// Writes through a Tx obtained from View fail.
type Tx interface {
	ListRooms() ([]models.Room, error)
	FindRoomByNumber(roomNumber string) (models.Room, error)
	CreateRoom(room *models.Room) error
	SaveRoom(room models.Room) error

	CreateBooking(booking *models.Booking) error
	FindBooking(id string) (models.Booking, error)
	SaveBooking(booking models.Booking) error
	DeleteBooking(id string) error
	ListBookingsByDate(day string) ([]models.Booking, error)

	CreatePayment(payment *models.Payment) error
	FindPayment(id string) (models.Payment, error)
	DeletePayment(id string) error
	ListPaymentsByDate(day string) ([]models.Payment, error)
	ListPaymentsByBooking(bookingID string) ([]models.Payment, error)
}

// ErrReadOnly is returned by write methods of a Tx obtained from View.
var ErrReadOnly = errors.New("store: write in read-only transaction")

const (
	roomPrefix    = ""
	bookingPrefix = "b"
	paymentPrefix = "p"
)

func formatID(prefix string, n uint) string {
	return prefix + strconv.FormatUint(uint64(n), 10)
}

// parseID extracts the sequence number from an identifier such as "b12".
func parseID(prefix, id string) (uint, bool) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(id, prefix), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
