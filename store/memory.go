package store

import (
	"context"
	"fmt"
	"sync"

	"hotel-frontdesk/models"
)

// FixtureRoomNumbers are the rooms a fresh front desk starts with.
var FixtureRoomNumbers = []string{"101", "102", "103", "104", "105", "201", "202"}

// MemoryStore keeps the collections in process memory. Nothing survives a
// restart. One RWMutex guards all three slices.
type MemoryStore struct {
	mu       sync.RWMutex
	rooms    []models.Room
	bookings []models.Booking
	payments []models.Payment

	roomSeq    uint
	bookingSeq uint
	paymentSeq uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewSeededMemoryStore returns a store holding the fixture rooms, all Available.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	for _, number := range FixtureRoomNumbers {
		room := models.Room{RoomNumber: number, Status: models.RoomAvailable}
		_ = (&memoryTx{s: s}).CreateRoom(&room)
	}
	return s
}

func (s *MemoryStore) View(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memoryTx{s: s, readOnly: true})
}

func (s *MemoryStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&memoryTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	rooms                           []models.Room
	bookings                        []models.Booking
	payments                        []models.Payment
	roomSeq, bookingSeq, paymentSeq uint
}

// snapshot copies the slices. Stored rooms never share pointers with callers,
// so sharing element pointers between the snapshot and the live slice is safe.
func (s *MemoryStore) snapshot() memorySnapshot {
	return memorySnapshot{
		rooms:      append([]models.Room(nil), s.rooms...),
		bookings:   append([]models.Booking(nil), s.bookings...),
		payments:   append([]models.Payment(nil), s.payments...),
		roomSeq:    s.roomSeq,
		bookingSeq: s.bookingSeq,
		paymentSeq: s.paymentSeq,
	}
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.rooms = snap.rooms
	s.bookings = snap.bookings
	s.payments = snap.payments
	s.roomSeq = snap.roomSeq
	s.bookingSeq = snap.bookingSeq
	s.paymentSeq = snap.paymentSeq
}

type memoryTx struct {
	s        *MemoryStore
	readOnly bool
}

func (t *memoryTx) writable() error {
	if t.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (t *memoryTx) ListRooms() ([]models.Room, error) {
	out := make([]models.Room, 0, len(t.s.rooms))
	for _, r := range t.s.rooms {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (t *memoryTx) FindRoomByNumber(roomNumber string) (models.Room, error) {
	for _, r := range t.s.rooms {
		if r.RoomNumber == roomNumber {
			return r.Clone(), nil
		}
	}
	return models.Room{}, notFound("room", roomNumber)
}

func (t *memoryTx) CreateRoom(room *models.Room) error {
	if err := t.writable(); err != nil {
		return err
	}
	for _, r := range t.s.rooms {
		if r.RoomNumber == room.RoomNumber {
			return fmt.Errorf("room number %q: %w", room.RoomNumber, ErrConflict)
		}
	}
	t.s.roomSeq++
	room.ID = formatID(roomPrefix, t.s.roomSeq)
	t.s.rooms = append(t.s.rooms, room.Clone())
	return nil
}

func (t *memoryTx) SaveRoom(room models.Room) error {
	if err := t.writable(); err != nil {
		return err
	}
	for i := range t.s.rooms {
		if t.s.rooms[i].ID == room.ID {
			t.s.rooms[i] = room.Clone()
			return nil
		}
	}
	return notFound("room", room.ID)
}

func (t *memoryTx) CreateBooking(booking *models.Booking) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.s.bookingSeq++
	booking.ID = formatID(bookingPrefix, t.s.bookingSeq)
	t.s.bookings = append(t.s.bookings, *booking)
	return nil
}

func (t *memoryTx) FindBooking(id string) (models.Booking, error) {
	for _, b := range t.s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, notFound("booking", id)
}

func (t *memoryTx) SaveBooking(booking models.Booking) error {
	if err := t.writable(); err != nil {
		return err
	}
	for i := range t.s.bookings {
		if t.s.bookings[i].ID == booking.ID {
			t.s.bookings[i] = booking
			return nil
		}
	}
	return notFound("booking", booking.ID)
}

func (t *memoryTx) DeleteBooking(id string) error {
	if err := t.writable(); err != nil {
		return err
	}
	for i := range t.s.bookings {
		if t.s.bookings[i].ID == id {
			t.s.bookings = append(t.s.bookings[:i:i], t.s.bookings[i+1:]...)
			return nil
		}
	}
	return notFound("booking", id)
}

func (t *memoryTx) ListBookingsByDate(day string) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range t.s.bookings {
		if b.Date == day {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t *memoryTx) CreatePayment(payment *models.Payment) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.s.paymentSeq++
	payment.ID = formatID(paymentPrefix, t.s.paymentSeq)
	t.s.payments = append(t.s.payments, *payment)
	return nil
}

func (t *memoryTx) FindPayment(id string) (models.Payment, error) {
	for _, p := range t.s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Payment{}, notFound("payment", id)
}

func (t *memoryTx) DeletePayment(id string) error {
	if err := t.writable(); err != nil {
		return err
	}
	for i := range t.s.payments {
		if t.s.payments[i].ID == id {
			t.s.payments = append(t.s.payments[:i:i], t.s.payments[i+1:]...)
			return nil
		}
	}
	return notFound("payment", id)
}

func (t *memoryTx) ListPaymentsByDate(day string) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range t.s.payments {
		if p.Date == day {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *memoryTx) ListPaymentsByBooking(bookingID string) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range t.s.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}
