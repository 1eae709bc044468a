package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"
)

// 2024-07-01 10:00 UTC
var fixedNow = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type testEnv struct {
	store    *store.MemoryStore
	pub      *recordingPublisher
	hook     *test.Hook
	bookings *BookingService
	payments *PaymentService
	rooms    *RoomService
	revenue  *RevenueService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	now := func() time.Time { return fixedNow }

	st := store.NewSeededMemoryStore()
	pub := &recordingPublisher{}

	bs := NewBookingService(st, pub, log)
	bs.Now = now
	ps := NewPaymentService(st, pub, log)
	ps.Now = now
	rs := NewRoomService(st)
	rs.Now = now

	return &testEnv{
		store:    st,
		pub:      pub,
		hook:     hook,
		bookings: bs,
		payments: ps,
		rooms:    rs,
		revenue:  NewRevenueService(st),
	}
}

func (e *testEnv) room(t *testing.T, number string) models.Room {
	t.Helper()
	var room models.Room
	require.NoError(t, e.store.View(context.Background(), func(tx store.Tx) error {
		var err error
		room, err = tx.FindRoomByNumber(number)
		return err
	}))
	return room
}

func (e *testEnv) paymentsOf(t *testing.T, bookingID string) []models.Payment {
	t.Helper()
	var out []models.Payment
	require.NoError(t, e.store.View(context.Background(), func(tx store.Tx) error {
		var err error
		out, err = tx.ListPaymentsByBooking(bookingID)
		return err
	}))
	return out
}

func aliceInput() CreateBookingInput {
	return CreateBookingInput{
		RoomNumber:      "101",
		GuestName:       "Alice",
		CheckInDate:     "2024-07-01",
		CheckOutDate:    "2024-07-03",
		NumberOfPersons: 2,
		PaymentMode:     models.PaymentUPI,
		AdvancePayment:  decimal.NewFromInt(500),
	}
}

func assertAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, field, verr.Field)
}

func assertNotFound(t *testing.T, err error, resource string) {
	t.Helper()
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "expected NotFoundError, got %v", err)
	assert.Equal(t, resource, nf.Resource)
}
