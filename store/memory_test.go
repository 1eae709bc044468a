package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/models"
)

func TestNewSeededMemoryStore(t *testing.T) {
	s := NewSeededMemoryStore()

	var rooms []models.Room
	require.NoError(t, s.View(context.Background(), func(tx Tx) error {
		var err error
		rooms, err = tx.ListRooms()
		return err
	}))

	require.Len(t, rooms, len(FixtureRoomNumbers))
	for i, r := range rooms {
		assert.Equal(t, FixtureRoomNumbers[i], r.RoomNumber)
		assert.Equal(t, models.RoomAvailable, r.Status)
		assert.True(t, r.IsVacant())
	}
	assert.Equal(t, "1", rooms[0].ID)
	assert.Equal(t, "7", rooms[6].ID)
}

func TestMemoryStore_Identifiers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var first, second models.Booking
	require.NoError(t, s.Update(ctx, func(tx Tx) error {
		first = models.Booking{RoomNumber: "101", Date: "2024-07-01"}
		if err := tx.CreateBooking(&first); err != nil {
			return err
		}
		return tx.DeleteBooking(first.ID)
	}))
	require.NoError(t, s.Update(ctx, func(tx Tx) error {
		second = models.Booking{RoomNumber: "102", Date: "2024-07-01"}
		return tx.CreateBooking(&second)
	}))

	assert.Equal(t, "b1", first.ID)
	assert.Equal(t, "b2", second.ID, "deleted ids are never reused")

	var p models.Payment
	require.NoError(t, s.Update(ctx, func(tx Tx) error {
		p = models.Payment{BookingID: second.ID, Amount: decimal.NewFromInt(10), Mode: models.PaymentCash, Date: "2024-07-01"}
		return tx.CreatePayment(&p)
	}))
	assert.Equal(t, "p1", p.ID)
}

func TestMemoryStore_UpdateRollsBack(t *testing.T) {
	s := NewSeededMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Update(ctx, func(tx Tx) error {
		b := models.Booking{RoomNumber: "101", Date: "2024-07-01"}
		if err := tx.CreateBooking(&b); err != nil {
			return err
		}
		room, err := tx.FindRoomByNumber("101")
		if err != nil {
			return err
		}
		id := b.ID
		room.BookingID = &id
		room.Status = models.RoomOccupied
		if err := tx.SaveRoom(room); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(tx Tx) error {
		bookings, err := tx.ListBookingsByDate("2024-07-01")
		require.NoError(t, err)
		assert.Empty(t, bookings)

		room, err := tx.FindRoomByNumber("101")
		require.NoError(t, err)
		assert.True(t, room.IsVacant())
		assert.Equal(t, models.RoomAvailable, room.Status)
		return nil
	}))

	// the rolled back sequence is handed out again
	require.NoError(t, s.Update(ctx, func(tx Tx) error {
		b := models.Booking{RoomNumber: "101"}
		require.NoError(t, tx.CreateBooking(&b))
		assert.Equal(t, "b1", b.ID)
		return nil
	}))
}

func TestMemoryStore_CreateRoomConflict(t *testing.T) {
	s := NewSeededMemoryStore()

	err := s.Update(context.Background(), func(tx Tx) error {
		return tx.CreateRoom(&models.Room{RoomNumber: "101"})
	})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryStore_ViewIsReadOnly(t *testing.T) {
	s := NewMemoryStore()

	err := s.View(context.Background(), func(tx Tx) error {
		return tx.CreateRoom(&models.Room{RoomNumber: "301"})
	})

	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.View(context.Background(), func(tx Tx) error {
		_, err := tx.FindBooking("b9")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = tx.FindPayment("p9")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = tx.FindRoomByNumber("999")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))

	err := s.Update(context.Background(), func(tx Tx) error {
		return tx.DeletePayment("p1")
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Update(ctx, func(tx Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMemoryStore_ListFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(tx Tx) error {
		for _, p := range []models.Payment{
			{BookingID: "b1", Amount: decimal.NewFromInt(500), Mode: models.PaymentUPI, Date: "2024-07-01"},
			{BookingID: "b2", Amount: decimal.NewFromInt(300), Mode: models.PaymentCash, Date: "2024-07-01"},
			{BookingID: "b1", Amount: decimal.NewFromInt(1100), Mode: models.PaymentCash, Date: "2024-07-02"},
		} {
			p := p
			if err := tx.CreatePayment(&p); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx Tx) error {
		byDay, err := tx.ListPaymentsByDate("2024-07-01")
		require.NoError(t, err)
		assert.Len(t, byDay, 2)

		byBooking, err := tx.ListPaymentsByBooking("b1")
		require.NoError(t, err)
		require.Len(t, byBooking, 2)
		assert.Equal(t, "p1", byBooking[0].ID)
		assert.Equal(t, "p3", byBooking[1].ID)

		none, err := tx.ListPaymentsByDate("2030-01-01")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
		return nil
	}))
}

func TestParseID(t *testing.T) {
	n, ok := parseID(bookingPrefix, "b12")
	assert.True(t, ok)
	assert.Equal(t, uint(12), n)

	_, ok = parseID(bookingPrefix, "p12")
	assert.False(t, ok)
	_, ok = parseID(bookingPrefix, "b0")
	assert.False(t, ok)
	_, ok = parseID(roomPrefix, "abc")
	assert.False(t, ok)
}

func TestMemoryStore_RoomsAreCopies(t *testing.T) {
	s := NewSeededMemoryStore()
	ctx := context.Background()

	due := decimal.NewFromInt(1100)
	guest, bookingID := "Alice", "b1"
	require.NoError(t, s.Update(ctx, func(tx Tx) error {
		room, err := tx.FindRoomByNumber("101")
		if err != nil {
			return err
		}
		room.GuestName = &guest
		room.BookingID = &bookingID
		room.AmountDue = &due
		return tx.SaveRoom(room)
	}))

	// the values handed to SaveRoom are not kept by reference
	guest = "Eve"
	due = decimal.NewFromInt(5)

	var listed []models.Room
	require.NoError(t, s.View(ctx, func(tx Tx) error {
		var err error
		listed, err = tx.ListRooms()
		return err
	}))
	*listed[0].GuestName = "Mallory"
	*listed[0].AmountDue = decimal.NewFromInt(1)

	require.NoError(t, s.View(ctx, func(tx Tx) error {
		found, err := tx.FindRoomByNumber("101")
		require.NoError(t, err)
		*found.BookingID = "b99"
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx Tx) error {
		room, err := tx.FindRoomByNumber("101")
		require.NoError(t, err)
		assert.Equal(t, "Alice", *room.GuestName)
		assert.Equal(t, "b1", *room.BookingID)
		assert.Equal(t, "1100", room.AmountDue.String())
		return nil
	}))
}
