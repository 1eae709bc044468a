package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomOccupied  RoomStatus = "Occupied"
	RoomBooked    RoomStatus = "Booked"
)

// Room is one physical room on the front-desk board. Occupancy fields are
// either all set (Occupied/Booked) or all nil (Available).
type Room struct {
	ID         string           `json:"id"`
	RoomNumber string           `json:"roomNumber"`
	Status     RoomStatus       `json:"status"`
	GuestName  *string          `json:"guestName"`
	CheckIn    *string          `json:"checkIn"`
	CheckOut   *string          `json:"checkOut"`
	BookingID  *string          `json:"bookingId"`
	AmountDue  *decimal.Decimal `json:"amountDue"`
}

// Clone returns a copy of r that shares no pointers with it.
func (r Room) Clone() Room {
	c := r
	c.GuestName = cloneString(r.GuestName)
	c.CheckIn = cloneString(r.CheckIn)
	c.CheckOut = cloneString(r.CheckOut)
	c.BookingID = cloneString(r.BookingID)
	if r.AmountDue != nil {
		due := *r.AmountDue
		c.AmountDue = &due
	}
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// IsVacant reports whether no booking is attached to the room.
func (r Room) IsVacant() bool {
	return r.BookingID == nil && r.CheckIn == nil
}

// Release clears every occupancy field and marks the room Available.
func (r *Room) Release() {
	r.Status = RoomAvailable
	r.GuestName = nil
	r.CheckIn = nil
	r.CheckOut = nil
	r.BookingID = nil
	r.AmountDue = nil
}

// StatusOn derives the room status for the given day. A room without a
// booking is Available; a booked room is Booked until its check-in day and
// Occupied from then on until it is released.
func (r Room) StatusOn(day time.Time) RoomStatus {
	if r.IsVacant() {
		return RoomAvailable
	}
	if r.CheckIn == nil {
		return RoomOccupied
	}
	checkIn, err := time.ParseInLocation(DayLayout, *r.CheckIn, day.Location())
	if err != nil {
		return r.Status
	}
	today := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	if today.Before(checkIn) {
		return RoomBooked
	}
	return RoomOccupied
}
