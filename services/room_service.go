package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"
)

// RoomService answers occupancy queries. Room status is derived from the
// current day on every read.
type RoomService struct {
	Store store.Store
	Now   func() time.Time
}

func NewRoomService(st store.Store) *RoomService {
	return &RoomService{Store: st, Now: time.Now}
}

// GetRooms returns a copy of every room with its status for today.
func (s *RoomService) GetRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.Store.View(ctx, func(tx store.Tx) error {
		var err error
		rooms, err = tx.ListRooms()
		return err
	})
	if err != nil {
		return nil, err
	}
	today := startOfDay(s.Now())
	for i := range rooms {
		rooms[i].Status = rooms[i].StatusOn(today)
	}
	return rooms, nil
}

func (s *RoomService) GetSummaryData(ctx context.Context) (models.SummaryData, error) {
	rooms, err := s.GetRooms(ctx)
	if err != nil {
		return models.SummaryData{}, err
	}
	sum := models.SummaryData{TotalRooms: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case models.RoomAvailable:
			sum.AvailableRooms++
		case models.RoomOccupied:
			sum.OccupiedRooms++
		case models.RoomBooked:
			sum.BookedRooms++
		}
	}
	return sum, nil
}

// CreateRoom adds an Available room with the given number.
func (s *RoomService) CreateRoom(ctx context.Context, roomNumber string) (models.Room, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return models.Room{}, invalid("roomNumber", "is required")
	}
	room := models.Room{RoomNumber: roomNumber, Status: models.RoomAvailable}
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		return tx.CreateRoom(&room)
	})
	if errors.Is(err, store.ErrConflict) {
		return models.Room{}, &ConflictError{Message: "room number '" + roomNumber + "' already exists"}
	}
	if err != nil {
		return models.Room{}, err
	}
	return room, nil
}
