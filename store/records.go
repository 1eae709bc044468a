package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"hotel-frontdesk/models"
)

type roomRecord struct {
	ID         uint                `gorm:"primaryKey"`
	RoomNumber string              `gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Status     string              `gorm:"column:status;size:32"`
	GuestName  *string             `gorm:"column:guest_name;size:255"`
	CheckIn    *datatypes.Date     `gorm:"column:check_in"`
	CheckOut   *datatypes.Date     `gorm:"column:check_out"`
	BookingID  *uint               `gorm:"column:booking_id;index"`
	AmountDue  decimal.NullDecimal `gorm:"column:amount_due;type:decimal(12,2)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (roomRecord) TableName() string { return "rooms" }

type bookingRecord struct {
	ID              uint            `gorm:"primaryKey"`
	RoomNumber      string          `gorm:"column:room_number;index;type:varchar(50)"`
	GuestName       string          `gorm:"column:guest_name;size:255"`
	CheckInDate     datatypes.Date  `gorm:"column:check_in_date"`
	CheckOutDate    datatypes.Date  `gorm:"column:check_out_date"`
	NumberOfPersons int             `gorm:"column:number_of_persons"`
	PaymentMode     string          `gorm:"column:payment_mode;size:32"`
	PaymentStatus   string          `gorm:"column:payment_status;size:32"`
	AppliesOn       datatypes.Date  `gorm:"column:applies_on;index"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)"`
	AmountPaid      decimal.Decimal `gorm:"column:amount_paid;type:decimal(12,2)"`
	AmountDue       decimal.Decimal `gorm:"column:amount_due;type:decimal(12,2)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (bookingRecord) TableName() string { return "bookings" }

type paymentRecord struct {
	ID         uint            `gorm:"primaryKey"`
	BookingID  uint            `gorm:"column:booking_id;index"`
	RoomNumber string          `gorm:"column:room_number;type:varchar(50)"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(12,2)"`
	Mode       string          `gorm:"column:mode;size:32"`
	PaidOn     datatypes.Date  `gorm:"column:paid_on;index"`
	CreatedAt  time.Time
}

func (paymentRecord) TableName() string { return "payments" }

func toDate(day string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(models.DayLayout, day, time.Local)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return datatypes.Date(t), nil
}

func toDatePtr(day *string) (*datatypes.Date, error) {
	if day == nil {
		return nil, nil
	}
	d, err := toDate(*day)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func fromDate(d datatypes.Date) string {
	return time.Time(d).Format(models.DayLayout)
}

func fromDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := fromDate(*d)
	return &s
}

func (r roomRecord) model() models.Room {
	room := models.Room{
		ID:         formatID(roomPrefix, r.ID),
		RoomNumber: r.RoomNumber,
		Status:     models.RoomStatus(r.Status),
		GuestName:  r.GuestName,
		CheckIn:    fromDatePtr(r.CheckIn),
		CheckOut:   fromDatePtr(r.CheckOut),
	}
	if r.BookingID != nil {
		id := formatID(bookingPrefix, *r.BookingID)
		room.BookingID = &id
	}
	if r.AmountDue.Valid {
		due := r.AmountDue.Decimal
		room.AmountDue = &due
	}
	return room
}

// roomColumns maps every mutable room field to its column so that nil values
// are written as NULL.
func roomColumns(room models.Room) (map[string]interface{}, error) {
	checkIn, err := toDatePtr(room.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := toDatePtr(room.CheckOut)
	if err != nil {
		return nil, err
	}
	var bookingID *uint
	if room.BookingID != nil {
		n, ok := parseID(bookingPrefix, *room.BookingID)
		if !ok {
			return nil, fmt.Errorf("invalid booking id %q", *room.BookingID)
		}
		bookingID = &n
	}
	due := decimal.NullDecimal{}
	if room.AmountDue != nil {
		due = decimal.NewNullDecimal(*room.AmountDue)
	}
	return map[string]interface{}{
		"room_number": room.RoomNumber,
		"status":      string(room.Status),
		"guest_name":  room.GuestName,
		"check_in":    checkIn,
		"check_out":   checkOut,
		"booking_id":  bookingID,
		"amount_due":  due,
	}, nil
}

func newBookingRecord(b models.Booking) (bookingRecord, error) {
	checkIn, err := toDate(b.CheckInDate)
	if err != nil {
		return bookingRecord{}, err
	}
	checkOut, err := toDate(b.CheckOutDate)
	if err != nil {
		return bookingRecord{}, err
	}
	appliesOn, err := toDate(b.Date)
	if err != nil {
		return bookingRecord{}, err
	}
	rec := bookingRecord{
		RoomNumber:      b.RoomNumber,
		GuestName:       b.GuestName,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfPersons: b.NumberOfPersons,
		PaymentMode:     string(b.PaymentMode),
		PaymentStatus:   string(b.PaymentStatus),
		AppliesOn:       appliesOn,
		TotalAmount:     b.TotalAmount,
		AmountPaid:      b.AmountPaid,
		AmountDue:       b.AmountDue,
	}
	if b.ID != "" {
		n, ok := parseID(bookingPrefix, b.ID)
		if !ok {
			return bookingRecord{}, fmt.Errorf("invalid booking id %q", b.ID)
		}
		rec.ID = n
	}
	return rec, nil
}

func (r bookingRecord) model() models.Booking {
	return models.Booking{
		ID:              formatID(bookingPrefix, r.ID),
		RoomNumber:      r.RoomNumber,
		GuestName:       r.GuestName,
		CheckInDate:     fromDate(r.CheckInDate),
		CheckOutDate:    fromDate(r.CheckOutDate),
		NumberOfPersons: r.NumberOfPersons,
		PaymentMode:     models.PaymentMode(r.PaymentMode),
		PaymentStatus:   models.PaymentStatus(r.PaymentStatus),
		Date:            fromDate(r.AppliesOn),
		TotalAmount:     r.TotalAmount,
		AmountPaid:      r.AmountPaid,
		AmountDue:       r.AmountDue,
	}
}

func newPaymentRecord(p models.Payment) (paymentRecord, error) {
	bookingID, ok := parseID(bookingPrefix, p.BookingID)
	if !ok {
		return paymentRecord{}, fmt.Errorf("invalid booking id %q", p.BookingID)
	}
	paidOn, err := toDate(p.Date)
	if err != nil {
		return paymentRecord{}, err
	}
	return paymentRecord{
		BookingID:  bookingID,
		RoomNumber: p.RoomNumber,
		Amount:     p.Amount,
		Mode:       string(p.Mode),
		PaidOn:     paidOn,
	}, nil
}

func (r paymentRecord) model() models.Payment {
	return models.Payment{
		ID:         formatID(paymentPrefix, r.ID),
		BookingID:  formatID(bookingPrefix, r.BookingID),
		RoomNumber: r.RoomNumber,
		Amount:     r.Amount,
		Mode:       models.PaymentMode(r.Mode),
		Date:       fromDate(r.PaidOn),
	}
}
