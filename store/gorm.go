package store

import (
	"context"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hotel-frontdesk/models"
)

// GormStore keeps the collections in SQL tables. Update runs fn inside one
// database transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the rooms, bookings and payments tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&roomRecord{}, &bookingRecord{}, &paymentRecord{})
}

// SeedRooms inserts the given room numbers when the rooms table is empty and
// reports how many were created.
func SeedRooms(db *gorm.DB, numbers []string) (int, error) {
	var count int64
	if err := db.Model(&roomRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 || len(numbers) == 0 {
		return 0, nil
	}
	recs := make([]roomRecord, 0, len(numbers))
	for _, n := range numbers {
		recs = append(recs, roomRecord{RoomNumber: n, Status: string(models.RoomAvailable)})
	}
	if err := db.Create(&recs).Error; err != nil {
		return 0, fmt.Errorf("seed rooms: %w", translateError(err))
	}
	return len(recs), nil
}

func (s *GormStore) View(ctx context.Context, fn func(tx Tx) error) error {
	return fn(&gormTx{db: s.db.WithContext(ctx), readOnly: true})
}

func (s *GormStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

// translateError maps driver errors onto the store sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

type gormTx struct {
	db       *gorm.DB
	readOnly bool
}

func (t *gormTx) writable() error {
	if t.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (t *gormTx) ListRooms() ([]models.Room, error) {
	var recs []roomRecord
	if err := t.db.Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]models.Room, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.model())
	}
	return out, nil
}

func (t *gormTx) FindRoomByNumber(roomNumber string) (models.Room, error) {
	var rec roomRecord
	if err := t.db.Where("room_number = ?", roomNumber).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, notFound("room", roomNumber)
		}
		return models.Room{}, fmt.Errorf("find room %q: %w", roomNumber, err)
	}
	return rec.model(), nil
}

func (t *gormTx) CreateRoom(room *models.Room) error {
	if err := t.writable(); err != nil {
		return err
	}
	rec := roomRecord{RoomNumber: room.RoomNumber, Status: string(room.Status)}
	if err := t.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("create room %q: %w", room.RoomNumber, translateError(err))
	}
	room.ID = formatID(roomPrefix, rec.ID)
	return nil
}

func (t *gormTx) SaveRoom(room models.Room) error {
	if err := t.writable(); err != nil {
		return err
	}
	id, ok := parseID(roomPrefix, room.ID)
	if !ok {
		return notFound("room", room.ID)
	}
	cols, err := roomColumns(room)
	if err != nil {
		return err
	}
	if err := t.db.Model(&roomRecord{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return fmt.Errorf("save room %s: %w", room.ID, translateError(err))
	}
	return nil
}

func (t *gormTx) CreateBooking(booking *models.Booking) error {
	if err := t.writable(); err != nil {
		return err
	}
	rec, err := newBookingRecord(*booking)
	if err != nil {
		return err
	}
	rec.ID = 0
	if err := t.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("create booking: %w", translateError(err))
	}
	booking.ID = formatID(bookingPrefix, rec.ID)
	return nil
}

func (t *gormTx) FindBooking(id string) (models.Booking, error) {
	n, ok := parseID(bookingPrefix, id)
	if !ok {
		return models.Booking{}, notFound("booking", id)
	}
	var rec bookingRecord
	if err := t.db.First(&rec, n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, notFound("booking", id)
		}
		return models.Booking{}, fmt.Errorf("find booking %s: %w", id, err)
	}
	return rec.model(), nil
}

func (t *gormTx) SaveBooking(booking models.Booking) error {
	if err := t.writable(); err != nil {
		return err
	}
	rec, err := newBookingRecord(booking)
	if err != nil {
		return err
	}
	if rec.ID == 0 {
		return notFound("booking", booking.ID)
	}
	if err := t.db.Model(&bookingRecord{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
		"payment_status": rec.PaymentStatus,
		"amount_paid":    rec.AmountPaid,
		"amount_due":     rec.AmountDue,
		"total_amount":   rec.TotalAmount,
	}).Error; err != nil {
		return fmt.Errorf("save booking %s: %w", booking.ID, translateError(err))
	}
	return nil
}

func (t *gormTx) DeleteBooking(id string) error {
	if err := t.writable(); err != nil {
		return err
	}
	n, ok := parseID(bookingPrefix, id)
	if !ok {
		return notFound("booking", id)
	}
	res := t.db.Delete(&bookingRecord{}, n)
	if res.Error != nil {
		return fmt.Errorf("delete booking %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("booking", id)
	}
	return nil
}

func (t *gormTx) ListBookingsByDate(day string) ([]models.Booking, error) {
	d, err := toDate(day)
	if err != nil {
		return nil, err
	}
	var recs []bookingRecord
	if err := t.db.Where("applies_on = ?", d).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", day, err)
	}
	out := make([]models.Booking, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.model())
	}
	return out, nil
}

func (t *gormTx) CreatePayment(payment *models.Payment) error {
	if err := t.writable(); err != nil {
		return err
	}
	rec, err := newPaymentRecord(*payment)
	if err != nil {
		return err
	}
	if err := t.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("create payment: %w", translateError(err))
	}
	payment.ID = formatID(paymentPrefix, rec.ID)
	return nil
}

func (t *gormTx) FindPayment(id string) (models.Payment, error) {
	n, ok := parseID(paymentPrefix, id)
	if !ok {
		return models.Payment{}, notFound("payment", id)
	}
	var rec paymentRecord
	if err := t.db.First(&rec, n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, notFound("payment", id)
		}
		return models.Payment{}, fmt.Errorf("find payment %s: %w", id, err)
	}
	return rec.model(), nil
}

func (t *gormTx) DeletePayment(id string) error {
	if err := t.writable(); err != nil {
		return err
	}
	n, ok := parseID(paymentPrefix, id)
	if !ok {
		return notFound("payment", id)
	}
	res := t.db.Delete(&paymentRecord{}, n)
	if res.Error != nil {
		return fmt.Errorf("delete payment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("payment", id)
	}
	return nil
}

func (t *gormTx) ListPaymentsByDate(day string) ([]models.Payment, error) {
	d, err := toDate(day)
	if err != nil {
		return nil, err
	}
	var recs []paymentRecord
	if err := t.db.Where("paid_on = ?", d).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list payments for %s: %w", day, err)
	}
	return paymentModels(recs), nil
}

func (t *gormTx) ListPaymentsByBooking(bookingID string) ([]models.Payment, error) {
	n, ok := parseID(bookingPrefix, bookingID)
	if !ok {
		return []models.Payment{}, nil
	}
	var recs []paymentRecord
	if err := t.db.Where("booking_id = ?", n).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list payments for booking %s: %w", bookingID, err)
	}
	return paymentModels(recs), nil
}

func paymentModels(recs []paymentRecord) []models.Payment {
	out := make([]models.Payment, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.model())
	}
	return out
}
