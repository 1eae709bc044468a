package models

import "github.com/shopspring/decimal"

type Payment struct {
	ID         string          `json:"id"`
	BookingID  string          `json:"bookingId"`
	RoomNumber string          `json:"roomNumber"`
	Amount     decimal.Decimal `json:"amount"`
	Mode       PaymentMode     `json:"mode"`
	Date       string          `json:"date"`
}
