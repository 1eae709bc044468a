package models

import "github.com/shopspring/decimal"

type PaymentMode string

const (
	PaymentUPI        PaymentMode = "UPI"
	PaymentCash       PaymentMode = "Cash"
	PaymentGPay       PaymentMode = "GPay"
	PaymentPhonePe    PaymentMode = "PhonePe"
	PaymentNetBanking PaymentMode = "Net Banking"
)

// PaymentModes lists the accepted modes in display order.
var PaymentModes = []PaymentMode{PaymentUPI, PaymentCash, PaymentGPay, PaymentPhonePe, PaymentNetBanking}

func (m PaymentMode) Valid() bool {
	for _, known := range PaymentModes {
		if m == known {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentCompleted     PaymentStatus = "Completed"
)

type Booking struct {
	ID              string          `json:"id"`
	RoomNumber      string          `json:"roomNumber"`
	GuestName       string          `json:"guestName"`
	CheckInDate     string          `json:"checkInDate"`
	CheckOutDate    string          `json:"checkOutDate"`
	NumberOfPersons int             `json:"numberOfPersons"`
	PaymentMode     PaymentMode     `json:"paymentMode"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Date            string          `json:"date"` // day the booking is attributed to
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	AmountDue       decimal.Decimal `json:"amountDue"`
}

// Settle recomputes AmountDue and PaymentStatus from TotalAmount and AmountPaid.
func (b *Booking) Settle() {
	due := b.TotalAmount.Sub(b.AmountPaid)
	if due.IsNegative() {
		due = decimal.Zero
	}
	b.AmountDue = due
	switch {
	case !due.IsPositive():
		b.PaymentStatus = PaymentCompleted
	case b.AmountPaid.IsPositive():
		b.PaymentStatus = PaymentPartiallyPaid
	default:
		b.PaymentStatus = PaymentPending
	}
}

// BookingDetails is a booking together with every payment recorded against it.
type BookingDetails struct {
	Booking  Booking   `json:"booking"`
	Payments []Payment `json:"payments"`
}
