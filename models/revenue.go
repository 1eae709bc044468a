package models

import "github.com/shopspring/decimal"

// ModeTotal is the amount collected through one payment mode.
type ModeTotal struct {
	Mode   PaymentMode     `json:"mode"`
	Amount decimal.Decimal `json:"amount"`
}

// DailyRevenue aggregates the payments of one calendar day. TotalBookings
// counts payments, not bookings.
type DailyRevenue struct {
	Date             string          `json:"date"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalBookings    int             `json:"totalBookings"`
	Payments         []Payment       `json:"payments"`
	PaymentBreakdown []ModeTotal     `json:"paymentBreakdown"`
}

type SummaryData struct {
	TotalRooms     int `json:"totalRooms"`
	AvailableRooms int `json:"availableRooms"`
	OccupiedRooms  int `json:"occupiedRooms"`
	BookedRooms    int `json:"bookedRooms"`
}
