package models

// BookingForm carries the raw booking form values sent for advisory review.
type BookingForm struct {
	CustomerName    string `json:"customerName"`
	CheckInDate     string `json:"checkInDate"`
	CheckOutDate    string `json:"checkOutDate"`
	NumberOfPersons int    `json:"numberOfPersons"`
	PaymentMode     string `json:"paymentMode"`
}

type ReviewFlag struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ReviewResult struct {
	Flags []ReviewFlag `json:"flags"`
}
