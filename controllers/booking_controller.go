// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
)

// CreateBookingRequest is the booking form as posted by the desk.
type CreateBookingRequest struct {
	RoomNumber      string             `json:"roomNumber" binding:"required"`
	GuestName       string             `json:"guestName" binding:"required"`
	CheckInDate     string             `json:"checkInDate" binding:"required"`
	CheckOutDate    string             `json:"checkOutDate" binding:"required"`
	NumberOfPersons int                `json:"numberOfPersons" binding:"required,min=1"`
	PaymentMode     models.PaymentMode `json:"paymentMode" binding:"required"`
	AdvancePayment  decimal.Decimal    `json:"advancePayment"`
}

type BookingController struct {
	BookingSvc *services.BookingService
	Reviewer   services.Reviewer
	Log        *logrus.Logger
}

func NewBookingController(svc *services.BookingService, reviewer services.Reviewer, log *logrus.Logger) *BookingController {
	if reviewer == nil {
		reviewer = services.NoopReviewer{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingController{BookingSvc: svc, Reviewer: reviewer, Log: log}
}

func (ctrl *BookingController) today() time.Time {
	return ctrl.BookingSvc.Now()
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	// check-out before check-in is a form rule only
	loc := ctrl.today().Location()
	checkIn, errIn := models.ParseDay(req.CheckInDate, loc)
	checkOut, errOut := models.ParseDay(req.CheckOutDate, loc)
	if errIn == nil && errOut == nil && checkOut.Before(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "error.validation", "checkOutDate: must not be before checkInDate")
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		RoomNumber:      req.RoomNumber,
		GuestName:       req.GuestName,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		NumberOfPersons: req.NumberOfPersons,
		PaymentMode:     req.PaymentMode,
		AdvancePayment:  req.AdvancePayment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "booking", booking)
}

// GetBookings (GET /api/bookings?date=YYYY-MM-DD), defaults to today.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = models.FormatDay(ctrl.today())
	}
	bookings, err := ctrl.BookingSvc.GetBookingsForDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingDetails (GET /api/bookings/:id)
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	details, err := ctrl.BookingSvc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ReviewBookingForm (POST /api/bookings/review) asks the reviewer to flag
// suspicious fields. A failing reviewer is reported as unavailable, never as
// an error, since the review is advisory.
func (ctrl *BookingController) ReviewBookingForm(c *gin.Context) {
	var form models.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	result, err := ctrl.Reviewer.Review(c.Request.Context(), form)
	if err != nil {
		ctrl.Log.WithError(err).Warn("booking review unavailable")
		c.JSON(http.StatusOK, gin.H{"flags": []models.ReviewFlag{}, "available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flags": result.Flags, "available": true})
}
