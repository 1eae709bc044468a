package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
)

type RepaymentPayload struct {
	Amount decimal.Decimal    `json:"amount"`
	Mode   models.PaymentMode `json:"mode"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
	RevenueSvc *services.RevenueService
}

func NewPaymentController(ps *services.PaymentService, rs *services.RevenueService) *PaymentController {
	return &PaymentController{PaymentSvc: ps, RevenueSvc: rs}
}

// CreateRepayment (POST /api/bookings/:id/repayments)
func (ctrl *PaymentController) CreateRepayment(c *gin.Context) {
	var payload RepaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	payment, err := ctrl.PaymentSvc.CreateRepayment(c.Request.Context(), c.Param("id"), payload.Amount, payload.Mode)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "payment", payment)
}

// DeletePayment (DELETE /api/payments/:id)
func (ctrl *PaymentController) DeletePayment(c *gin.Context) {
	if err := ctrl.PaymentSvc.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetRevenue (GET /api/revenue?date=YYYY-MM-DD), defaults to today.
func (ctrl *PaymentController) GetRevenue(c *gin.Context) {
	now := ctrl.PaymentSvc.Now()
	day := now
	if raw := c.Query("date"); raw != "" {
		parsed, err := models.ParseDay(raw, now.Location())
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.validation", "date: "+err.Error())
			return
		}
		day = parsed
	}

	revenue, err := ctrl.RevenueSvc.GetRevenueForDate(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}
