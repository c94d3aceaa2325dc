package handlers

import (
	"errors"
	"net/http"

	"shopline/services/payment"
	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes payment intents over HTTP.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// InitiatePayment records a payment intent for the caller.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields: amount, currency", err.Error())
		return
	}

	intent, err := h.Service.Initiate(c.Request.Context(), c.GetString("userID"), req.Amount, req.Currency)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment initiated", "payment": intent})
}

// GetPaymentStatus returns a recorded intent.
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	intent, err := h.Service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": intent})
}

func respondPaymentError(c *gin.Context, err error) {
	var (
		validationErr *payment.ValidationError
		notFoundErr   *payment.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Message, "")
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, notFoundErr.Message, "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
