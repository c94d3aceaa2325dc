package payment

import (
	"context"

	paymentRepo "shopline/database/repository/payment"
	"shopline/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
)

// ValidationError rejects malformed input (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError signals an unknown payment (404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// PaymentService records payment intents. The gateway is stubbed:
// intents are persisted locally with status "initiated" and no charge
// is attempted.
type PaymentService interface {
	Initiate(ctx context.Context, userID string, amount int64, currency string) (*models.PaymentIntent, error)
	GetStatus(ctx context.Context, id string) (*models.PaymentIntent, error)
}

// StubPaymentService is the local-record implementation.
type StubPaymentService struct {
	Repo paymentRepo.PaymentRepository
}

// Initiate validates and records an intent.
func (s *StubPaymentService) Initiate(ctx context.Context, userID string, amount int64, currency string) (*models.PaymentIntent, error) {
	if userID == "" || amount <= 0 || currency == "" {
		return nil, &ValidationError{Message: "Missing required fields"}
	}
	if currency != string(stripe.CurrencyUSD) && currency != string(stripe.CurrencyEUR) && currency != string(stripe.CurrencyGBP) {
		return nil, &ValidationError{Message: "Unsupported currency"}
	}

	intent := &models.PaymentIntent{
		ID:       uuid.New().String(),
		UserID:   userID,
		Amount:   amount,
		Currency: currency,
		Status:   "initiated",
	}
	if err := s.Repo.Create(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// GetStatus returns a recorded intent.
func (s *StubPaymentService) GetStatus(ctx context.Context, id string) (*models.PaymentIntent, error) {
	intent, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, &NotFoundError{Message: "Payment not found"}
	}
	return intent, nil
}
