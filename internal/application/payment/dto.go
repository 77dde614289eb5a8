package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paymentecho/backend/internal/domain/payment"
)

// CreatePaymentRequest represents a request to record a new payment
type CreatePaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"required,len=3"`
	Status     string          `json:"status" binding:"omitempty,oneof=RECEIVED PROCESSING COMPLETED FAILED"`
	CreditorID *uuid.UUID      `json:"creditorId"`
	DebtorID   *uuid.UUID      `json:"debtorId"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	CreditorID *uuid.UUID      `json:"creditorId,omitempty"`
	DebtorID   *uuid.UUID      `json:"debtorId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListFilter represents the query parameters of a payment list request.
// At most one filter dimension applies per request; see Service.List for
// the precedence rules.
type ListFilter struct {
	Status    *string
	Currency  *string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Size      int
	Sort      string
}

// ToPaymentResponse maps a domain payment to its API representation
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		CreditorID: p.CreditorID,
		DebtorID:   p.DebtorID,
		CreatedAt:  p.CreatedAt,
	}
}

// ToPaymentResponses maps a slice of domain payments
func ToPaymentResponses(payments []payment.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
