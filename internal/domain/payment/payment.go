package payment

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the processing state of a payment
type Status string

const (
	StatusReceived   Status = "RECEIVED"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Payment records a single payment. Payments are immutable after creation
// except for the soft-delete marker; there is no update operation.
type Payment struct {
	shared.BaseEntity
	Amount     decimal.Decimal
	Currency   string
	Status     Status
	CreditorID *uuid.UUID
	DebtorID   *uuid.UUID
	DeletedAt  *time.Time
}

// NewPayment creates a payment with a generated id and creation timestamp.
// The creditor/debtor references are recorded as given; callers are
// responsible for resolving them against live counterparties first.
func NewPayment(amount decimal.Decimal, currency string, status Status, creditorID, debtorID *uuid.UUID) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !currencyPattern.MatchString(currency) {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter uppercase code")
	}
	if status == "" {
		status = StatusReceived
	}
	if !status.Valid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be one of RECEIVED, PROCESSING, COMPLETED, FAILED")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		Amount:     amount,
		Currency:   currency,
		Status:     status,
		CreditorID: creditorID,
		DebtorID:   debtorID,
	}, nil
}

// Valid reports whether the status is one of the known states
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsDeleted reports whether the payment has been soft-deleted
func (p *Payment) IsDeleted() bool {
	return p.DeletedAt != nil
}

// MarkDeleted sets the soft-delete marker. It overwrites unconditionally;
// callers check visibility first (fetch, check, overwrite).
func (p *Payment) MarkDeleted(at time.Time) {
	p.DeletedAt = &at
}
