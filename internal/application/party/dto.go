package party

import (
	"time"

	"github.com/google/uuid"

	"github.com/paymentecho/backend/internal/domain/party"
)

// CreateCounterpartyRequest represents a request to register a creditor or debtor
type CreateCounterpartyRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=255"`
	AccountNumber string `json:"accountNumber" binding:"required,min=1,max=64"`
	BankCode      string `json:"bankCode" binding:"required,min=1,max=32"`
	Address       string `json:"address" binding:"max=500"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
}

// CounterpartyResponse represents a creditor or debtor in API responses
type CounterpartyResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"accountNumber"`
	BankCode      string    `json:"bankCode"`
	Address       string    `json:"address,omitempty"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListFilter represents the query parameters of a counterparty list request
type ListFilter struct {
	Name     *string
	BankCode *string
	Page     int
	Size     int
	Sort     string
}

// ToCounterpartyResponse maps a domain counterparty to its API representation
func ToCounterpartyResponse(c *party.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		ID:            c.ID,
		Name:          c.Name,
		AccountNumber: c.AccountNumber,
		BankCode:      c.BankCode,
		Address:       c.Address,
		Email:         c.Email,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCounterpartyResponses maps a slice of domain counterparties
func ToCounterpartyResponses(parties []party.Counterparty) []CounterpartyResponse {
	responses := make([]CounterpartyResponse, len(parties))
	for i := range parties {
		responses[i] = ToCounterpartyResponse(&parties[i])
	}
	return responses
}
