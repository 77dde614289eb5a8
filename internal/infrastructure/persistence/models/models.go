// Package models holds the GORM persistence models and their mappings to
// and from the domain aggregates.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paymentecho/backend/internal/domain/party"
	"github.com/paymentecho/backend/internal/domain/payment"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentModel maps the Payment aggregate to the payments table.
// deleted_at is a plain nullable column, not GORM's soft-delete type:
// visibility rules are applied explicitly in the repositories.
type PaymentModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount     decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Currency   string          `gorm:"type:varchar(3);not null"`
	Status     string          `gorm:"type:varchar(20);not null;index"`
	CreditorID *uuid.UUID      `gorm:"type:uuid;index"`
	DebtorID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt  time.Time       `gorm:"not null;index"`
	DeletedAt  *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to the domain aggregate
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		Amount:     m.Amount,
		Currency:   m.Currency,
		Status:     payment.Status(m.Status),
		CreditorID: m.CreditorID,
		DebtorID:   m.DebtorID,
		DeletedAt:  m.DeletedAt,
	}
}

// PaymentModelFromDomain converts the domain aggregate to its model
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	return &PaymentModel{
		ID:         p.ID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		CreditorID: p.CreditorID,
		DebtorID:   p.DebtorID,
		CreatedAt:  p.CreatedAt,
		DeletedAt:  p.DeletedAt,
	}
}

// CounterpartyModel maps the Counterparty aggregate. It carries no table
// name of its own: the same model backs both the creditors and debtors
// tables, selected by the repository.
type CounterpartyModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"type:varchar(200);not null;index"`
	AccountNumber string     `gorm:"type:varchar(64);not null"`
	BankCode      string     `gorm:"type:varchar(32);not null;index"`
	Address       string     `gorm:"type:text"`
	Email         string     `gorm:"type:varchar(200)"`
	CreatedAt     time.Time  `gorm:"not null;index"`
	UpdatedAt     time.Time  `gorm:"not null"`
	DeletedAt     *time.Time `gorm:"index"`
}

// ToDomain converts the model to the domain aggregate
func (m *CounterpartyModel) ToDomain() *party.Counterparty {
	return &party.Counterparty{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		BankCode:      m.BankCode,
		Address:       m.Address,
		Email:         m.Email,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     m.DeletedAt,
	}
}

// CounterpartyModelFromDomain converts the domain aggregate to its model
func CounterpartyModelFromDomain(c *party.Counterparty) *CounterpartyModel {
	return &CounterpartyModel{
		ID:            c.ID,
		Name:          c.Name,
		AccountNumber: c.AccountNumber,
		BankCode:      c.BankCode,
		Address:       c.Address,
		Email:         c.Email,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		DeletedAt:     c.DeletedAt,
	}
}
