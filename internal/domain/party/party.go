package party

import (
	"regexp"
	"time"

	"github.com/paymentecho/backend/internal/domain/shared"
)

// Role distinguishes the two counterparty kinds. Creditors and debtors are
// structurally identical; the role decides which table they live in and
// which error messages they produce.
type Role string

const (
	RoleCreditor Role = "creditor"
	RoleDebtor   Role = "debtor"
)

// Kind returns the entity kind used in error mapping for this role
func (r Role) Kind() shared.EntityKind {
	if r == RoleDebtor {
		return shared.KindDebtor
	}
	return shared.KindCreditor
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Counterparty is a creditor or debtor that payments may reference.
type Counterparty struct {
	shared.BaseEntity
	Name          string
	AccountNumber string
	BankCode      string
	Address       string
	Email         string
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// NewCounterparty creates a counterparty with generated id and timestamps.
// Address and email are optional; an email must look like one when present.
func NewCounterparty(name, accountNumber, bankCode, address, email string) (*Counterparty, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number is required")
	}
	if bankCode == "" {
		return nil, shared.NewDomainError("INVALID_BANK_CODE", "Bank code is required")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email has an invalid format")
	}

	base := shared.NewBaseEntity()
	return &Counterparty{
		BaseEntity:    base,
		Name:          name,
		AccountNumber: accountNumber,
		BankCode:      bankCode,
		Address:       address,
		Email:         email,
		UpdatedAt:     base.CreatedAt,
	}, nil
}

// IsDeleted reports whether the counterparty has been soft-deleted
func (c *Counterparty) IsDeleted() bool {
	return c.DeletedAt != nil
}

// MarkDeleted sets the soft-delete marker and bumps the update timestamp.
// It overwrites unconditionally; callers check visibility first.
func (c *Counterparty) MarkDeleted(at time.Time) {
	c.DeletedAt = &at
	c.UpdatedAt = at
}
