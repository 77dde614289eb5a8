// Package seed loads a small set of sample counterparties and payments
// into an empty store. It is meant for development environments and is
// gated by configuration.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paymentecho/backend/internal/domain/party"
	"github.com/paymentecho/backend/internal/domain/payment"
)

// Seeder populates the repositories with sample data
type Seeder struct {
	payments  payment.Repository
	creditors party.Repository
	debtors   party.Repository
	logger    *zap.Logger
}

// NewSeeder creates a seeder over the given repositories
func NewSeeder(payments payment.Repository, creditors, debtors party.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{
		payments:  payments,
		creditors: creditors,
		debtors:   debtors,
		logger:    logger,
	}
}

type sampleParty struct {
	name          string
	accountNumber string
	bankCode      string
	address       string
	email         string
}

var sampleCreditors = []sampleParty{
	{"Acme Supplies Ltd", "GB29NWBK60161331926819", "NWBKGB2L", "1 Market Street, London", "billing@acme-supplies.example"},
	{"Globex Industrial", "DE89370400440532013000", "COBADEFF", "Hauptstrasse 12, Frankfurt", "invoices@globex.example"},
	{"Initech Services", "FR1420041010050500013M02606", "BNPAFRPP", "", "accounts@initech.example"},
}

var sampleDebtors = []sampleParty{
	{"Wayne Enterprises", "US64SVBKUS6S3300958879", "SVBKUS6S", "1007 Mountain Drive, Gotham", "payables@wayne.example"},
	{"Stark Industries", "GB33BUKB20201555555555", "BUKBGB22", "200 Park Avenue, New York", ""},
}

type samplePayment struct {
	amount   string
	currency string
	status   payment.Status
	creditor int
	debtor   int
}

// creditor/debtor index into the sample slices; -1 means no reference
var samplePayments = []samplePayment{
	{"1250.00", "GBP", payment.StatusCompleted, 0, 0},
	{"844.10", "EUR", payment.StatusReceived, 1, 1},
	{"99.99", "USD", payment.StatusProcessing, 2, 0},
	{"15000.00", "EUR", payment.StatusReceived, 1, -1},
	{"42.50", "GBP", payment.StatusFailed, -1, 1},
	{"310.75", "USD", payment.StatusCompleted, -1, -1},
}

// Run inserts the sample data set unless the store already holds
// payments. It is safe to call on every startup.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.payments.CountActive(ctx)
	if err != nil {
		return fmt.Errorf("checking existing payments: %w", err)
	}
	if count > 0 {
		s.logger.Info("Skipping sample data, store is not empty", zap.Int64("payments", count))
		return nil
	}

	creditorIDs, err := s.seedParties(ctx, s.creditors, sampleCreditors)
	if err != nil {
		return fmt.Errorf("seeding creditors: %w", err)
	}
	debtorIDs, err := s.seedParties(ctx, s.debtors, sampleDebtors)
	if err != nil {
		return fmt.Errorf("seeding debtors: %w", err)
	}

	for _, sp := range samplePayments {
		amount, err := decimal.NewFromString(sp.amount)
		if err != nil {
			return fmt.Errorf("parsing sample amount %q: %w", sp.amount, err)
		}

		p, err := payment.NewPayment(amount, sp.currency, sp.status,
			pick(creditorIDs, sp.creditor), pick(debtorIDs, sp.debtor))
		if err != nil {
			return fmt.Errorf("building sample payment: %w", err)
		}
		if err := s.payments.Save(ctx, p); err != nil {
			return fmt.Errorf("saving sample payment: %w", err)
		}
	}

	s.logger.Info("Sample data loaded",
		zap.Int("creditors", len(sampleCreditors)),
		zap.Int("debtors", len(sampleDebtors)),
		zap.Int("payments", len(samplePayments)))
	return nil
}

func (s *Seeder) seedParties(ctx context.Context, repo party.Repository, samples []sampleParty) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(samples))
	for i, sp := range samples {
		c, err := party.NewCounterparty(sp.name, sp.accountNumber, sp.bankCode, sp.address, sp.email)
		if err != nil {
			return nil, err
		}
		if err := repo.Save(ctx, c); err != nil {
			return nil, err
		}
		ids[i] = c.ID
	}
	return ids, nil
}

func pick(ids []uuid.UUID, i int) *uuid.UUID {
	if i < 0 || i >= len(ids) {
		return nil
	}
	id := ids[i]
	return &id
}
