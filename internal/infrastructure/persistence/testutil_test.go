package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/paymentecho/backend/internal/domain/party"
	"github.com/paymentecho/backend/internal/domain/payment"
	"github.com/paymentecho/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an isolated in-memory database with all three tables
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.PaymentModel{}))
	require.NoError(t, db.Table("creditors").AutoMigrate(&models.CounterpartyModel{}))
	require.NoError(t, db.Table("debtors").AutoMigrate(&models.CounterpartyModel{}))

	return db
}

// mustCreatePayment persists a payment with the given fields and returns it
func mustCreatePayment(t *testing.T, repo *GormPaymentRepository, amount float64, currency string, status payment.Status) *payment.Payment {
	t.Helper()

	p, err := payment.NewPayment(decimal.NewFromFloat(amount), currency, status, nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

// mustCreateCounterparty persists a counterparty and returns it
func mustCreateCounterparty(t *testing.T, repo *GormCounterpartyRepository, name, bankCode string) *party.Counterparty {
	t.Helper()

	c, err := party.NewCounterparty(name, "ACC-"+bankCode, bankCode, "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

// softDelete marks an entity deleted through the repository save path
func softDeletePayment(t *testing.T, repo *GormPaymentRepository, p *payment.Payment) {
	t.Helper()
	p.MarkDeleted(time.Now())
	require.NoError(t, repo.Save(context.Background(), p))
}
