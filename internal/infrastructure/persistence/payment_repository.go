package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paymentecho/backend/internal/domain/payment"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/paymentecho/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// active scopes a query to non-deleted payments
func (r *GormPaymentRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("deleted_at IS NULL")
}

// FindByID finds an active payment by its ID. Soft-deleted payments are
// reported as not found.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := r.active(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive returns every non-deleted payment
func (r *GormPaymentRepository) FindAllActive(ctx context.Context) ([]payment.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.active(ctx).Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// FindByStatusAndCurrency returns active payments matching status and/or
// currency; nil arguments leave that dimension unconstrained.
func (r *GormPaymentRepository) FindByStatusAndCurrency(ctx context.Context, status, currency *string) ([]payment.Payment, error) {
	query := r.active(ctx)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if currency != nil {
		query = query.Where("currency = ?", *currency)
	}

	var paymentModels []models.PaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// FindByAmountRange returns active payments inside the inclusive amount range
func (r *GormPaymentRepository) FindByAmountRange(ctx context.Context, min, max *decimal.Decimal) ([]payment.Payment, error) {
	query := r.active(ctx)
	if min != nil {
		query = query.Where("amount >= ?", *min)
	}
	if max != nil {
		query = query.Where("amount <= ?", *max)
	}

	var paymentModels []models.PaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// FindByDateRange returns active payments created inside the inclusive range
func (r *GormPaymentRepository) FindByDateRange(ctx context.Context, start, end *time.Time) ([]payment.Payment, error) {
	query := r.active(ctx)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var paymentModels []models.PaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// FindPage returns one sorted, store-paginated page of active payments
func (r *GormPaymentRepository) FindPage(ctx context.Context, page shared.PageRequest, sort shared.SortSpec) ([]payment.Payment, error) {
	page = page.Normalize()

	var paymentModels []models.PaymentModel
	if err := r.active(ctx).
		Order(orderExpr(sort)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// CountActive counts non-deleted payments
func (r *GormPaymentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.active(ctx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(p)).Error
}

func toPayments(paymentModels []models.PaymentModel) []payment.Payment {
	payments := make([]payment.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

// Ensure GormPaymentRepository implements payment.Repository
var _ payment.Repository = (*GormPaymentRepository)(nil)
