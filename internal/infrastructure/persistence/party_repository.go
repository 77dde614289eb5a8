package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/paymentecho/backend/internal/domain/party"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/paymentecho/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCounterpartyRepository implements party.Repository using GORM.
// Creditors and debtors share the implementation; the backing table is
// chosen by the constructor.
type GormCounterpartyRepository struct {
	db    *gorm.DB
	table string
	role  party.Role
}

// NewGormCreditorRepository creates a repository over the creditors table
func NewGormCreditorRepository(db *gorm.DB) *GormCounterpartyRepository {
	return &GormCounterpartyRepository{db: db, table: "creditors", role: party.RoleCreditor}
}

// NewGormDebtorRepository creates a repository over the debtors table
func NewGormDebtorRepository(db *gorm.DB) *GormCounterpartyRepository {
	return &GormCounterpartyRepository{db: db, table: "debtors", role: party.RoleDebtor}
}

// Role identifies which counterparty kind this repository serves
func (r *GormCounterpartyRepository) Role() party.Role {
	return r.role
}

// active scopes a query to the repository's table and non-deleted rows
func (r *GormCounterpartyRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table).Where("deleted_at IS NULL")
}

// FindByID finds an active counterparty by its ID. Soft-deleted records
// are reported as not found.
func (r *GormCounterpartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Counterparty, error) {
	var model models.CounterpartyModel
	if err := r.active(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive returns every non-deleted counterparty
func (r *GormCounterpartyRepository) FindAllActive(ctx context.Context) ([]party.Counterparty, error) {
	var counterpartyModels []models.CounterpartyModel
	if err := r.active(ctx).Find(&counterpartyModels).Error; err != nil {
		return nil, err
	}
	return toCounterparties(counterpartyModels), nil
}

// FindByNameContaining returns active counterparties whose name contains
// the given substring, case-insensitively.
func (r *GormCounterpartyRepository) FindByNameContaining(ctx context.Context, name string) ([]party.Counterparty, error) {
	pattern := "%" + strings.ToLower(name) + "%"

	var counterpartyModels []models.CounterpartyModel
	if err := r.active(ctx).Where("LOWER(name) LIKE ?", pattern).Find(&counterpartyModels).Error; err != nil {
		return nil, err
	}
	return toCounterparties(counterpartyModels), nil
}

// FindByBankCode returns active counterparties with the exact bank code
func (r *GormCounterpartyRepository) FindByBankCode(ctx context.Context, bankCode string) ([]party.Counterparty, error) {
	var counterpartyModels []models.CounterpartyModel
	if err := r.active(ctx).Where("bank_code = ?", bankCode).Find(&counterpartyModels).Error; err != nil {
		return nil, err
	}
	return toCounterparties(counterpartyModels), nil
}

// FindPage returns one sorted, store-paginated page of active records
func (r *GormCounterpartyRepository) FindPage(ctx context.Context, page shared.PageRequest, sort shared.SortSpec) ([]party.Counterparty, error) {
	page = page.Normalize()

	var counterpartyModels []models.CounterpartyModel
	if err := r.active(ctx).
		Order(orderExpr(sort)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&counterpartyModels).Error; err != nil {
		return nil, err
	}
	return toCounterparties(counterpartyModels), nil
}

// CountActive counts non-deleted counterparties
func (r *GormCounterpartyRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.active(ctx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a counterparty
func (r *GormCounterpartyRepository) Save(ctx context.Context, c *party.Counterparty) error {
	return r.db.WithContext(ctx).Table(r.table).Save(models.CounterpartyModelFromDomain(c)).Error
}

func toCounterparties(counterpartyModels []models.CounterpartyModel) []party.Counterparty {
	counterparties := make([]party.Counterparty, len(counterpartyModels))
	for i, model := range counterpartyModels {
		counterparties[i] = *model.ToDomain()
	}
	return counterparties
}

// Ensure GormCounterpartyRepository implements party.Repository
var _ party.Repository = (*GormCounterpartyRepository)(nil)
