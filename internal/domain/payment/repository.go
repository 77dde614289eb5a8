package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Repository is the persistence port for payments. All Find methods
// exclude soft-deleted records; the delete path goes through FindByID
// followed by Save (fetch, check, overwrite).
type Repository interface {
	// FindByID returns the active payment with the given id, or
	// shared.ErrNotFound when it is absent or soft-deleted.
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAllActive returns every non-deleted payment, unsorted.
	FindAllActive(ctx context.Context) ([]Payment, error)

	// FindByStatusAndCurrency returns active payments matching the given
	// status and/or currency. A nil argument means that dimension is not
	// constrained; both present combine with AND.
	FindByStatusAndCurrency(ctx context.Context, status, currency *string) ([]Payment, error)

	// FindByAmountRange returns active payments with amount inside the
	// inclusive range. A nil bound leaves that end open.
	FindByAmountRange(ctx context.Context, min, max *decimal.Decimal) ([]Payment, error)

	// FindByDateRange returns active payments created inside the inclusive
	// range. A nil bound leaves that end open.
	FindByDateRange(ctx context.Context, start, end *time.Time) ([]Payment, error)

	// FindPage returns one store-paginated, sorted page of active payments.
	FindPage(ctx context.Context, page shared.PageRequest, sort shared.SortSpec) ([]Payment, error)

	// CountActive counts non-deleted payments.
	CountActive(ctx context.Context) (int64, error)

	// Save creates or updates a payment.
	Save(ctx context.Context, p *Payment) error
}
