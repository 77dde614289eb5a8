package party

import (
	"context"

	"github.com/google/uuid"
	"github.com/paymentecho/backend/internal/domain/shared"
)

// Repository is the persistence port for one counterparty role. A creditor
// repository and a debtor repository share this interface and all query
// logic; only the backing table differs. All Find methods exclude
// soft-deleted records.
type Repository interface {
	// Role identifies which counterparty kind this repository serves.
	Role() Role

	// FindByID returns the active counterparty with the given id, or
	// shared.ErrNotFound when absent or soft-deleted.
	FindByID(ctx context.Context, id uuid.UUID) (*Counterparty, error)

	// FindAllActive returns every non-deleted counterparty, unsorted.
	FindAllActive(ctx context.Context) ([]Counterparty, error)

	// FindByNameContaining returns active counterparties whose name
	// contains the given substring, case-insensitively.
	FindByNameContaining(ctx context.Context, name string) ([]Counterparty, error)

	// FindByBankCode returns active counterparties with the exact bank code.
	FindByBankCode(ctx context.Context, bankCode string) ([]Counterparty, error)

	// FindPage returns one store-paginated, sorted page of active records.
	FindPage(ctx context.Context, page shared.PageRequest, sort shared.SortSpec) ([]Counterparty, error)

	// CountActive counts non-deleted counterparties.
	CountActive(ctx context.Context) (int64, error)

	// Save creates or updates a counterparty.
	Save(ctx context.Context, c *Counterparty) error
}
