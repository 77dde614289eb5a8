package party

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paymentecho/backend/internal/domain/party"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/paymentecho/backend/internal/infrastructure/logger"
)

// Service handles counterparty business operations. One instance serves
// creditors, another serves debtors; the behavior is identical and only
// the repository (and therefore the table and the error kind) differs.
type Service struct {
	repo party.Repository
}

// NewService creates a counterparty Service over the given repository
func NewService(repo party.Repository) *Service {
	return &Service{repo: repo}
}

// Role identifies which counterparty kind this service handles
func (s *Service) Role() party.Role {
	return s.repo.Role()
}

// List retrieves a page of counterparties. A name filter matches as a
// case-insensitive substring; when a bank code is also present it narrows
// the name matches in memory. A bank code alone matches exactly. Filtered
// requests slice the full result set in memory; only the unfiltered path
// paginates in the store.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]CounterpartyResponse, int64, error) {
	page := shared.PageRequest{Page: filter.Page, Size: filter.Size}.Normalize()

	switch {
	case filter.Name != nil:
		parties, err := s.repo.FindByNameContaining(ctx, *filter.Name)
		if err != nil {
			return nil, 0, err
		}
		if filter.BankCode != nil {
			parties = filterByBankCode(parties, *filter.BankCode)
		}
		paged, total := shared.SlicePage(parties, page)
		return ToCounterpartyResponses(paged), total, nil

	case filter.BankCode != nil:
		parties, err := s.repo.FindByBankCode(ctx, *filter.BankCode)
		if err != nil {
			return nil, 0, err
		}
		paged, total := shared.SlicePage(parties, page)
		return ToCounterpartyResponses(paged), total, nil

	default:
		sort := shared.ParseSortSpec(filter.Sort)
		parties, err := s.repo.FindPage(ctx, page, sort)
		if err != nil {
			return nil, 0, err
		}
		total, err := s.repo.CountActive(ctx)
		if err != nil {
			return nil, 0, err
		}
		return ToCounterpartyResponses(parties), total, nil
	}
}

// GetByID retrieves a counterparty by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*CounterpartyResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	response := ToCounterpartyResponse(c)
	return &response, nil
}

// Create registers a new counterparty
func (s *Service) Create(ctx context.Context, req CreateCounterpartyRequest) (*CounterpartyResponse, error) {
	c, err := party.NewCounterparty(req.Name, req.AccountNumber, req.BankCode, req.Address, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Counterparty created",
		zap.String("role", string(s.repo.Role())),
		zap.String("id", c.ID.String()),
	)

	response := ToCounterpartyResponse(c)
	return &response, nil
}

// Delete soft-deletes a counterparty. The record is fetched first; deleting
// one that is absent or already soft-deleted reports not-found. Payments
// referencing the deleted counterparty keep their reference.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapNotFound(err, id)
	}

	c.MarkDeleted(time.Now())
	if err := s.repo.Save(ctx, c); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Counterparty deleted",
		zap.String("role", string(s.repo.Role())),
		zap.String("id", id.String()),
	)
	return nil
}

func (s *Service) mapNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(s.repo.Role().Kind(), id)
	}
	return err
}

func filterByBankCode(parties []party.Counterparty, bankCode string) []party.Counterparty {
	filtered := make([]party.Counterparty, 0, len(parties))
	for _, c := range parties {
		if c.BankCode == bankCode {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
