package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paymentecho/backend/internal/domain/party"
	"github.com/paymentecho/backend/internal/domain/payment"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/paymentecho/backend/internal/infrastructure/logger"
)

// Service handles payment business operations
type Service struct {
	paymentRepo  payment.Repository
	creditorRepo party.Repository
	debtorRepo   party.Repository
}

// NewService creates a new payment Service
func NewService(paymentRepo payment.Repository, creditorRepo, debtorRepo party.Repository) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		creditorRepo: creditorRepo,
		debtorRepo:   debtorRepo,
	}
}

// List retrieves a page of payments. At most one filter dimension applies
// per request, with fixed precedence: status/currency first, then amount
// range, then date range. Filtered requests load the full active set and
// slice it in memory; only the unfiltered path paginates in the store.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]PaymentResponse, int64, error) {
	page := shared.PageRequest{Page: filter.Page, Size: filter.Size}.Normalize()

	switch {
	case filter.Status != nil || filter.Currency != nil:
		payments, err := s.paymentRepo.FindByStatusAndCurrency(ctx, filter.Status, filter.Currency)
		if err != nil {
			return nil, 0, err
		}
		paged, total := shared.SlicePage(payments, page)
		return ToPaymentResponses(paged), total, nil

	case filter.MinAmount != nil || filter.MaxAmount != nil:
		payments, err := s.paymentRepo.FindByAmountRange(ctx, filter.MinAmount, filter.MaxAmount)
		if err != nil {
			return nil, 0, err
		}
		paged, total := shared.SlicePage(payments, page)
		return ToPaymentResponses(paged), total, nil

	case filter.StartDate != nil || filter.EndDate != nil:
		payments, err := s.paymentRepo.FindByDateRange(ctx, filter.StartDate, filter.EndDate)
		if err != nil {
			return nil, 0, err
		}
		paged, total := shared.SlicePage(payments, page)
		return ToPaymentResponses(paged), total, nil

	default:
		sort := shared.ParseSortSpec(filter.Sort)
		payments, err := s.paymentRepo.FindPage(ctx, page, sort)
		if err != nil {
			return nil, 0, err
		}
		total, err := s.paymentRepo.CountActive(ctx)
		if err != nil {
			return nil, 0, err
		}
		return ToPaymentResponses(payments), total, nil
	}
}

// GetByID retrieves a payment by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	response := ToPaymentResponse(p)
	return &response, nil
}

// Create records a new payment. Counterparty references are resolved first;
// a reference to a missing or soft-deleted counterparty fails the whole
// request and nothing is persisted.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if req.CreditorID != nil {
		if _, err := s.creditorRepo.FindByID(ctx, *req.CreditorID); err != nil {
			return nil, mapPartyNotFound(err, shared.KindCreditor, *req.CreditorID)
		}
	}
	if req.DebtorID != nil {
		if _, err := s.debtorRepo.FindByID(ctx, *req.DebtorID); err != nil {
			return nil, mapPartyNotFound(err, shared.KindDebtor, *req.DebtorID)
		}
	}

	p, err := payment.NewPayment(req.Amount, req.Currency, payment.Status(req.Status), req.CreditorID, req.DebtorID)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Payment created",
		zap.String("payment_id", p.ID.String()),
		zap.String("currency", p.Currency),
		zap.String("status", string(p.Status)),
	)

	response := ToPaymentResponse(p)
	return &response, nil
}

// Echo persists the request as a new payment and returns the stored record.
// The semantics are identical to Create; only the HTTP status differs.
func (s *Service) Echo(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	logger.FromContext(ctx).Info("Echoing payment")
	return s.Create(ctx, req)
}

// Delete soft-deletes a payment. The record is fetched first; deleting a
// payment that is absent or already soft-deleted reports not-found. The
// fetch and the overwrite are separate steps, there is no compare-and-set.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return s.mapNotFound(err, id)
	}

	p.MarkDeleted(time.Now())
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Payment deleted", zap.String("payment_id", id.String()))
	return nil
}

func (s *Service) mapNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(shared.KindPayment, id)
	}
	return err
}

func mapPartyNotFound(err error, kind shared.EntityKind, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(kind, id)
	}
	return err
}
