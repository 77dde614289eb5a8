package payment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paymentecho/backend/internal/domain/party"
	"github.com/paymentecho/backend/internal/domain/payment"
	"github.com/paymentecho/backend/internal/domain/shared"
)

// MockPaymentRepository is a mock implementation of payment.Repository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllActive(ctx context.Context) ([]payment.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByStatusAndCurrency(ctx context.Context, status, currency *string) ([]payment.Payment, error) {
	args := m.Called(ctx, status, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByAmountRange(ctx context.Context, min, max *decimal.Decimal) ([]payment.Payment, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByDateRange(ctx context.Context, start, end *time.Time) ([]payment.Payment, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPage(ctx context.Context, page shared.PageRequest, sort shared.SortSpec) ([]payment.Payment, error) {
	args := m.Called(ctx, page, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockPartyRepository is a mock implementation of party.Repository
type MockPartyRepository struct {
	mock.Mock
	role party.Role
}

func (m *MockPartyRepository) Role() party.Role { return m.role }

func (m *MockPartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Counterparty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Counterparty), args.Error(1)
}

func (m *MockPartyRepository) FindAllActive(ctx context.Context) ([]party.Counterparty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]party.Counterparty), args.Error(1)
}

func (m *MockPartyRepository) FindByNameContaining(ctx context.Context, name string) ([]party.Counterparty, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]party.Counterparty), args.Error(1)
}

func (m *MockPartyRepository) FindByBankCode(ctx context.Context, bankCode string) ([]party.Counterparty, error) {
	args := m.Called(ctx, bankCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]party.Counterparty), args.Error(1)
}

func (m *MockPartyRepository) FindPage(ctx context.Context, page shared.PageRequest, sort shared.SortSpec) ([]party.Counterparty, error) {
	args := m.Called(ctx, page, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]party.Counterparty), args.Error(1)
}

func (m *MockPartyRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartyRepository) Save(ctx context.Context, c *party.Counterparty) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func newTestService() (*Service, *MockPaymentRepository, *MockPartyRepository, *MockPartyRepository) {
	paymentRepo := new(MockPaymentRepository)
	creditorRepo := &MockPartyRepository{role: party.RoleCreditor}
	debtorRepo := &MockPartyRepository{role: party.RoleDebtor}
	return NewService(paymentRepo, creditorRepo, debtorRepo), paymentRepo, creditorRepo, debtorRepo
}

func makePayments(n int) []payment.Payment {
	payments := make([]payment.Payment, n)
	for i := range payments {
		p, _ := payment.NewPayment(decimal.NewFromInt(int64(100+i)), "USD", payment.StatusReceived, nil, nil)
		payments[i] = *p
	}
	return payments
}

func strPtr(s string) *string { return &s }

func TestListStatusFilterWinsOverAmountRange(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	status := strPtr("COMPLETED")
	min := decimal.NewFromInt(10)

	paymentRepo.On("FindByStatusAndCurrency", mock.Anything, status, (*string)(nil)).
		Return(makePayments(3), nil)

	responses, total, err := svc.List(context.Background(), ListFilter{
		Status:    status,
		MinAmount: &min, // must be ignored: status takes precedence
	})

	require.NoError(t, err)
	assert.Len(t, responses, 3)
	assert.Equal(t, int64(3), total)
	paymentRepo.AssertNotCalled(t, "FindByAmountRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestListAmountRangeWinsOverDateRange(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	min := decimal.NewFromInt(10)
	start := time.Now()

	paymentRepo.On("FindByAmountRange", mock.Anything, &min, (*decimal.Decimal)(nil)).
		Return(makePayments(1), nil)

	_, _, err := svc.List(context.Background(), ListFilter{
		MinAmount: &min,
		StartDate: &start,
	})

	require.NoError(t, err)
	paymentRepo.AssertNotCalled(t, "FindByDateRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestListFilteredPathSlicesInMemory(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	currency := strPtr("EUR")
	paymentRepo.On("FindByStatusAndCurrency", mock.Anything, (*string)(nil), currency).
		Return(makePayments(45), nil)

	responses, total, err := svc.List(context.Background(), ListFilter{
		Currency: currency,
		Page:     2,
		Size:     20,
	})

	require.NoError(t, err)
	assert.Len(t, responses, 5) // 45 items, page 2 of size 20
	assert.Equal(t, int64(45), total)
}

func TestListFilteredPageBeyondRangeIsEmpty(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	currency := strPtr("EUR")
	paymentRepo.On("FindByStatusAndCurrency", mock.Anything, (*string)(nil), currency).
		Return(makePayments(5), nil)

	responses, total, err := svc.List(context.Background(), ListFilter{
		Currency: currency,
		Page:     999999,
	})

	require.NoError(t, err)
	assert.NotNil(t, responses)
	assert.Empty(t, responses)
	assert.Equal(t, int64(5), total)
}

func TestListUnfilteredUsesStorePagination(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	expectedPage := shared.PageRequest{Page: 1, Size: 10}
	expectedSort := shared.SortSpec{Field: "amount", Desc: false}

	paymentRepo.On("FindPage", mock.Anything, expectedPage, expectedSort).
		Return(makePayments(10), nil)
	paymentRepo.On("CountActive", mock.Anything).Return(int64(37), nil)

	responses, total, err := svc.List(context.Background(), ListFilter{
		Page: 1,
		Size: 10,
		Sort: "amount,asc",
	})

	require.NoError(t, err)
	assert.Len(t, responses, 10)
	assert.Equal(t, int64(37), total)
}

func TestListUnfilteredDefaultSort(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	paymentRepo.On("FindPage", mock.Anything, shared.PageRequest{Page: 0, Size: 20}, shared.DefaultSort()).
		Return(makePayments(2), nil)
	paymentRepo.On("CountActive", mock.Anything).Return(int64(2), nil)

	_, _, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	paymentRepo.AssertExpectations(t)
}

func TestGetByID(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	p, _ := payment.NewPayment(decimal.NewFromInt(150), "USD", payment.StatusReceived, nil, nil)
	paymentRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	resp, err := svc.GetByID(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Equal(t, p.ID, resp.ID)
	assert.Equal(t, "RECEIVED", resp.Status)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	id := uuid.New()
	paymentRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(context.Background(), id)

	var nfe *shared.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, shared.KindPayment, nfe.Kind)
	assert.Equal(t, "payment.not.found", nfe.MessageKey())
}

func TestGetByIDMapsWrappedNotFound(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	id := uuid.New()
	paymentRepo.On("FindByID", mock.Anything, id).
		Return(nil, fmt.Errorf("lookup: %w", shared.ErrNotFound))

	_, err := svc.GetByID(context.Background(), id)

	var nfe *shared.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, shared.KindPayment, nfe.Kind)
}

func TestCreate(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)

	resp, err := svc.Create(context.Background(), CreatePaymentRequest{
		Amount:   decimal.NewFromFloat(99.50),
		Currency: "USD",
	})

	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", resp.Status) // defaulted
	assert.NotEqual(t, uuid.Nil, resp.ID)
	paymentRepo.AssertExpectations(t)
}

func TestCreateWithLiveCounterparties(t *testing.T) {
	svc, paymentRepo, creditorRepo, debtorRepo := newTestService()

	creditor, _ := party.NewCounterparty("Acme Corp", "ACC-1", "BANK-1", "", "")
	debtor, _ := party.NewCounterparty("Widgets Ltd", "ACC-2", "BANK-2", "", "")

	creditorRepo.On("FindByID", mock.Anything, creditor.ID).Return(creditor, nil)
	debtorRepo.On("FindByID", mock.Anything, debtor.ID).Return(debtor, nil)
	paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)

	resp, err := svc.Create(context.Background(), CreatePaymentRequest{
		Amount:     decimal.NewFromInt(500),
		Currency:   "EUR",
		Status:     "PROCESSING",
		CreditorID: &creditor.ID,
		DebtorID:   &debtor.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, &creditor.ID, resp.CreditorID)
	assert.Equal(t, &debtor.ID, resp.DebtorID)
}

func TestCreateDeletedCreditorFailsWholeRequest(t *testing.T) {
	svc, paymentRepo, creditorRepo, _ := newTestService()

	// soft-deleted references surface as not-found from the repository
	creditorID := uuid.New()
	creditorRepo.On("FindByID", mock.Anything, creditorID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		Amount:     decimal.NewFromInt(500),
		Currency:   "EUR",
		CreditorID: &creditorID,
	})

	var nfe *shared.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, shared.KindCreditor, nfe.Kind)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateDeletedDebtorFailsWholeRequest(t *testing.T) {
	svc, paymentRepo, _, debtorRepo := newTestService()

	debtorID := uuid.New()
	debtorRepo.On("FindByID", mock.Anything, debtorID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		Amount:   decimal.NewFromInt(500),
		Currency: "EUR",
		DebtorID: &debtorID,
	})

	var nfe *shared.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, shared.KindDebtor, nfe.Kind)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateInvalidAmount(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		Amount:   decimal.NewFromInt(-5),
		Currency: "USD",
	})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_AMOUNT", de.Code)
}

func TestEchoPersistsLikeCreate(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)

	resp, err := svc.Echo(context.Background(), CreatePaymentRequest{
		Amount:   decimal.NewFromInt(10),
		Currency: "GBP",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	paymentRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*payment.Payment"))
}

func TestDelete(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	p, _ := payment.NewPayment(decimal.NewFromInt(100), "USD", payment.StatusReceived, nil, nil)
	paymentRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	paymentRepo.On("Save", mock.Anything, mock.MatchedBy(func(saved *payment.Payment) bool {
		return saved.IsDeleted()
	})).Return(nil)

	err := svc.Delete(context.Background(), p.ID)

	require.NoError(t, err)
	paymentRepo.AssertExpectations(t)
}

func TestDeleteAlreadyDeletedReportsNotFound(t *testing.T) {
	svc, paymentRepo, _, _ := newTestService()

	id := uuid.New()
	paymentRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	err := svc.Delete(context.Background(), id)

	var nfe *shared.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, shared.KindPayment, nfe.Kind)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
