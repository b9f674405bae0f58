package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SetCurrencyActive(ctx context.Context, currencyCode string, active bool, updatedBy string) error {
	args := m.Called(ctx, currencyCode, active, updatedBy)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestObservation(ctx context.Context) (*domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock RecordStore ---
type MockRecordStore struct {
	mock.Mock
}

var _ portsrepo.RecordStoreFacade = (*MockRecordStore)(nil)

func (m *MockRecordStore) SaveSale(ctx context.Context, sale domain.Sale, entries []domain.JournalEntry) error {
	args := m.Called(ctx, sale, entries)
	return args.Error(0)
}

func (m *MockRecordStore) SavePurchase(ctx context.Context, purchase domain.Purchase, entries []domain.JournalEntry) error {
	args := m.Called(ctx, purchase, entries)
	return args.Error(0)
}

func (m *MockRecordStore) SaveSaleReturn(ctx context.Context, ret domain.SaleReturn, entries []domain.JournalEntry) error {
	args := m.Called(ctx, ret, entries)
	return args.Error(0)
}

func (m *MockRecordStore) SavePurchaseReturn(ctx context.Context, ret domain.PurchaseReturn, entries []domain.JournalEntry) error {
	args := m.Called(ctx, ret, entries)
	return args.Error(0)
}

func (m *MockRecordStore) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.JournalEntry) error {
	args := m.Called(ctx, voucher, entries)
	return args.Error(0)
}

func (m *MockRecordStore) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockRecordStore) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockRecordStore) ListSalesByDateRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockRecordStore) ListPurchasesByDateRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Purchase, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, reversal, originalEntryID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AccountDirectory ---
type MockAccountDirectory struct {
	mock.Mock
}

var _ portsrepo.AccountDirectory = (*MockAccountDirectory)(nil)

func (m *MockAccountDirectory) ResolveAccount(ctx context.Context, role domain.AccountRole, organizationID string) (string, error) {
	args := m.Called(ctx, role, organizationID)
	return args.String(0), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) DeactivateCurrency(ctx context.Context, currencyCode string, updaterUserID string) error {
	args := m.Called(ctx, currencyCode, updaterUserID)
	return args.Error(0)
}

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

func (m *MockRateService) RecordRate(ctx context.Context, req dto.RecordRateRequest, recordedByUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, recordedByUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateService) CurrentRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateService) RateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateService) RateStaleness(ctx context.Context) (*domain.RateStaleness, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateStaleness), args.Error(1)
}

func (m *MockRateService) ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

var _ portssvc.ConversionSvcFacade = (*MockConversionService)(nil)

func (m *MockConversionService) ToBase(ctx context.Context, amount decimal.Decimal, fromCurrencyCode string) (*domain.ConversionResult, error) {
	args := m.Called(ctx, amount, fromCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConversionService) FromBase(ctx context.Context, amount decimal.Decimal, toCurrencyCode string) (*domain.ConversionResult, error) {
	args := m.Called(ctx, amount, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConversionService) BaseCurrency() string {
	args := m.Called()
	return args.String(0)
}

// --- Mock ValuationService ---
type MockValuationService struct {
	mock.Mock
}

var _ portssvc.ValuationSvcFacade = (*MockValuationService)(nil)

func (m *MockValuationService) Valuate(ctx context.Context, baseSubtotal decimal.Decimal, transactionCurrencyCode string) (*domain.TransactionValuation, error) {
	args := m.Called(ctx, baseSubtotal, transactionCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionValuation), args.Error(1)
}

func (m *MockValuationService) ValuateReturn(ctx context.Context, original domain.TransactionValuation, returnedBaseAmount decimal.Decimal) (*domain.TransactionValuation, error) {
	args := m.Called(ctx, original, returnedBaseAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionValuation), args.Error(1)
}

func (m *MockValuationService) ValidateReturnQuantities(originalQuantities map[string]decimal.Decimal, returned []domain.ReturnItem) error {
	args := m.Called(originalQuantities, returned)
	return args.Error(0)
}

// --- Mock NotificationGateway ---
type MockNotificationGateway struct {
	mock.Mock
}

var _ portssvc.NotificationGateway = (*MockNotificationGateway)(nil)

func (m *MockNotificationGateway) Publish(ctx context.Context, event portssvc.Event) {
	m.Called(ctx, event)
}
