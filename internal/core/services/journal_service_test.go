package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/core/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockRecordStore   *MockRecordStore
	mockJournalRepo   *MockJournalRepository
	mockAccountDir    *MockAccountDirectory
	mockValuationSvc  *MockValuationService
	mockConversionSvc *MockConversionService
	mockNotifier      *MockNotificationGateway
	service           portssvc.JournalSvcFacade
	organizationID    string
	userID            string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockRecordStore = new(MockRecordStore)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountDir = new(MockAccountDirectory)
	suite.mockValuationSvc = new(MockValuationService)
	suite.mockConversionSvc = new(MockConversionService)
	suite.mockNotifier = new(MockNotificationGateway)
	suite.service = services.NewJournalService(
		suite.mockRecordStore,
		suite.mockJournalRepo,
		suite.mockAccountDir,
		suite.mockValuationSvc,
		suite.mockConversionSvc,
		suite.mockNotifier,
	)
	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockConversionSvc.On("BaseCurrency").Return("SAR").Maybe()
}

// resolveAllRoles maps every account role to a synthetic account ID.
func (suite *JournalServiceTestSuite) resolveAllRoles(ctx context.Context) {
	suite.mockAccountDir.On("ResolveAccount", ctx, mock.AnythingOfType("domain.AccountRole"), suite.organizationID).
		Return("acct-1", nil)
}

func decEq(expected string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(expected))
	})
}

func lineAmounts(entry domain.JournalEntry) map[domain.AccountRole][2]decimal.Decimal {
	m := make(map[domain.AccountRole][2]decimal.Decimal, len(entry.Lines))
	for _, line := range entry.Lines {
		m[line.Role] = [2]decimal.Decimal{line.Debit, line.Credit}
	}
	return m
}

func (suite *JournalServiceTestSuite) saleValuation() *domain.TransactionValuation {
	return &domain.TransactionValuation{
		TransactionCurrency: "YER",
		DisplayAmount:       decimal.RequireFromString("41666.67"),
		BaseAmount:          decimal.NewFromInt(100),
		ExchangeRateUsed:    decimal.RequireFromString("416.666667"),
		ValuationDate:       time.Now().UTC(),
	}
}

func (suite *JournalServiceTestSuite) TestPostSale_CashSaleWithCOGS() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		OrganizationID: suite.organizationID,
		SaleDate:       time.Now().UTC(),
		CurrencyCode:   "YER",
		PaymentMethod:  "CASH",
		Status:         "PAID",
		TaxAmount:      decimal.NewFromInt(15),
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(30), CostPrice: decimal.NewFromInt(12)},
			{ProductID: "prod-2", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(40), CostPrice: decimal.NewFromInt(16)},
		},
	}

	suite.mockValuationSvc.On("Valuate", ctx, decEq("100"), "YER").Return(suite.saleValuation(), nil).Once()
	suite.resolveAllRoles(ctx)

	var savedSale domain.Sale
	var savedEntries []domain.JournalEntry
	suite.mockRecordStore.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedSale = args.Get(1).(domain.Sale)
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()
	suite.mockNotifier.On("Publish", ctx, mock.MatchedBy(func(e portssvc.Event) bool {
		return e.Name == "sale.posted"
	})).Return().Once()

	result, err := suite.service.PostSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Posted)
	suite.Empty(result.PendingReason)
	suite.NotEmpty(result.JournalEntryID)
	suite.NotEmpty(result.CogsJournalEntryID)

	suite.True(savedSale.BaseSubtotal.Equal(decimal.NewFromInt(100)))
	suite.True(savedSale.BaseTax.Equal(decimal.NewFromInt(15)))
	suite.True(savedSale.BaseGrandTotal.Equal(decimal.NewFromInt(115)))
	suite.Equal("YER", savedSale.Valuation.TransactionCurrency)

	suite.Require().Len(savedEntries, 2)
	revenue := lineAmounts(savedEntries[0])
	suite.True(revenue[domain.RoleCash][0].Equal(decimal.NewFromInt(115)), "cash debited with the grand total")
	suite.True(revenue[domain.RoleSalesRevenue][1].Equal(decimal.NewFromInt(100)))
	suite.True(revenue[domain.RoleVATPayable][1].Equal(decimal.NewFromInt(15)))
	suite.True(savedEntries[0].TotalDebits().Equal(savedEntries[0].TotalCredits()))
	suite.Equal("SAR", savedEntries[0].CurrencyCode)

	cogs := lineAmounts(savedEntries[1])
	// 2*12 + 1*16 = 40
	suite.True(cogs[domain.RoleCOGS][0].Equal(decimal.NewFromInt(40)))
	suite.True(cogs[domain.RoleInventory][1].Equal(decimal.NewFromInt(40)))
	suite.True(savedEntries[1].TotalDebits().Equal(savedEntries[1].TotalCredits()))

	suite.mockRecordStore.AssertExpectations(suite.T())
	suite.mockValuationSvc.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostSale_MissingMappingIsSoftFailure() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		OrganizationID: suite.organizationID,
		SaleDate:       time.Now().UTC(),
		CurrencyCode:   "SAR",
		PaymentMethod:  "CASH",
		Status:         "PAID",
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}
	mapErr := &apperrors.MissingAccountMappingError{Role: string(domain.RoleCash), OrganizationID: suite.organizationID}

	suite.mockValuationSvc.On("Valuate", ctx, decEq("50"), "SAR").Return(&domain.TransactionValuation{
		TransactionCurrency: "SAR",
		DisplayAmount:       decimal.NewFromInt(50),
		BaseAmount:          decimal.NewFromInt(50),
		ExchangeRateUsed:    decimal.NewFromInt(1),
		ValuationDate:       time.Now().UTC(),
	}, nil).Once()
	suite.mockAccountDir.On("ResolveAccount", ctx, mock.AnythingOfType("domain.AccountRole"), suite.organizationID).
		Return("", mapErr)
	suite.mockNotifier.On("Publish", ctx, mock.MatchedBy(func(e portssvc.Event) bool {
		return e.Name == "journal.pending_mapping"
	})).Return().Once()

	var savedEntries []domain.JournalEntry
	suite.mockRecordStore.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.PostSale(ctx, req, suite.userID)

	suite.Require().NoError(err, "missing mapping must not fail the business transaction")
	suite.False(result.Posted)
	suite.NotEmpty(result.PendingReason)
	suite.Empty(result.JournalEntryID)
	suite.Nil(savedEntries, "no journal entries are persisted when the mapping is missing")
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockRecordStore.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostSale_ValuationFailureIsHard() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		OrganizationID: suite.organizationID,
		SaleDate:       time.Now().UTC(),
		CurrencyCode:   "XYZ",
		PaymentMethod:  "CASH",
		Status:         "PAID",
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.mockValuationSvc.On("Valuate", ctx, mock.Anything, "XYZ").Return(nil, apperrors.ErrRateNotFound).Once()

	_, err := suite.service.PostSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
	suite.mockRecordStore.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostSale_NonPositiveQuantity() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		OrganizationID: suite.organizationID,
		SaleDate:       time.Now().UTC(),
		PaymentMethod:  "CASH",
		Status:         "PAID",
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(50)},
		},
	}

	_, err := suite.service.PostSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockValuationSvc.AssertNotCalled(suite.T(), "Valuate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostPurchase_OnCredit() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		OrganizationID: suite.organizationID,
		PurchaseDate:   time.Now().UTC(),
		CurrencyCode:   "SAR",
		PaymentMethod:  "CREDIT",
		Status:         "PENDING",
		TaxAmount:      decimal.NewFromInt(30),
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(20)},
		},
	}

	suite.mockValuationSvc.On("Valuate", ctx, decEq("200"), "SAR").Return(&domain.TransactionValuation{
		TransactionCurrency: "SAR",
		DisplayAmount:       decimal.NewFromInt(200),
		BaseAmount:          decimal.NewFromInt(200),
		ExchangeRateUsed:    decimal.NewFromInt(1),
		ValuationDate:       time.Now().UTC(),
	}, nil).Once()
	suite.resolveAllRoles(ctx)

	var savedEntries []domain.JournalEntry
	suite.mockRecordStore.On("SavePurchase", ctx, mock.AnythingOfType("domain.Purchase"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.PostPurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Posted)

	suite.Require().Len(savedEntries, 1)
	amounts := lineAmounts(savedEntries[0])
	suite.True(amounts[domain.RoleInventory][0].Equal(decimal.NewFromInt(200)))
	suite.True(amounts[domain.RoleVATReceivable][0].Equal(decimal.NewFromInt(30)))
	suite.True(amounts[domain.RoleAccountsPayable][1].Equal(decimal.NewFromInt(230)), "credit purchase settles against accounts payable")
	suite.True(savedEntries[0].TotalDebits().Equal(savedEntries[0].TotalCredits()))
	suite.mockRecordStore.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostSaleReturn_MirrorsOriginal() {
	ctx := context.Background()
	lineID := uuid.NewString()
	original := &domain.Sale{
		SaleID:         uuid.NewString(),
		OrganizationID: suite.organizationID,
		SaleDate:       time.Now().UTC().Add(-10 * 24 * time.Hour),
		Status:         domain.StatusPaid,
		PaymentMethod:  domain.PaymentCash,
		BaseSubtotal:   decimal.NewFromInt(1000),
		BaseTax:        decimal.NewFromInt(150),
		BaseGrandTotal: decimal.NewFromInt(1150),
		Valuation: domain.TransactionValuation{
			TransactionCurrency: "YER",
			DisplayAmount:       decimal.RequireFromString("416666.67"),
			BaseAmount:          decimal.NewFromInt(1000),
			ExchangeRateUsed:    decimal.RequireFromString("416.666667"),
		},
		Items: []domain.SaleItem{
			{LineID: lineID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100), CostPrice: decimal.NewFromInt(40)},
		},
	}
	req := dto.CreateSaleReturnRequest{
		OriginalSaleID: original.SaleID,
		ReturnDate:     time.Now().UTC(),
		PaymentMethod:  "CASH",
		Items: []dto.ReturnItemRequest{
			{OriginalLineID: lineID, Quantity: decimal.NewFromInt(5)},
		},
	}

	suite.mockRecordStore.On("FindSaleByID", ctx, original.SaleID).Return(original, nil).Once()
	suite.mockValuationSvc.On("ValidateReturnQuantities", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockValuationSvc.On("ValuateReturn", ctx, original.Valuation, decEq("500")).Return(&domain.TransactionValuation{
		TransactionCurrency: "YER",
		DisplayAmount:       decimal.RequireFromString("208333.33"),
		BaseAmount:          decimal.NewFromInt(500),
		ExchangeRateUsed:    original.Valuation.ExchangeRateUsed,
		ValuationDate:       time.Now().UTC(),
	}, nil).Once()
	suite.resolveAllRoles(ctx)

	var savedRet domain.SaleReturn
	var savedEntries []domain.JournalEntry
	suite.mockRecordStore.On("SaveSaleReturn", ctx, mock.AnythingOfType("domain.SaleReturn"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedRet = args.Get(1).(domain.SaleReturn)
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.PostSaleReturn(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Posted)

	// Half the sale: subtotal 500, proportional tax 75, cost 200.
	suite.True(savedRet.BaseSubtotal.Equal(decimal.NewFromInt(500)))
	suite.True(savedRet.BaseTax.Equal(decimal.NewFromInt(75)))
	suite.True(savedRet.BaseGrandTotal.Equal(decimal.NewFromInt(575)))
	suite.True(savedRet.BaseTotalCost.Equal(decimal.NewFromInt(200)))
	suite.True(savedRet.Valuation.ExchangeRateUsed.Equal(original.Valuation.ExchangeRateUsed), "return valued at the frozen sale rate")

	suite.Require().Len(savedEntries, 2)
	refund := lineAmounts(savedEntries[0])
	suite.True(refund[domain.RoleSalesRevenue][0].Equal(decimal.NewFromInt(500)))
	suite.True(refund[domain.RoleVATPayable][0].Equal(decimal.NewFromInt(75)))
	suite.True(refund[domain.RoleCash][1].Equal(decimal.NewFromInt(575)))
	cogs := lineAmounts(savedEntries[1])
	suite.True(cogs[domain.RoleInventory][0].Equal(decimal.NewFromInt(200)))
	suite.True(cogs[domain.RoleCOGS][1].Equal(decimal.NewFromInt(200)))
	suite.mockRecordStore.AssertExpectations(suite.T())
	suite.mockValuationSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostSaleReturn_OriginalNotFound() {
	ctx := context.Background()
	req := dto.CreateSaleReturnRequest{
		OriginalSaleID: "missing",
		ReturnDate:     time.Now().UTC(),
		PaymentMethod:  "CASH",
		Items:          []dto.ReturnItemRequest{{OriginalLineID: "line-1", Quantity: decimal.NewFromInt(1)}},
	}

	suite.mockRecordStore.On("FindSaleByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostSaleReturn(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOriginalNotFound)
}

func (suite *JournalServiceTestSuite) TestPostSaleReturn_ExcessiveQuantityRejected() {
	ctx := context.Background()
	original := &domain.Sale{
		SaleID:         "sale-1",
		OrganizationID: suite.organizationID,
		BaseSubtotal:   decimal.NewFromInt(100),
		Items: []domain.SaleItem{
			{LineID: "line-1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}
	req := dto.CreateSaleReturnRequest{
		OriginalSaleID: "sale-1",
		ReturnDate:     time.Now().UTC(),
		PaymentMethod:  "CASH",
		Items:          []dto.ReturnItemRequest{{OriginalLineID: "line-1", Quantity: decimal.NewFromInt(2)}},
	}

	suite.mockRecordStore.On("FindSaleByID", ctx, "sale-1").Return(original, nil).Once()
	suite.mockValuationSvc.On("ValidateReturnQuantities", mock.Anything, mock.Anything).
		Return(apperrors.ErrExcessiveReturnQuantity).Once()

	_, err := suite.service.PostSaleReturn(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExcessiveReturnQuantity)
	suite.mockRecordStore.AssertNotCalled(suite.T(), "SaveSaleReturn", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostPurchaseReturn_MirrorsOriginal() {
	ctx := context.Background()
	lineID := uuid.NewString()
	original := &domain.Purchase{
		PurchaseID:     uuid.NewString(),
		OrganizationID: suite.organizationID,
		Status:         domain.StatusPending,
		PaymentMethod:  domain.PaymentCredit,
		BaseSubtotal:   decimal.NewFromInt(200),
		BaseTax:        decimal.NewFromInt(30),
		BaseGrandTotal: decimal.NewFromInt(230),
		Valuation: domain.TransactionValuation{
			TransactionCurrency: "SAR",
			DisplayAmount:       decimal.NewFromInt(200),
			BaseAmount:          decimal.NewFromInt(200),
			ExchangeRateUsed:    decimal.NewFromInt(1),
		},
		Items: []domain.PurchaseItem{
			{LineID: lineID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(20)},
		},
	}
	req := dto.CreatePurchaseReturnRequest{
		OriginalPurchaseID: original.PurchaseID,
		ReturnDate:         time.Now().UTC(),
		PaymentMethod:      "CREDIT",
		Items:              []dto.ReturnItemRequest{{OriginalLineID: lineID, Quantity: decimal.NewFromInt(4)}},
	}

	suite.mockRecordStore.On("FindPurchaseByID", ctx, original.PurchaseID).Return(original, nil).Once()
	suite.mockValuationSvc.On("ValidateReturnQuantities", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockValuationSvc.On("ValuateReturn", ctx, original.Valuation, decEq("80")).Return(&domain.TransactionValuation{
		TransactionCurrency: "SAR",
		DisplayAmount:       decimal.NewFromInt(80),
		BaseAmount:          decimal.NewFromInt(80),
		ExchangeRateUsed:    decimal.NewFromInt(1),
		ValuationDate:       time.Now().UTC(),
	}, nil).Once()
	suite.resolveAllRoles(ctx)

	var savedEntries []domain.JournalEntry
	suite.mockRecordStore.On("SavePurchaseReturn", ctx, mock.AnythingOfType("domain.PurchaseReturn"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.PostPurchaseReturn(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Posted)

	suite.Require().Len(savedEntries, 1)
	amounts := lineAmounts(savedEntries[0])
	// 4 * 20 = 80, proportional tax 30*80/200 = 12.
	suite.True(amounts[domain.RoleAccountsPayable][0].Equal(decimal.NewFromInt(92)))
	suite.True(amounts[domain.RoleInventory][1].Equal(decimal.NewFromInt(80)))
	suite.True(amounts[domain.RoleVATReceivable][1].Equal(decimal.NewFromInt(12)))
	suite.mockRecordStore.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostVoucher_ReceiptInForeignCurrency() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		OrganizationID: suite.organizationID,
		VoucherType:    "RECEIPT",
		PaymentMethod:  "CASH",
		VoucherDate:    time.Now().UTC(),
		Amount:         decimal.NewFromInt(100000),
		CurrencyCode:   "YER",
		PartyID:        "cust-1",
	}

	suite.mockConversionSvc.On("ToBase", ctx, decEq("100000"), "YER").Return(&domain.ConversionResult{
		OriginalAmount:   decimal.NewFromInt(100000),
		OriginalCurrency: "YER",
		ConvertedAmount:  decimal.RequireFromString("240.00"),
		TargetCurrency:   "SAR",
		Rate:             decimal.RequireFromString("0.0024"),
		Date:             time.Now().UTC(),
	}, nil).Once()
	suite.resolveAllRoles(ctx)

	var savedVoucher domain.Voucher
	var savedEntries []domain.JournalEntry
	suite.mockRecordStore.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedVoucher = args.Get(1).(domain.Voucher)
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.PostVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Posted)

	suite.True(savedVoucher.Valuation.BaseAmount.Equal(decimal.RequireFromString("240.00")))
	// Rate stored base -> voucher currency: 1 / 0.0024.
	expectedRate := decimal.NewFromInt(1).Div(decimal.RequireFromString("0.0024"))
	suite.True(savedVoucher.Valuation.ExchangeRateUsed.Equal(expectedRate))

	suite.Require().Len(savedEntries, 1)
	amounts := lineAmounts(savedEntries[0])
	suite.True(amounts[domain.RoleCash][0].Equal(decimal.RequireFromString("240.00")))
	suite.True(amounts[domain.RoleAccountsReceivable][1].Equal(decimal.RequireFromString("240.00")))
	suite.mockRecordStore.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostVoucher_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		OrganizationID: suite.organizationID,
		VoucherType:    "RECEIPT",
		PaymentMethod:  "CASH",
		VoucherDate:    time.Now().UTC(),
		Amount:         decimal.Zero,
		PartyID:        "cust-1",
	}

	_, err := suite.service.PostVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConversionSvc.AssertNotCalled(suite.T(), "ToBase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostVoucher_UnknownType() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		OrganizationID: suite.organizationID,
		VoucherType:    "TRANSFER",
		PaymentMethod:  "CASH",
		VoucherDate:    time.Now().UTC(),
		Amount:         decimal.NewFromInt(10),
		PartyID:        "cust-1",
	}

	suite.mockConversionSvc.On("ToBase", ctx, mock.Anything, "SAR").Return(&domain.ConversionResult{
		OriginalCurrency: "SAR",
		ConvertedAmount:  decimal.NewFromInt(10),
		TargetCurrency:   "SAR",
		Rate:             decimal.NewFromInt(1),
	}, nil).Once()

	_, err := suite.service.PostVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownVoucherType)
	suite.mockRecordStore.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		JournalEntryID: entryID,
		EntryDate:      time.Now().UTC().Add(-24 * time.Hour),
		SourceType:     domain.SourceSale,
		SourceID:       "sale-1",
		CurrencyCode:   "SAR",
		Status:         domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: "l1", JournalEntryID: entryID, AccountID: "acct-cash", Role: domain.RoleCash, Debit: decimal.NewFromInt(115), Credit: decimal.Zero},
			{LineID: "l2", JournalEntryID: entryID, AccountID: "acct-rev", Role: domain.RoleSalesRevenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(115)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()

	var savedReversal domain.JournalEntry
	suite.mockJournalRepo.On("SaveReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), entryID, suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(1).(domain.JournalEntry)
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, entryID, "entered twice", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Require().NotNil(reversal.ReversesEntryID)
	suite.Equal(entryID, *reversal.ReversesEntryID)
	suite.Equal(domain.Posted, reversal.Status)

	amounts := lineAmounts(savedReversal)
	suite.True(amounts[domain.RoleCash][1].Equal(decimal.NewFromInt(115)), "debit and credit swapped")
	suite.True(amounts[domain.RoleSalesRevenue][0].Equal(decimal.NewFromInt(115)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		JournalEntryID: entryID,
		Status:         domain.Reversed,
		Lines: []domain.JournalLine{
			{Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: decimal.NewFromInt(10)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, "dup", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntriesBySource() {
	ctx := context.Background()
	entries := []domain.JournalEntry{{JournalEntryID: "e1"}, {JournalEntryID: "e2"}}

	suite.mockJournalRepo.On("ListEntriesBySource", ctx, domain.SourceSale, "sale-1").Return(entries, nil).Once()

	got, err := suite.service.ListEntriesBySource(ctx, domain.SourceSale, "sale-1")

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
