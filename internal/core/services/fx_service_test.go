package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/core/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
)

type FxServiceTestSuite struct {
	suite.Suite
	mockRecordStore   *MockRecordStore
	mockRateSvc       *MockRateService
	mockConversionSvc *MockConversionService
	service           portssvc.FxSvcFacade
	organizationID    string
	from              time.Time
	to                time.Time
}

func (suite *FxServiceTestSuite) SetupTest() {
	suite.mockRecordStore = new(MockRecordStore)
	suite.mockRateSvc = new(MockRateService)
	suite.mockConversionSvc = new(MockConversionService)
	suite.service = services.NewFxService(suite.mockRecordStore, suite.mockRateSvc, suite.mockConversionSvc)
	suite.organizationID = "org-1"
	suite.to = time.Now().UTC()
	suite.from = suite.to.Add(-30 * 24 * time.Hour)

	suite.mockConversionSvc.On("BaseCurrency").Return("SAR").Maybe()
}

func (suite *FxServiceTestSuite) query() dto.FxExposureQuery {
	return dto.FxExposureQuery{
		OrganizationID: suite.organizationID,
		From:           suite.from,
		To:             suite.to,
	}
}

// yerSale is a sale of 416,666.67 YER frozen at rate 0.0024 (base 1,000.00 SAR).
func (suite *FxServiceTestSuite) yerSale(status domain.SettlementStatus) domain.Sale {
	return domain.Sale{
		SaleID:         "sale-1",
		OrganizationID: suite.organizationID,
		Status:         status,
		Valuation: domain.TransactionValuation{
			TransactionCurrency: "YER",
			DisplayAmount:       decimal.RequireFromString("416666.67"),
			BaseAmount:          decimal.RequireFromString("1000.00"),
			ExchangeRateUsed:    decimal.RequireFromString("416.666667"),
		},
	}
}

func (suite *FxServiceTestSuite) TestComputeExposure_UnrealizedLoss() {
	ctx := context.Background()

	suite.mockRecordStore.On("ListSalesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Sale{suite.yerSale(domain.StatusPending)}, nil).Once()
	suite.mockRecordStore.On("ListPurchasesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Purchase{}, nil).Once()
	// The rial weakened: 0.0024 -> 0.0022.
	suite.mockRateSvc.On("CurrentRate", ctx, "YER", "SAR").
		Return(decimal.RequireFromString("0.0022"), nil).Once()

	report, err := suite.service.ComputeExposure(ctx, suite.query())

	suite.Require().NoError(err)
	suite.Require().Len(report.Records, 1)

	rec := report.Records[0]
	// 416666.67 * 0.0022 = 916.67; loss of 83.33 against the frozen 1000.00.
	suite.True(rec.CurrentBaseAmount.Equal(decimal.RequireFromString("916.67")))
	suite.True(rec.GainLoss.Equal(decimal.RequireFromString("-83.33")))
	suite.Equal(domain.FxUnrealized, rec.Status)

	suite.True(report.Totals.Loss.Equal(decimal.RequireFromString("83.33")))
	suite.True(report.Totals.Net.Equal(decimal.RequireFromString("-83.33")))
	suite.True(report.Totals.Unrealized.Equal(decimal.RequireFromString("-83.33")))
	suite.True(report.Totals.Realized.IsZero())

	perCurrency, ok := report.ByCurrency["YER"]
	suite.Require().True(ok)
	suite.True(perCurrency.Net.Equal(decimal.RequireFromString("-83.33")))
	suite.mockRecordStore.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *FxServiceTestSuite) TestComputeExposure_PaidSaleIsRealized() {
	ctx := context.Background()

	suite.mockRecordStore.On("ListSalesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Sale{suite.yerSale(domain.StatusPaid)}, nil).Once()
	suite.mockRecordStore.On("ListPurchasesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Purchase{}, nil).Once()
	suite.mockRateSvc.On("CurrentRate", ctx, "YER", "SAR").
		Return(decimal.RequireFromString("0.0026"), nil).Once()

	report, err := suite.service.ComputeExposure(ctx, suite.query())

	suite.Require().NoError(err)
	suite.Require().Len(report.Records, 1)
	suite.Equal(domain.FxRealized, report.Records[0].Status)
	// 416666.67 * 0.0026 = 1083.33, a gain of 83.33.
	suite.True(report.Totals.Realized.Equal(decimal.RequireFromString("83.33")))
	suite.True(report.Totals.Gain.Equal(decimal.RequireFromString("83.33")))
}

func (suite *FxServiceTestSuite) TestComputeExposure_BaseCurrencySkipped() {
	ctx := context.Background()
	sarSale := domain.Sale{
		SaleID: "sale-2",
		Valuation: domain.TransactionValuation{
			TransactionCurrency: "SAR",
			DisplayAmount:       decimal.NewFromInt(500),
			BaseAmount:          decimal.NewFromInt(500),
			ExchangeRateUsed:    decimal.NewFromInt(1),
		},
	}

	suite.mockRecordStore.On("ListSalesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Sale{sarSale}, nil).Once()
	suite.mockRecordStore.On("ListPurchasesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Purchase{}, nil).Once()

	report, err := suite.service.ComputeExposure(ctx, suite.query())

	suite.Require().NoError(err)
	suite.Empty(report.Records)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "CurrentRate", ctx, "SAR", "SAR")
}

func (suite *FxServiceTestSuite) TestComputeExposure_ImmaterialMovementSkipped() {
	ctx := context.Background()

	suite.mockRecordStore.On("ListSalesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Sale{suite.yerSale(domain.StatusPending)}, nil).Once()
	suite.mockRecordStore.On("ListPurchasesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Purchase{}, nil).Once()
	// Unchanged rate: repricing reproduces the frozen base amount.
	suite.mockRateSvc.On("CurrentRate", ctx, "YER", "SAR").
		Return(decimal.RequireFromString("0.0024"), nil).Once()

	report, err := suite.service.ComputeExposure(ctx, suite.query())

	suite.Require().NoError(err)
	suite.Empty(report.Records)
	suite.True(report.Totals.Net.IsZero())
}

func (suite *FxServiceTestSuite) TestComputeExposure_MissingCurrentRateSkipsRecord() {
	ctx := context.Background()

	suite.mockRecordStore.On("ListSalesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Sale{suite.yerSale(domain.StatusPending)}, nil).Once()
	suite.mockRecordStore.On("ListPurchasesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Purchase{}, nil).Once()
	suite.mockRateSvc.On("CurrentRate", ctx, "YER", "SAR").
		Return(decimal.Zero, apperrors.ErrRateNotFound).Once()

	report, err := suite.service.ComputeExposure(ctx, suite.query())

	suite.Require().NoError(err, "a missing current rate must not fail the whole report")
	suite.Empty(report.Records)
}

func (suite *FxServiceTestSuite) TestComputeExposure_StatusFilter() {
	ctx := context.Background()
	purchase := domain.Purchase{
		PurchaseID: "purchase-1",
		Status:     domain.StatusPaid,
		Valuation: domain.TransactionValuation{
			TransactionCurrency: "YER",
			DisplayAmount:       decimal.RequireFromString("100000.00"),
			BaseAmount:          decimal.RequireFromString("240.00"),
			ExchangeRateUsed:    decimal.RequireFromString("416.666667"),
		},
	}

	suite.mockRecordStore.On("ListSalesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Sale{suite.yerSale(domain.StatusPending)}, nil).Once()
	suite.mockRecordStore.On("ListPurchasesByDateRange", ctx, suite.organizationID, suite.from, suite.to).
		Return([]domain.Purchase{purchase}, nil).Once()
	suite.mockRateSvc.On("CurrentRate", ctx, "YER", "SAR").
		Return(decimal.RequireFromString("0.0022"), nil).Twice()

	query := suite.query()
	query.Status = domain.FxRealized
	report, err := suite.service.ComputeExposure(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(report.Records, 1)
	suite.Equal("purchase-1", report.Records[0].SourceID)
	suite.Equal(domain.FxRealized, report.Records[0].Status)
}

func (suite *FxServiceTestSuite) TestComputeExposure_InvalidRange() {
	ctx := context.Background()
	query := suite.query()
	query.From, query.To = query.To, query.From

	_, err := suite.service.ComputeExposure(ctx, query)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRecordStore.AssertNotCalled(suite.T(), "ListSalesByDateRange", ctx, suite.organizationID, query.From, query.To)
}

func TestFxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FxServiceTestSuite))
}
