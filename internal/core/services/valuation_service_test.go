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
)

type ValuationServiceTestSuite struct {
	suite.Suite
	mockConversionSvc *MockConversionService
	mockCurrencySvc   *MockCurrencyService
	service           portssvc.ValuationSvcFacade
}

func (suite *ValuationServiceTestSuite) SetupTest() {
	suite.mockConversionSvc = new(MockConversionService)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewValuationService(suite.mockConversionSvc, suite.mockCurrencySvc)
}

func (suite *ValuationServiceTestSuite) TestValuate_FreezesConversion() {
	ctx := context.Background()
	subtotal := decimal.NewFromInt(1000)
	rate := decimal.RequireFromString("416.666667")

	suite.mockConversionSvc.On("FromBase", ctx, subtotal, "YER").Return(&domain.ConversionResult{
		OriginalAmount:   subtotal,
		OriginalCurrency: "SAR",
		ConvertedAmount:  decimal.RequireFromString("416666.67"),
		TargetCurrency:   "YER",
		Rate:             rate,
		Date:             time.Now().UTC(),
	}, nil).Once()

	valuation, err := suite.service.Valuate(ctx, subtotal, "YER")

	suite.Require().NoError(err)
	suite.Equal("YER", valuation.TransactionCurrency)
	suite.True(valuation.DisplayAmount.Equal(decimal.RequireFromString("416666.67")))
	suite.True(valuation.BaseAmount.Equal(subtotal))
	suite.True(valuation.ExchangeRateUsed.Equal(rate))
	suite.False(valuation.ValuationDate.IsZero())
	suite.mockConversionSvc.AssertExpectations(suite.T())
}

func (suite *ValuationServiceTestSuite) TestValuate_ConversionFailureIsHard() {
	ctx := context.Background()

	suite.mockConversionSvc.On("FromBase", ctx, decimal.NewFromInt(100), "XYZ").Return(nil, apperrors.ErrRateNotFound).Once()

	_, err := suite.service.Valuate(ctx, decimal.NewFromInt(100), "XYZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
}

func (suite *ValuationServiceTestSuite) TestValuateReturn_ReusesFrozenRate() {
	ctx := context.Background()
	original := domain.TransactionValuation{
		TransactionCurrency: "YER",
		DisplayAmount:       decimal.RequireFromString("416666.67"),
		BaseAmount:          decimal.NewFromInt(1000),
		ExchangeRateUsed:    decimal.RequireFromString("416.666667"),
		ValuationDate:       time.Now().UTC().Add(-30 * 24 * time.Hour),
	}
	yer := &domain.Currency{CurrencyCode: "YER", Precision: 2, IsActive: true}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "YER").Return(yer, nil).Once()

	valuation, err := suite.service.ValuateReturn(ctx, original, decimal.NewFromInt(500))

	suite.Require().NoError(err)
	// 500 * 416.666667 = 208333.33, at the frozen rate, not today's.
	suite.True(valuation.DisplayAmount.Equal(decimal.RequireFromString("208333.33")))
	suite.True(valuation.BaseAmount.Equal(decimal.NewFromInt(500)))
	suite.True(valuation.ExchangeRateUsed.Equal(original.ExchangeRateUsed))
	suite.Equal("YER", valuation.TransactionCurrency)
}

func (suite *ValuationServiceTestSuite) TestValuateReturn_NegativeAmount() {
	ctx := context.Background()

	_, err := suite.service.ValuateReturn(ctx, domain.TransactionValuation{}, decimal.NewFromInt(-1))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ValuationServiceTestSuite) TestValuateReturn_UnknownCurrencyUsesDefaultPrecision() {
	ctx := context.Background()
	original := domain.TransactionValuation{
		TransactionCurrency: "YER",
		ExchangeRateUsed:    decimal.RequireFromString("416.666667"),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "YER").Return(nil, apperrors.ErrInvalidCurrency).Once()

	valuation, err := suite.service.ValuateReturn(ctx, original, decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.True(valuation.DisplayAmount.Equal(decimal.RequireFromString("41666.67")))
}

func (suite *ValuationServiceTestSuite) TestValidateReturnQuantities_OK() {
	original := map[string]decimal.Decimal{
		"line-1": decimal.NewFromInt(10),
		"line-2": decimal.NewFromInt(5),
	}
	returned := []domain.ReturnItem{
		{OriginalLineID: "line-1", Quantity: decimal.NewFromInt(10)},
		{OriginalLineID: "line-2", Quantity: decimal.NewFromInt(1)},
	}

	suite.NoError(suite.service.ValidateReturnQuantities(original, returned))
}

func (suite *ValuationServiceTestSuite) TestValidateReturnQuantities_Excess() {
	original := map[string]decimal.Decimal{"line-1": decimal.NewFromInt(10)}
	returned := []domain.ReturnItem{
		{OriginalLineID: "line-1", Quantity: decimal.NewFromInt(11)},
	}

	err := suite.service.ValidateReturnQuantities(original, returned)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExcessiveReturnQuantity)
}

func (suite *ValuationServiceTestSuite) TestValidateReturnQuantities_UnknownLine() {
	original := map[string]decimal.Decimal{"line-1": decimal.NewFromInt(10)}
	returned := []domain.ReturnItem{
		{OriginalLineID: "line-9", Quantity: decimal.NewFromInt(1)},
	}

	err := suite.service.ValidateReturnQuantities(original, returned)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExcessiveReturnQuantity)
}

func (suite *ValuationServiceTestSuite) TestValidateReturnQuantities_NonPositive() {
	original := map[string]decimal.Decimal{"line-1": decimal.NewFromInt(10)}
	returned := []domain.ReturnItem{
		{OriginalLineID: "line-1", Quantity: decimal.Zero},
	}

	err := suite.service.ValidateReturnQuantities(original, returned)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ValuationServiceTestSuite) TestValidateReturnQuantities_Empty() {
	err := suite.service.ValidateReturnQuantities(map[string]decimal.Decimal{}, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestValuationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ValuationServiceTestSuite))
}
