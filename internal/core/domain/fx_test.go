package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
)

func TestFxTotals_Accumulate(t *testing.T) {
	var totals domain.FxTotals

	totals.Accumulate(domain.FxExposureRecord{
		GainLoss: decimal.RequireFromString("83.33"),
		Status:   domain.FxRealized,
	})
	totals.Accumulate(domain.FxExposureRecord{
		GainLoss: decimal.RequireFromString("-20.00"),
		Status:   domain.FxUnrealized,
	})
	totals.Accumulate(domain.FxExposureRecord{
		GainLoss: decimal.RequireFromString("-3.33"),
		Status:   domain.FxRealized,
	})

	assert.True(t, totals.Gain.Equal(decimal.RequireFromString("83.33")))
	assert.True(t, totals.Loss.Equal(decimal.RequireFromString("23.33")), "losses accumulate as magnitudes")
	assert.True(t, totals.Net.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, totals.Realized.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, totals.Unrealized.Equal(decimal.RequireFromString("-20.00")))
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{Debit: decimal.NewFromInt(115), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			{Debit: decimal.Zero, Credit: decimal.NewFromInt(15)},
		},
	}

	assert.True(t, entry.TotalDebits().Equal(decimal.NewFromInt(115)))
	assert.True(t, entry.TotalCredits().Equal(decimal.NewFromInt(115)))
}
