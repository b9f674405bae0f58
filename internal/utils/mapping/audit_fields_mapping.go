package mapping

import (
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/sahab-erp/sahab-backend/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelValuation converts a domain TransactionValuation to a model Valuation
func ToModelValuation(d domain.TransactionValuation) models.Valuation {
	return models.Valuation{
		TransactionCurrency: d.TransactionCurrency,
		DisplayAmount:       d.DisplayAmount,
		BaseAmount:          d.BaseAmount,
		ExchangeRateUsed:    d.ExchangeRateUsed,
		ValuationDate:       d.ValuationDate,
	}
}

// ToDomainValuation converts a model Valuation to a domain TransactionValuation
func ToDomainValuation(m models.Valuation) domain.TransactionValuation {
	return domain.TransactionValuation{
		TransactionCurrency: m.TransactionCurrency,
		DisplayAmount:       m.DisplayAmount,
		BaseAmount:          m.BaseAmount,
		ExchangeRateUsed:    m.ExchangeRateUsed,
		ValuationDate:       m.ValuationDate,
	}
}
