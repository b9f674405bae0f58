package services

import (
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
)

// ContainerConfig carries the engine policy knobs wired from configuration.
type ContainerConfig struct {
	BaseCurrency   string
	StaleAfterDays int
}

// NewContainer wires every service in dependency order and returns the
// populated container.
func NewContainer(repos *portsrepo.RepositoryProvider, notifier portssvc.NotificationGateway, cfg ContainerConfig) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	rateSvc := NewRateService(repos.RateRepo, currencySvc, notifier, cfg.StaleAfterDays)
	conversionSvc := NewConversionService(rateSvc, currencySvc, cfg.BaseCurrency)
	valuationSvc := NewValuationService(conversionSvc, currencySvc)
	journalSvc := NewJournalService(repos.RecordStore, repos.JournalRepo, repos.AccountDirectory, valuationSvc, conversionSvc, notifier)
	fxSvc := NewFxService(repos.RecordStore, rateSvc, conversionSvc)

	return &portssvc.ServiceContainer{
		Currency:   currencySvc,
		Rate:       rateSvc,
		Conversion: conversionSvc,
		Valuation:  valuationSvc,
		Journal:    journalSvc,
		Fx:         fxSvc,
	}
}
