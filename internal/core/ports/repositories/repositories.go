package repositories

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	RateRepo         ExchangeRateRepositoryFacade
	RecordStore      RecordStoreFacade
	JournalRepo      JournalRepositoryFacade
	AccountDirectory AccountDirectory
}
