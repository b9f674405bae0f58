package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	rateRepo := newPgxExchangeRateRepository(dbPool)
	recordStore := newPgxRecordStore(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	accountDirectory := newPgxAccountDirectory(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:     currencyRepo,
		RateRepo:         rateRepo,
		RecordStore:      recordStore,
		JournalRepo:      journalRepo,
		AccountDirectory: accountDirectory,
	}
}
