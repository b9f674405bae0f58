package repositories

import (
	"context"
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
)

// TransactionWriter persists finalized business transactions together with
// the journal entries produced for them. Each Save call is one atomic unit:
// either the transaction, its valuation, and every given entry are durably
// recorded, or nothing is. An empty entries slice records the business
// transaction alone (journal posting deferred as a soft failure).
type TransactionWriter interface {
	SaveSale(ctx context.Context, sale domain.Sale, entries []domain.JournalEntry) error
	SavePurchase(ctx context.Context, purchase domain.Purchase, entries []domain.JournalEntry) error
	SaveSaleReturn(ctx context.Context, ret domain.SaleReturn, entries []domain.JournalEntry) error
	SavePurchaseReturn(ctx context.Context, ret domain.PurchaseReturn, entries []domain.JournalEntry) error
	SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.JournalEntry) error
}

// TransactionReader defines ordered retrieval of finalized transactions.
type TransactionReader interface {
	// FindSaleByID retrieves a sale with its items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindPurchaseByID retrieves a purchase with its items.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListSalesByDateRange retrieves sales ordered by sale date.
	ListSalesByDateRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Sale, error)

	// ListPurchasesByDateRange retrieves purchases ordered by purchase date.
	ListPurchasesByDateRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Purchase, error)
}

// RecordStoreFacade combines transaction persistence and retrieval.
type RecordStoreFacade interface {
	TransactionWriter
	TransactionReader
}

// RecordStoreWithTx extends RecordStoreFacade with transaction capabilities.
type RecordStoreWithTx interface {
	RecordStoreFacade
	TransactionManager
}
