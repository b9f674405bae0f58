package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	"github.com/sahab-erp/sahab-backend/internal/models"
	"github.com/sahab-erp/sahab-backend/internal/utils/mapping"
)

// PgxRecordStore persists finalized business transactions together with the
// journal entries constructed for them. Every Save method runs one database
// transaction: the business row, its item rows, and every journal entry
// commit together or not at all.
type PgxRecordStore struct {
	BaseRepository
}

// newPgxRecordStore creates a new record store.
func newPgxRecordStore(pool *pgxpool.Pool) portsrepo.RecordStoreFacade {
	return &PgxRecordStore{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RecordStoreFacade = (*PgxRecordStore)(nil)

func (r *PgxRecordStore) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertEntriesTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	for _, entry := range entries {
		if err := insertJournalEntryTx(ctx, tx, entry); err != nil {
			return err
		}
	}
	return nil
}

const saleColumns = `sale_id, organization_id, sale_date, status, payment_method, base_subtotal, base_tax, base_grand_total, txn_currency_code, display_amount, base_amount, exchange_rate_used, valuation_date, created_at, created_by, last_updated_at, last_updated_by`

// SaveSale persists the sale, its items, and its journal entries atomically.
func (r *PgxRecordStore) SaveSale(ctx context.Context, sale domain.Sale, entries []domain.JournalEntry) error {
	modelSale := mapping.ToModelSale(sale)
	modelItems := mapping.ToModelSaleItems(sale.SaleID, sale.Items)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		saleQuery := `
			INSERT INTO sales (` + saleColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
		`
		_, err := tx.Exec(ctx, saleQuery,
			modelSale.SaleID,
			modelSale.OrganizationID,
			modelSale.SaleDate,
			modelSale.Status,
			modelSale.PaymentMethod,
			modelSale.BaseSubtotal,
			modelSale.BaseTax,
			modelSale.BaseGrandTotal,
			modelSale.TransactionCurrency,
			modelSale.DisplayAmount,
			modelSale.BaseAmount,
			modelSale.ExchangeRateUsed,
			modelSale.ValuationDate,
			modelSale.CreatedAt,
			modelSale.CreatedBy,
			modelSale.LastUpdatedAt,
			modelSale.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale %s: %w", modelSale.SaleID, err)
		}

		batch := &pgx.Batch{}
		itemQuery := `
			INSERT INTO sale_items (line_id, sale_id, product_id, quantity, unit_price, cost_price)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, item := range modelItems {
			batch.Queue(itemQuery, item.LineID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.CostPrice)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert items for sale %s: %w", modelSale.SaleID, err)
		}

		return insertEntriesTx(ctx, tx, entries)
	})
}

const purchaseColumns = `purchase_id, organization_id, purchase_date, status, payment_method, base_subtotal, base_tax, base_grand_total, txn_currency_code, display_amount, base_amount, exchange_rate_used, valuation_date, created_at, created_by, last_updated_at, last_updated_by`

// SavePurchase persists the purchase, its items, and its journal entries atomically.
func (r *PgxRecordStore) SavePurchase(ctx context.Context, purchase domain.Purchase, entries []domain.JournalEntry) error {
	modelPurchase := mapping.ToModelPurchase(purchase)
	modelItems := mapping.ToModelPurchaseItems(purchase.PurchaseID, purchase.Items)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		purchaseQuery := `
			INSERT INTO purchases (` + purchaseColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
		`
		_, err := tx.Exec(ctx, purchaseQuery,
			modelPurchase.PurchaseID,
			modelPurchase.OrganizationID,
			modelPurchase.PurchaseDate,
			modelPurchase.Status,
			modelPurchase.PaymentMethod,
			modelPurchase.BaseSubtotal,
			modelPurchase.BaseTax,
			modelPurchase.BaseGrandTotal,
			modelPurchase.TransactionCurrency,
			modelPurchase.DisplayAmount,
			modelPurchase.BaseAmount,
			modelPurchase.ExchangeRateUsed,
			modelPurchase.ValuationDate,
			modelPurchase.CreatedAt,
			modelPurchase.CreatedBy,
			modelPurchase.LastUpdatedAt,
			modelPurchase.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert purchase %s: %w", modelPurchase.PurchaseID, err)
		}

		batch := &pgx.Batch{}
		itemQuery := `
			INSERT INTO purchase_items (line_id, purchase_id, product_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5);
		`
		for _, item := range modelItems {
			batch.Queue(itemQuery, item.LineID, item.PurchaseID, item.ProductID, item.Quantity, item.UnitCost)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert items for purchase %s: %w", modelPurchase.PurchaseID, err)
		}

		return insertEntriesTx(ctx, tx, entries)
	})
}

// newReturnItemIDs mints row IDs for return items; domain return items carry
// no own identity.
func newReturnItemIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return ids
}

func insertReturnItemsTx(ctx context.Context, tx pgx.Tx, returnID string, items []domain.ReturnItem, itemIDs []string) error {
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO return_items (return_item_id, return_id, original_line_id, quantity)
		VALUES ($1, $2, $3, $4);
	`
	for i, item := range items {
		batch.Queue(itemQuery, itemIDs[i], returnID, item.OriginalLineID, item.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items for return %s: %w", returnID, err)
	}
	return nil
}

// SaveSaleReturn persists the return, its items, and its journal entries atomically.
func (r *PgxRecordStore) SaveSaleReturn(ctx context.Context, ret domain.SaleReturn, entries []domain.JournalEntry) error {
	modelRet := mapping.ToModelSaleReturn(ret)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO sale_returns (return_id, original_sale_id, organization_id, return_date, payment_method, base_subtotal, base_tax, base_grand_total, base_total_cost, txn_currency_code, display_amount, base_amount, exchange_rate_used, valuation_date, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
		`
		_, err := tx.Exec(ctx, query,
			modelRet.ReturnID,
			modelRet.OriginalSaleID,
			modelRet.OrganizationID,
			modelRet.ReturnDate,
			modelRet.PaymentMethod,
			modelRet.BaseSubtotal,
			modelRet.BaseTax,
			modelRet.BaseGrandTotal,
			modelRet.BaseTotalCost,
			modelRet.TransactionCurrency,
			modelRet.DisplayAmount,
			modelRet.BaseAmount,
			modelRet.ExchangeRateUsed,
			modelRet.ValuationDate,
			modelRet.CreatedAt,
			modelRet.CreatedBy,
			modelRet.LastUpdatedAt,
			modelRet.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale return %s: %w", modelRet.ReturnID, err)
		}

		itemIDs := newReturnItemIDs(len(ret.Items))
		if err := insertReturnItemsTx(ctx, tx, ret.ReturnID, ret.Items, itemIDs); err != nil {
			return err
		}

		return insertEntriesTx(ctx, tx, entries)
	})
}

// SavePurchaseReturn persists the return, its items, and its journal entries atomically.
func (r *PgxRecordStore) SavePurchaseReturn(ctx context.Context, ret domain.PurchaseReturn, entries []domain.JournalEntry) error {
	modelRet := mapping.ToModelPurchaseReturn(ret)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO purchase_returns (return_id, original_purchase_id, organization_id, return_date, payment_method, base_subtotal, base_tax, base_grand_total, txn_currency_code, display_amount, base_amount, exchange_rate_used, valuation_date, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
		`
		_, err := tx.Exec(ctx, query,
			modelRet.ReturnID,
			modelRet.OriginalPurchaseID,
			modelRet.OrganizationID,
			modelRet.ReturnDate,
			modelRet.PaymentMethod,
			modelRet.BaseSubtotal,
			modelRet.BaseTax,
			modelRet.BaseGrandTotal,
			modelRet.TransactionCurrency,
			modelRet.DisplayAmount,
			modelRet.BaseAmount,
			modelRet.ExchangeRateUsed,
			modelRet.ValuationDate,
			modelRet.CreatedAt,
			modelRet.CreatedBy,
			modelRet.LastUpdatedAt,
			modelRet.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert purchase return %s: %w", modelRet.ReturnID, err)
		}

		itemIDs := newReturnItemIDs(len(ret.Items))
		if err := insertReturnItemsTx(ctx, tx, ret.ReturnID, ret.Items, itemIDs); err != nil {
			return err
		}

		return insertEntriesTx(ctx, tx, entries)
	})
}

// SaveVoucher persists the voucher and its journal entries atomically.
func (r *PgxRecordStore) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.JournalEntry) error {
	modelVoucher := mapping.ToModelVoucher(voucher)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO vouchers (voucher_id, organization_id, voucher_type, payment_method, voucher_date, party_id, notes, txn_currency_code, display_amount, base_amount, exchange_rate_used, valuation_date, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
		`
		_, err := tx.Exec(ctx, query,
			modelVoucher.VoucherID,
			modelVoucher.OrganizationID,
			modelVoucher.VoucherType,
			modelVoucher.PaymentMethod,
			modelVoucher.VoucherDate,
			modelVoucher.PartyID,
			modelVoucher.Notes,
			modelVoucher.TransactionCurrency,
			modelVoucher.DisplayAmount,
			modelVoucher.BaseAmount,
			modelVoucher.ExchangeRateUsed,
			modelVoucher.ValuationDate,
			modelVoucher.CreatedAt,
			modelVoucher.CreatedBy,
			modelVoucher.LastUpdatedAt,
			modelVoucher.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert voucher %s: %w", modelVoucher.VoucherID, err)
		}

		return insertEntriesTx(ctx, tx, entries)
	})
}

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.OrganizationID,
		&m.SaleDate,
		&m.Status,
		&m.PaymentMethod,
		&m.BaseSubtotal,
		&m.BaseTax,
		&m.BaseGrandTotal,
		&m.TransactionCurrency,
		&m.DisplayAmount,
		&m.BaseAmount,
		&m.ExchangeRateUsed,
		&m.ValuationDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPurchase(row pgx.Row) (models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.OrganizationID,
		&m.PurchaseDate,
		&m.Status,
		&m.PaymentMethod,
		&m.BaseSubtotal,
		&m.BaseTax,
		&m.BaseGrandTotal,
		&m.TransactionCurrency,
		&m.DisplayAmount,
		&m.BaseAmount,
		&m.ExchangeRateUsed,
		&m.ValuationDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindSaleByID retrieves a sale with its items.
func (r *PgxRecordStore) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE sale_id = $1;
	`
	modelSale, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	itemQuery := `
		SELECT line_id, sale_id, product_id, quantity, unit_price, cost_price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for sale %s: %w", saleID, err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SaleItem, error) {
		var item models.SaleItem
		err := row.Scan(&item.LineID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CostPrice)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items for sale %s: %w", saleID, err)
	}

	domainSale := mapping.ToDomainSale(modelSale, modelItems)
	return &domainSale, nil
}

// FindPurchaseByID retrieves a purchase with its items.
func (r *PgxRecordStore) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE purchase_id = $1;
	`
	modelPurchase, err := scanPurchase(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}

	itemQuery := `
		SELECT line_id, purchase_id, product_id, quantity, unit_cost
		FROM purchase_items
		WHERE purchase_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PurchaseItem, error) {
		var item models.PurchaseItem
		err := row.Scan(&item.LineID, &item.PurchaseID, &item.ProductID, &item.Quantity, &item.UnitCost)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items for purchase %s: %w", purchaseID, err)
	}

	domainPurchase := mapping.ToDomainPurchase(modelPurchase, modelItems)
	return &domainPurchase, nil
}

// ListSalesByDateRange retrieves sales ordered by sale date. Items are not
// loaded; list consumers only need headers and valuations.
func (r *PgxRecordStore) ListSalesByDateRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE organization_id = $1 AND sale_date >= $2 AND sale_date <= $3
		ORDER BY sale_date, sale_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	modelSales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Sale, error) {
		return scanSale(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}

	domainSales := make([]domain.Sale, len(modelSales))
	for i, m := range modelSales {
		domainSales[i] = mapping.ToDomainSale(m, nil)
	}
	return domainSales, nil
}

// ListPurchasesByDateRange retrieves purchases ordered by purchase date.
func (r *PgxRecordStore) ListPurchasesByDateRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE organization_id = $1 AND purchase_date >= $2 AND purchase_date <= $3
		ORDER BY purchase_date, purchase_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	modelPurchases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Purchase, error) {
		return scanPurchase(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchases: %w", err)
	}

	domainPurchases := make([]domain.Purchase, len(modelPurchases))
	for i, m := range modelPurchases {
		domainPurchases[i] = mapping.ToDomainPurchase(m, nil)
	}
	return domainPurchases, nil
}
