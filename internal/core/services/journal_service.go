package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/sahab-erp/sahab-backend/internal/middleware"
	"github.com/sahab-erp/sahab-backend/internal/utils"
	"github.com/sahab-erp/sahab-backend/internal/utils/accounting"
)

var (
	ErrAlreadyReversed    = errors.New("journal entry is already reversed")
	ErrOriginalNotFound   = errors.New("originating transaction not found")
	ErrNothingToReturn    = errors.New("return amounts to zero")
	ErrUnknownVoucherType = errors.New("unknown voucher type")
)

// journalService is the journal construction engine: it valuates finalized
// business transactions, builds balanced journal entries from semantic
// account roles, and commits transaction plus entries as one atomic unit.
type journalService struct {
	recordStore   portsrepo.RecordStoreFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	accountDir    portsrepo.AccountDirectory
	valuationSvc  portssvc.ValuationSvcFacade
	conversionSvc portssvc.ConversionSvcFacade
	notifier      portssvc.NotificationGateway
	now           func() time.Time
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	recordStore portsrepo.RecordStoreFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountDir portsrepo.AccountDirectory,
	valuationSvc portssvc.ValuationSvcFacade,
	conversionSvc portssvc.ConversionSvcFacade,
	notifier portssvc.NotificationGateway,
) portssvc.JournalSvcFacade {
	return &journalService{
		recordStore:   recordStore,
		journalRepo:   journalRepo,
		accountDir:    accountDir,
		valuationSvc:  valuationSvc,
		conversionSvc: conversionSvc,
		notifier:      notifier,
		now:           time.Now,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// settlementRole maps a payment method to the account role the money moves
// through. Credit means "on account" (receivable or payable side).
func settlementRole(method domain.PaymentMethod, onAccount domain.AccountRole) domain.AccountRole {
	switch method {
	case domain.PaymentCash:
		return domain.RoleCash
	case domain.PaymentBank:
		return domain.RoleBank
	default:
		return onAccount
	}
}

// buildEntry assembles a journal entry in the base currency with fresh
// identifiers for the entry and every line.
func (s *journalService) buildEntry(entryDate time.Time, sourceType domain.SourceType, sourceID, description string, lines []domain.JournalLine, creatorUserID string) domain.JournalEntry {
	now := s.now().UTC()
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].JournalEntryID = entryID
	}
	return domain.JournalEntry{
		JournalEntryID: entryID,
		EntryDate:      entryDate,
		SourceType:     sourceType,
		SourceID:       sourceID,
		CurrencyCode:   s.conversionSvc.BaseCurrency(),
		Description:    description,
		Status:         domain.Posted,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

// resolveAndValidate resolves every line's role to a concrete account and
// re-checks the balance invariant on each entry. Entries are all-or-nothing:
// the first unresolved role or unbalanced entry rejects the whole set.
func (s *journalService) resolveAndValidate(ctx context.Context, organizationID string, entries []domain.JournalEntry) error {
	for ei := range entries {
		for li := range entries[ei].Lines {
			accountID, err := s.accountDir.ResolveAccount(ctx, entries[ei].Lines[li].Role, organizationID)
			if err != nil {
				return err
			}
			entries[ei].Lines[li].AccountID = accountID
		}
		if err := accounting.ValidateEntryBalance(&entries[ei]); err != nil {
			return err
		}
	}
	return nil
}

// postingOutcome decides between hard failure, soft failure (business
// transaction commits without entries), and success for an entry-construction
// error. Returns the entries to persist and the pending reason, if any.
func (s *journalService) postingOutcome(ctx context.Context, err error, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch {
	case err == nil:
		return nil, "", nil
	case errors.Is(err, apperrors.ErrMissingAccountMapping):
		// Soft failure: record the business transaction, defer the journal.
		logger.Warn("Journal posting deferred: account mapping missing",
			slog.String("source_type", string(sourceType)),
			slog.String("source_id", sourceID),
			slog.String("error", err.Error()))
		s.notifier.Publish(ctx, portssvc.Event{
			Name:       "journal.pending_mapping",
			OccurredAt: s.now().UTC(),
			Fields: map[string]any{
				"sourceType": string(sourceType),
				"sourceID":   sourceID,
				"reason":     err.Error(),
			},
		})
		return nil, "transaction recorded; journal entry pending account configuration: " + err.Error(), nil
	case errors.Is(err, apperrors.ErrUnbalancedJournal):
		// Programming defect: the entry is discarded, never persisted, and
		// flagged for investigation. The business transaction still commits.
		logger.Error("Constructed journal entry does not balance",
			slog.String("source_type", string(sourceType)),
			slog.String("source_id", sourceID),
			slog.String("error", err.Error()))
		return nil, "transaction recorded; journal entry discarded as unbalanced: " + err.Error(), nil
	default:
		return nil, "", err
	}
}

func (s *journalService) PostSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.now().UTC()

	items := make([]domain.SaleItem, len(req.Items))
	subtotal := decimal.Zero
	for i, item := range req.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		items[i] = domain.SaleItem{
			LineID:    uuid.NewString(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CostPrice: item.CostPrice,
		}
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
	}
	subtotal = subtotal.Round(domain.BaseCurrencyPrecision)
	tax := req.TaxAmount.Round(domain.BaseCurrencyPrecision)
	grandTotal := subtotal.Add(tax)

	// Hard failure before anything is persisted.
	valuation, err := s.valuationSvc.Valuate(ctx, subtotal, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	sale := domain.Sale{
		SaleID:         uuid.NewString(),
		OrganizationID: req.OrganizationID,
		SaleDate:       req.SaleDate,
		Status:         domain.SettlementStatus(req.Status),
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		BaseSubtotal:   subtotal,
		BaseTax:        tax,
		BaseGrandTotal: grandTotal,
		Valuation:      *valuation,
		Items:          items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	entries := s.buildSaleEntries(&sale, creatorUserID)
	persisted := entries
	pendingReason := ""
	if err := s.resolveAndValidate(ctx, sale.OrganizationID, entries); err != nil {
		persisted, pendingReason, err = s.postingOutcome(ctx, err, domain.SourceSale, sale.SaleID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recordStore.SaveSale(ctx, sale, persisted); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("sale_id", sale.SaleID))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	result := &dto.PostingResult{
		TransactionID: sale.SaleID,
		SourceType:    domain.SourceSale,
		Posted:        pendingReason == "",
		PendingReason: pendingReason,
		Valuation:     sale.Valuation,
	}
	if result.Posted {
		result.JournalEntryID = persisted[0].JournalEntryID
		if len(persisted) > 1 {
			result.CogsJournalEntryID = persisted[1].JournalEntryID
		}
		s.notifier.Publish(ctx, portssvc.Event{
			Name:       "sale.posted",
			OccurredAt: now,
			Fields: map[string]any{
				"saleID":     sale.SaleID,
				"currency":   sale.Valuation.TransactionCurrency,
				"baseAmount": utils.FormatWithPrecision(sale.BaseGrandTotal, domain.BaseCurrencyPrecision),
			},
		})
	}
	logger.Info("Sale recorded",
		slog.String("sale_id", sale.SaleID),
		slog.Bool("journal_posted", result.Posted))
	return result, nil
}

// buildSaleEntries produces the revenue entry and, when the sold goods carry
// cost, the COGS entry. The pair is atomic: both are persisted with the sale
// or neither is.
func (s *journalService) buildSaleEntries(sale *domain.Sale, creatorUserID string) []domain.JournalEntry {
	settle := settlementRole(sale.PaymentMethod, domain.RoleAccountsReceivable)

	revenueLines := []domain.JournalLine{
		accounting.DebitLine(settle, sale.BaseGrandTotal, "Sale "+sale.SaleID),
		accounting.CreditLine(domain.RoleSalesRevenue, sale.BaseSubtotal, "Sales revenue"),
	}
	if sale.BaseTax.IsPositive() {
		revenueLines = append(revenueLines, accounting.CreditLine(domain.RoleVATPayable, sale.BaseTax, "Output VAT"))
	}
	entries := []domain.JournalEntry{
		s.buildEntry(sale.SaleDate, domain.SourceSale, sale.SaleID, "Sale "+sale.SaleID, revenueLines, creatorUserID),
	}

	if totalCost := sale.TotalCost(); totalCost.IsPositive() {
		cost := totalCost.Round(domain.BaseCurrencyPrecision)
		cogsLines := []domain.JournalLine{
			accounting.DebitLine(domain.RoleCOGS, cost, "Cost of goods sold"),
			accounting.CreditLine(domain.RoleInventory, cost, "Inventory issue"),
		}
		entries = append(entries, s.buildEntry(sale.SaleDate, domain.SourceSale, sale.SaleID, "COGS for sale "+sale.SaleID, cogsLines, creatorUserID))
	}
	return entries
}

func (s *journalService) PostPurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.now().UTC()

	items := make([]domain.PurchaseItem, len(req.Items))
	subtotal := decimal.Zero
	for i, item := range req.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		items[i] = domain.PurchaseItem{
			LineID:    uuid.NewString(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitCost))
	}
	subtotal = subtotal.Round(domain.BaseCurrencyPrecision)
	tax := req.TaxAmount.Round(domain.BaseCurrencyPrecision)
	grandTotal := subtotal.Add(tax)

	valuation, err := s.valuationSvc.Valuate(ctx, subtotal, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	purchase := domain.Purchase{
		PurchaseID:     uuid.NewString(),
		OrganizationID: req.OrganizationID,
		PurchaseDate:   req.PurchaseDate,
		Status:         domain.SettlementStatus(req.Status),
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		BaseSubtotal:   subtotal,
		BaseTax:        tax,
		BaseGrandTotal: grandTotal,
		Valuation:      *valuation,
		Items:          items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	settle := settlementRole(purchase.PaymentMethod, domain.RoleAccountsPayable)
	lines := []domain.JournalLine{
		accounting.DebitLine(domain.RoleInventory, subtotal, "Inventory receipt"),
	}
	if tax.IsPositive() {
		lines = append(lines, accounting.DebitLine(domain.RoleVATReceivable, tax, "Input VAT"))
	}
	lines = append(lines, accounting.CreditLine(settle, grandTotal, "Purchase "+purchase.PurchaseID))

	entries := []domain.JournalEntry{
		s.buildEntry(purchase.PurchaseDate, domain.SourcePurchase, purchase.PurchaseID, "Purchase "+purchase.PurchaseID, lines, creatorUserID),
	}
	persisted := entries
	pendingReason := ""
	if err := s.resolveAndValidate(ctx, purchase.OrganizationID, entries); err != nil {
		persisted, pendingReason, err = s.postingOutcome(ctx, err, domain.SourcePurchase, purchase.PurchaseID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recordStore.SavePurchase(ctx, purchase, persisted); err != nil {
		logger.Error("Failed to save purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchase.PurchaseID))
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	result := &dto.PostingResult{
		TransactionID: purchase.PurchaseID,
		SourceType:    domain.SourcePurchase,
		Posted:        pendingReason == "",
		PendingReason: pendingReason,
		Valuation:     purchase.Valuation,
	}
	if result.Posted {
		result.JournalEntryID = persisted[0].JournalEntryID
	}
	logger.Info("Purchase recorded",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.Bool("journal_posted", result.Posted))
	return result, nil
}

func (s *journalService) PostSaleReturn(ctx context.Context, req dto.CreateSaleReturnRequest, creatorUserID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.now().UTC()

	sale, err := s.recordStore.FindSaleByID(ctx, req.OriginalSaleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: sale %s", ErrOriginalNotFound, req.OriginalSaleID)
		}
		return nil, fmt.Errorf("failed to load original sale %s: %w", req.OriginalSaleID, err)
	}

	returnItems := make([]domain.ReturnItem, len(req.Items))
	for i, item := range req.Items {
		returnItems[i] = domain.ReturnItem{OriginalLineID: item.OriginalLineID, Quantity: item.Quantity}
	}
	// Rejected in full before any persistence.
	if err := s.valuationSvc.ValidateReturnQuantities(sale.QuantitiesByLine(), returnItems); err != nil {
		return nil, err
	}

	subtotal, totalCost := returnedSaleAmounts(sale, returnItems)
	if subtotal.IsZero() {
		return nil, fmt.Errorf("%w: sale %s", ErrNothingToReturn, sale.SaleID)
	}
	tax := proportionalTax(sale.BaseTax, subtotal, sale.BaseSubtotal)
	grandTotal := subtotal.Add(tax)

	valuation, err := s.valuationSvc.ValuateReturn(ctx, sale.Valuation, subtotal)
	if err != nil {
		return nil, err
	}

	ret := domain.SaleReturn{
		ReturnID:       uuid.NewString(),
		OriginalSaleID: sale.SaleID,
		OrganizationID: sale.OrganizationID,
		ReturnDate:     req.ReturnDate,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		BaseSubtotal:   subtotal,
		BaseTax:        tax,
		BaseGrandTotal: grandTotal,
		BaseTotalCost:  totalCost,
		Valuation:      *valuation,
		Items:          returnItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Mirror of the sale: every debit/credit swapped.
	settle := settlementRole(ret.PaymentMethod, domain.RoleAccountsReceivable)
	revLines := []domain.JournalLine{
		accounting.DebitLine(domain.RoleSalesRevenue, subtotal, "Sales return"),
	}
	if tax.IsPositive() {
		revLines = append(revLines, accounting.DebitLine(domain.RoleVATPayable, tax, "Output VAT reversal"))
	}
	revLines = append(revLines, accounting.CreditLine(settle, grandTotal, "Refund for sale "+sale.SaleID))
	entries := []domain.JournalEntry{
		s.buildEntry(ret.ReturnDate, domain.SourceSaleReturn, ret.ReturnID, "Return of sale "+sale.SaleID, revLines, creatorUserID),
	}
	if totalCost.IsPositive() {
		cogsLines := []domain.JournalLine{
			accounting.DebitLine(domain.RoleInventory, totalCost, "Inventory restock"),
			accounting.CreditLine(domain.RoleCOGS, totalCost, "COGS reversal"),
		}
		entries = append(entries, s.buildEntry(ret.ReturnDate, domain.SourceSaleReturn, ret.ReturnID, "COGS reversal for sale "+sale.SaleID, cogsLines, creatorUserID))
	}

	persisted := entries
	pendingReason := ""
	if err := s.resolveAndValidate(ctx, ret.OrganizationID, entries); err != nil {
		persisted, pendingReason, err = s.postingOutcome(ctx, err, domain.SourceSaleReturn, ret.ReturnID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recordStore.SaveSaleReturn(ctx, ret, persisted); err != nil {
		logger.Error("Failed to save sale return", slog.String("error", err.Error()), slog.String("return_id", ret.ReturnID))
		return nil, fmt.Errorf("failed to save sale return: %w", err)
	}

	result := &dto.PostingResult{
		TransactionID: ret.ReturnID,
		SourceType:    domain.SourceSaleReturn,
		Posted:        pendingReason == "",
		PendingReason: pendingReason,
		Valuation:     ret.Valuation,
	}
	if result.Posted {
		result.JournalEntryID = persisted[0].JournalEntryID
		if len(persisted) > 1 {
			result.CogsJournalEntryID = persisted[1].JournalEntryID
		}
	}
	logger.Info("Sale return recorded",
		slog.String("return_id", ret.ReturnID),
		slog.String("original_sale_id", sale.SaleID),
		slog.Bool("journal_posted", result.Posted))
	return result, nil
}

func (s *journalService) PostPurchaseReturn(ctx context.Context, req dto.CreatePurchaseReturnRequest, creatorUserID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.now().UTC()

	purchase, err := s.recordStore.FindPurchaseByID(ctx, req.OriginalPurchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: purchase %s", ErrOriginalNotFound, req.OriginalPurchaseID)
		}
		return nil, fmt.Errorf("failed to load original purchase %s: %w", req.OriginalPurchaseID, err)
	}

	returnItems := make([]domain.ReturnItem, len(req.Items))
	for i, item := range req.Items {
		returnItems[i] = domain.ReturnItem{OriginalLineID: item.OriginalLineID, Quantity: item.Quantity}
	}
	if err := s.valuationSvc.ValidateReturnQuantities(purchase.QuantitiesByLine(), returnItems); err != nil {
		return nil, err
	}

	itemsByLine := purchase.ItemsByLine()
	subtotal := decimal.Zero
	for _, item := range returnItems {
		original := itemsByLine[item.OriginalLineID]
		subtotal = subtotal.Add(item.Quantity.Mul(original.UnitCost))
	}
	subtotal = subtotal.Round(domain.BaseCurrencyPrecision)
	if subtotal.IsZero() {
		return nil, fmt.Errorf("%w: purchase %s", ErrNothingToReturn, purchase.PurchaseID)
	}
	tax := proportionalTax(purchase.BaseTax, subtotal, purchase.BaseSubtotal)
	grandTotal := subtotal.Add(tax)

	valuation, err := s.valuationSvc.ValuateReturn(ctx, purchase.Valuation, subtotal)
	if err != nil {
		return nil, err
	}

	ret := domain.PurchaseReturn{
		ReturnID:           uuid.NewString(),
		OriginalPurchaseID: purchase.PurchaseID,
		OrganizationID:     purchase.OrganizationID,
		ReturnDate:         req.ReturnDate,
		PaymentMethod:      domain.PaymentMethod(req.PaymentMethod),
		BaseSubtotal:       subtotal,
		BaseTax:            tax,
		BaseGrandTotal:     grandTotal,
		Valuation:          *valuation,
		Items:              returnItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Mirror of the purchase.
	settle := settlementRole(ret.PaymentMethod, domain.RoleAccountsPayable)
	lines := []domain.JournalLine{
		accounting.DebitLine(settle, grandTotal, "Return of purchase "+purchase.PurchaseID),
		accounting.CreditLine(domain.RoleInventory, subtotal, "Inventory return"),
	}
	if tax.IsPositive() {
		lines = append(lines, accounting.CreditLine(domain.RoleVATReceivable, tax, "Input VAT reversal"))
	}
	entries := []domain.JournalEntry{
		s.buildEntry(ret.ReturnDate, domain.SourcePurchaseReturn, ret.ReturnID, "Return of purchase "+purchase.PurchaseID, lines, creatorUserID),
	}

	persisted := entries
	pendingReason := ""
	if err := s.resolveAndValidate(ctx, ret.OrganizationID, entries); err != nil {
		persisted, pendingReason, err = s.postingOutcome(ctx, err, domain.SourcePurchaseReturn, ret.ReturnID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recordStore.SavePurchaseReturn(ctx, ret, persisted); err != nil {
		logger.Error("Failed to save purchase return", slog.String("error", err.Error()), slog.String("return_id", ret.ReturnID))
		return nil, fmt.Errorf("failed to save purchase return: %w", err)
	}

	result := &dto.PostingResult{
		TransactionID: ret.ReturnID,
		SourceType:    domain.SourcePurchaseReturn,
		Posted:        pendingReason == "",
		PendingReason: pendingReason,
		Valuation:     ret.Valuation,
	}
	if result.Posted {
		result.JournalEntryID = persisted[0].JournalEntryID
	}
	logger.Info("Purchase return recorded",
		slog.String("return_id", ret.ReturnID),
		slog.String("original_purchase_id", purchase.PurchaseID),
		slog.Bool("journal_posted", result.Posted))
	return result, nil
}

func (s *journalService) PostVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.now().UTC()

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: voucher amount must be positive", apperrors.ErrValidation)
	}

	// Vouchers are valued at the rate current at voucher time, not at the
	// time of the invoice they settle.
	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = s.conversionSvc.BaseCurrency()
	}
	conv, err := s.conversionSvc.ToBase(ctx, req.Amount, currencyCode)
	if err != nil {
		return nil, err
	}
	rateUsed := decimal.NewFromInt(1)
	if !conv.Rate.IsZero() {
		// Stored in the base -> voucher-currency direction, matching
		// TransactionValuation's convention.
		rateUsed = decimal.NewFromInt(1).Div(conv.Rate)
	}
	valuation := domain.TransactionValuation{
		TransactionCurrency: conv.OriginalCurrency,
		DisplayAmount:       req.Amount,
		BaseAmount:          conv.ConvertedAmount,
		ExchangeRateUsed:    rateUsed,
		ValuationDate:       now,
	}

	voucherType := domain.VoucherType(req.VoucherType)
	var sourceType domain.SourceType
	var lines []domain.JournalLine
	settle := settlementRole(domain.PaymentMethod(req.PaymentMethod), domain.RoleCash)
	switch voucherType {
	case domain.ReceiptVoucher:
		sourceType = domain.SourceReceiptVoucher
		lines = []domain.JournalLine{
			accounting.DebitLine(settle, valuation.BaseAmount, "Receipt from "+req.PartyID),
			accounting.CreditLine(domain.RoleAccountsReceivable, valuation.BaseAmount, "Settle receivable"),
		}
	case domain.PaymentVoucher:
		sourceType = domain.SourcePaymentVoucher
		lines = []domain.JournalLine{
			accounting.DebitLine(domain.RoleAccountsPayable, valuation.BaseAmount, "Settle payable"),
			accounting.CreditLine(settle, valuation.BaseAmount, "Payment to "+req.PartyID),
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownVoucherType, req.VoucherType)
	}

	voucher := domain.Voucher{
		VoucherID:      uuid.NewString(),
		OrganizationID: req.OrganizationID,
		VoucherType:    voucherType,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		VoucherDate:    req.VoucherDate,
		PartyID:        req.PartyID,
		Valuation:      valuation,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	entries := []domain.JournalEntry{
		s.buildEntry(voucher.VoucherDate, sourceType, voucher.VoucherID, string(voucherType)+" voucher "+voucher.VoucherID, lines, creatorUserID),
	}
	persisted := entries
	pendingReason := ""
	if err := s.resolveAndValidate(ctx, voucher.OrganizationID, entries); err != nil {
		persisted, pendingReason, err = s.postingOutcome(ctx, err, sourceType, voucher.VoucherID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recordStore.SaveVoucher(ctx, voucher, persisted); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucher.VoucherID))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	result := &dto.PostingResult{
		TransactionID: voucher.VoucherID,
		SourceType:    sourceType,
		Posted:        pendingReason == "",
		PendingReason: pendingReason,
		Valuation:     valuation,
	}
	if result.Posted {
		result.JournalEntryID = persisted[0].JournalEntryID
	}
	logger.Info("Voucher recorded",
		slog.String("voucher_id", voucher.VoucherID),
		slog.Bool("journal_posted", result.Posted))
	return result, nil
}

func (s *journalService) ListEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntriesBySource(ctx, sourceType, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for %s %s: %w", sourceType, sourceID, err)
	}
	return entries, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalEntryID, err)
	}
	return entry, nil
}

// ReverseEntry posts a compensating entry with every line's debit/credit
// swapped. The original entry is never deleted or mutated beyond its status
// and reversal linkage.
func (s *journalService) ReverseEntry(ctx context.Context, journalEntryID string, reason string, updaterUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalEntryID, err)
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, journalEntryID)
	}

	now := s.now().UTC()
	reversal := s.buildEntry(now, original.SourceType, original.SourceID,
		"Reversal of "+original.JournalEntryID+": "+reason,
		accounting.MirrorLines(original.Lines), updaterUserID)
	reversal.ReversesEntryID = &original.JournalEntryID

	if err := accounting.ValidateEntryBalance(&reversal); err != nil {
		logger.Error("Reversal entry does not balance",
			slog.String("journal_entry_id", journalEntryID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.journalRepo.SaveReversalEntry(ctx, reversal, original.JournalEntryID, updaterUserID, now); err != nil {
		logger.Error("Failed to save reversal entry", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", original.JournalEntryID),
		slog.String("reversal_entry_id", reversal.JournalEntryID))
	return &reversal, nil
}

// returnedSaleAmounts computes the base subtotal and inventory cost of the
// returned quantities, priced from the original sale lines.
func returnedSaleAmounts(sale *domain.Sale, returned []domain.ReturnItem) (subtotal, totalCost decimal.Decimal) {
	itemsByLine := sale.ItemsByLine()
	subtotal = decimal.Zero
	totalCost = decimal.Zero
	for _, item := range returned {
		original := itemsByLine[item.OriginalLineID]
		subtotal = subtotal.Add(item.Quantity.Mul(original.UnitPrice))
		totalCost = totalCost.Add(item.Quantity.Mul(original.CostPrice))
	}
	return subtotal.Round(domain.BaseCurrencyPrecision), totalCost.Round(domain.BaseCurrencyPrecision)
}

// proportionalTax allocates the original tax to the returned portion.
func proportionalTax(originalTax, returnedSubtotal, originalSubtotal decimal.Decimal) decimal.Decimal {
	if originalTax.IsZero() || originalSubtotal.IsZero() {
		return decimal.Zero
	}
	return originalTax.Mul(returnedSubtotal).Div(originalSubtotal).Round(domain.BaseCurrencyPrecision)
}
