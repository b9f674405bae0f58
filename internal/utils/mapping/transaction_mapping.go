package mapping

import (
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/sahab-erp/sahab-backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale. Items are mapped
// separately with ToModelSaleItems.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		OrganizationID: d.OrganizationID,
		SaleDate:       d.SaleDate,
		Status:         string(d.Status),
		PaymentMethod:  string(d.PaymentMethod),
		BaseSubtotal:   d.BaseSubtotal,
		BaseTax:        d.BaseTax,
		BaseGrandTotal: d.BaseGrandTotal,
		Valuation:      ToModelValuation(d.Valuation),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale plus its items to a domain Sale.
func ToDomainSale(m models.Sale, items []models.SaleItem) domain.Sale {
	domainItems := make([]domain.SaleItem, len(items))
	for i, item := range items {
		domainItems[i] = domain.SaleItem{
			LineID:    item.LineID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CostPrice: item.CostPrice,
		}
	}
	return domain.Sale{
		SaleID:         m.SaleID,
		OrganizationID: m.OrganizationID,
		SaleDate:       m.SaleDate,
		Status:         domain.SettlementStatus(m.Status),
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		BaseSubtotal:   m.BaseSubtotal,
		BaseTax:        m.BaseTax,
		BaseGrandTotal: m.BaseGrandTotal,
		Valuation:      ToDomainValuation(m.Valuation),
		Items:          domainItems,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleItems converts a sale's domain items to model rows.
func ToModelSaleItems(saleID string, items []domain.SaleItem) []models.SaleItem {
	ms := make([]models.SaleItem, len(items))
	for i, item := range items {
		ms[i] = models.SaleItem{
			LineID:    item.LineID,
			SaleID:    saleID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CostPrice: item.CostPrice,
		}
	}
	return ms
}

// ToModelPurchase converts a domain Purchase to a model Purchase.
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:     d.PurchaseID,
		OrganizationID: d.OrganizationID,
		PurchaseDate:   d.PurchaseDate,
		Status:         string(d.Status),
		PaymentMethod:  string(d.PaymentMethod),
		BaseSubtotal:   d.BaseSubtotal,
		BaseTax:        d.BaseTax,
		BaseGrandTotal: d.BaseGrandTotal,
		Valuation:      ToModelValuation(d.Valuation),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase plus its items to a domain Purchase.
func ToDomainPurchase(m models.Purchase, items []models.PurchaseItem) domain.Purchase {
	domainItems := make([]domain.PurchaseItem, len(items))
	for i, item := range items {
		domainItems[i] = domain.PurchaseItem{
			LineID:    item.LineID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
	}
	return domain.Purchase{
		PurchaseID:     m.PurchaseID,
		OrganizationID: m.OrganizationID,
		PurchaseDate:   m.PurchaseDate,
		Status:         domain.SettlementStatus(m.Status),
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		BaseSubtotal:   m.BaseSubtotal,
		BaseTax:        m.BaseTax,
		BaseGrandTotal: m.BaseGrandTotal,
		Valuation:      ToDomainValuation(m.Valuation),
		Items:          domainItems,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchaseItems converts a purchase's domain items to model rows.
func ToModelPurchaseItems(purchaseID string, items []domain.PurchaseItem) []models.PurchaseItem {
	ms := make([]models.PurchaseItem, len(items))
	for i, item := range items {
		ms[i] = models.PurchaseItem{
			LineID:     item.LineID,
			PurchaseID: purchaseID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitCost:   item.UnitCost,
		}
	}
	return ms
}

// ToModelSaleReturn converts a domain SaleReturn to a model SaleReturn.
func ToModelSaleReturn(d domain.SaleReturn) models.SaleReturn {
	return models.SaleReturn{
		ReturnID:       d.ReturnID,
		OriginalSaleID: d.OriginalSaleID,
		OrganizationID: d.OrganizationID,
		ReturnDate:     d.ReturnDate,
		PaymentMethod:  string(d.PaymentMethod),
		BaseSubtotal:   d.BaseSubtotal,
		BaseTax:        d.BaseTax,
		BaseGrandTotal: d.BaseGrandTotal,
		BaseTotalCost:  d.BaseTotalCost,
		Valuation:      ToModelValuation(d.Valuation),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelPurchaseReturn converts a domain PurchaseReturn to a model PurchaseReturn.
func ToModelPurchaseReturn(d domain.PurchaseReturn) models.PurchaseReturn {
	return models.PurchaseReturn{
		ReturnID:           d.ReturnID,
		OriginalPurchaseID: d.OriginalPurchaseID,
		OrganizationID:     d.OrganizationID,
		ReturnDate:         d.ReturnDate,
		PaymentMethod:      string(d.PaymentMethod),
		BaseSubtotal:       d.BaseSubtotal,
		BaseTax:            d.BaseTax,
		BaseGrandTotal:     d.BaseGrandTotal,
		Valuation:          ToModelValuation(d.Valuation),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToModelVoucher converts a domain Voucher to a model Voucher.
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:      d.VoucherID,
		OrganizationID: d.OrganizationID,
		VoucherType:    string(d.VoucherType),
		PaymentMethod:  string(d.PaymentMethod),
		VoucherDate:    d.VoucherDate,
		PartyID:        d.PartyID,
		Notes:          d.Notes,
		Valuation:      ToModelValuation(d.Valuation),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}
