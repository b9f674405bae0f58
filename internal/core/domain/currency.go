package domain

// Currency represents a supported currency in the domain.
// A currency may be deactivated but is never deleted once transactions
// reference it.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "SAR")
	Symbol       string `json:"symbol"`       // e.g., "﷼"
	Name         string `json:"name"`         // e.g., "Saudi Riyal"
	Precision    int    `json:"precision"`    // Number of decimal places amounts are rounded to
	IsActive     bool   `json:"isActive"`
	AuditFields
}
