package entities

import "github.com/shopspring/decimal"

// Supplier is a source of purchased products.
type Supplier struct {
	ID                  string
	Name                string
	DefaultLeadTimeDays int
	MinLeadTimeDays     *int
	MaxLeadTimeDays     *int
}

// SupplierLink connects a product to a supplier with link-specific terms.
type SupplierLink struct {
	ProductID    string
	SupplierID   string
	LeadTimeDays *int
	MOQ          float64
	UnitPrice    *decimal.Decimal
	IsPrincipal  bool

	// Historical delivery lead times in days, newest last. Used to derive
	// empirical lead-time variability when at least 5 observations exist.
	LeadTimeHistory []float64
}
