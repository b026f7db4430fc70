package entities

// ProductType classifies a product for planning purposes.
type ProductType string

const (
	ProductFinished     ProductType = "FINISHED"
	ProductSemiFinished ProductType = "SEMI_FINISHED"
	ProductRaw          ProductType = "RAW"
	ProductConsumable   ProductType = "CONSUMABLE"
	ProductPackaging    ProductType = "PACKAGING"
	ProductResale       ProductType = "RESALE"
)

// IsPurchased reports whether planned orders for this type are BUY orders.
func (t ProductType) IsPurchased() bool {
	switch t {
	case ProductRaw, ProductConsumable, ProductPackaging, ProductResale:
		return true
	}
	return false
}

// IsManufactured reports whether planned orders for this type are MAKE orders.
func (t ProductType) IsManufactured() bool {
	return t == ProductFinished || t == ProductSemiFinished
}

// LotSizingMethod selects how net requirements become order quantities.
type LotSizingMethod string

const (
	LotForLot    LotSizingMethod = "L4L"
	LotEOQ       LotSizingMethod = "EOQ"
	SilverMeal   LotSizingMethod = "SILVER_MEAL"
	WagnerWhitin LotSizingMethod = "WAGNER_WHITIN"
)

// Product is the item master record used across every planning stage.
type Product struct {
	ID                  string
	Code                string
	Description         string
	Type                ProductType
	ABCClass            string
	UnitVolumeM3        float64
	LotSizingMethod     LotSizingMethod
	MinimumLot          float64
	PurchaseMultiple    float64
	LeadTimeDays        int
	UnitCost            float64
	OrderCost           float64
	AnnualHoldingPct    float64
	ReviewIntervalDays  int
	SafetyStockOverride *float64
	Active              bool
}

// LeadTimePeriods converts the lead time to whole weekly planning periods,
// rounding up.
func (p *Product) LeadTimePeriods() int {
	if p.LeadTimeDays <= 0 {
		return 0
	}
	return (p.LeadTimeDays + 6) / 7
}

// WeeklyHoldingCost is the per-unit per-week holding cost derived from unit
// cost and the annual holding percentage.
func (p *Product) WeeklyHoldingCost() float64 {
	return p.UnitCost * p.AnnualHoldingPct / 100 / 52
}
