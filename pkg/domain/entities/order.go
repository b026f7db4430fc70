package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderKind distinguishes purchased from manufactured orders.
type OrderKind string

const (
	OrderBuy  OrderKind = "BUY"
	OrderMake OrderKind = "MAKE"
)

// OrderStatus is the lifecycle state of a planned order.
type OrderStatus string

const (
	StatusPlanned   OrderStatus = "PLANNED"
	StatusFirm      OrderStatus = "FIRM"
	StatusReleased  OrderStatus = "RELEASED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderPriority ranks urgency based on release date versus a reference date.
type OrderPriority string

const (
	PriorityCritical OrderPriority = "CRITICAL"
	PriorityHigh     OrderPriority = "HIGH"
	PriorityMedium   OrderPriority = "MEDIUM"
	PriorityLow      OrderPriority = "LOW"
)

// PlannedOrder is a proposed (or firmed) supply order produced by the
// planning run or already present in the order book.
type PlannedOrder struct {
	ID              uuid.UUID
	ExecutionID     uuid.UUID
	ProductID       string
	Kind            OrderKind
	Quantity        float64
	NeededBy        time.Time
	ReleaseDate     time.Time
	ExpectedReceipt time.Time
	SupplierID      *string
	WorkCenterID    *string
	EstimatedCost   *decimal.Decimal
	LotSizingMethod LotSizingMethod
	Priority        OrderPriority
	Status          OrderStatus
	ActionMessage   *string
}

// NewPlannedOrder creates a validated planned order. Release date must not
// be derived independently by callers: releaseDate = neededBy - lead time and
// expectedReceipt = neededBy are structural invariants.
func NewPlannedOrder(
	executionID uuid.UUID,
	productID string,
	kind OrderKind,
	quantity float64,
	neededBy time.Time,
	leadTimeDays int,
) (*PlannedOrder, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", quantity)
	}
	return &PlannedOrder{
		ID:              uuid.New(),
		ExecutionID:     executionID,
		ProductID:       productID,
		Kind:            kind,
		Quantity:        quantity,
		NeededBy:        neededBy,
		ReleaseDate:     neededBy.AddDate(0, 0, -leadTimeDays),
		ExpectedReceipt: neededBy,
		Status:          StatusPlanned,
	}, nil
}

// PriorityFor classifies a release date against a reference date. Bands are
// inclusive on the lower side.
func PriorityFor(releaseDate, referenceDate time.Time) OrderPriority {
	switch {
	case releaseDate.Before(referenceDate):
		return PriorityCritical
	case releaseDate.Before(referenceDate.AddDate(0, 0, 7)):
		return PriorityHigh
	case releaseDate.Before(referenceDate.AddDate(0, 0, 14)):
		return PriorityMedium
	default:
		return PriorityLow
	}
}
