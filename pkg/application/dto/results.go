package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// PeriodDemand is a quantity anchored to a weekly period start.
type PeriodDemand struct {
	PeriodStart time.Time
	Quantity    float64
}

// MPSBucket is one weekly bucket of the master production schedule.
type MPSBucket struct {
	WeekStart       time.Time
	WeekEnd         time.Time
	ForecastDemand  float64
	FirmOrderDemand float64
	MPSDemand       float64
}

// MPSProductSchedule is the weekly demand plan of one finished product.
type MPSProductSchedule struct {
	ProductID   string
	Buckets     []MPSBucket
	TotalDemand float64
}

// MPSResult is the output of stage 1.
type MPSResult struct {
	StartDate    time.Time
	HorizonWeeks int
	Schedules    []MPSProductSchedule
	Warnings     []string
}

// StockParamsResult is the output of stage 2. Skipping a product reuses its
// latest stored row (in Reused) so downstream netting still sees its safety
// stock and EOQ; Params holds only freshly computed rows.
type StockParamsResult struct {
	Params   []*entities.StockParams
	Reused   []*entities.StockParams
	Skipped  int
	Warnings []string
}

// ExplosionResult is the output of the BOM explosion half of stage 3:
// time-phased gross requirements for every BOM level plus low-level codes.
type ExplosionResult struct {
	// Gross maps product id to per-period gross requirements, ordered by
	// period start.
	Gross map[string][]PeriodDemand
	// LowLevelCodes maps product id to its maximum depth under any root.
	LowLevelCodes map[string]int
}

// NetPeriod is one row of the classic MRP grid.
type NetPeriod struct {
	PeriodStart       time.Time
	GrossRequirement  float64
	ScheduledReceipts float64
	ProjectedStock    float64
	NetRequirement    float64
}

// NetGrid is the netted requirement plan of one product.
type NetGrid struct {
	ProductID    string
	InitialStock float64
	SafetyStock  float64
	Periods      []NetPeriod
}

// PlannedReceipt is a lot-sized receipt in a planning period.
type PlannedReceipt struct {
	PeriodIndex int
	PeriodStart time.Time
	Quantity    float64
}

// PlannedRelease is the release corresponding to a receipt, offset by the
// product's lead time in periods.
type PlannedRelease struct {
	PeriodIndex        int
	PeriodStart        time.Time
	ReceiptPeriodStart time.Time
	Quantity           float64
}

// LotPlan is the lot-sizing output of one product. PastDue holds releases
// whose computed release period precedes the horizon; they keep their
// original receipt date.
type LotPlan struct {
	ProductID string
	Method    entities.LotSizingMethod
	Receipts  []PlannedReceipt
	Releases  []PlannedRelease
	PastDue   []PlannedRelease
}

// OrderGenResult is the output of stage 5.
type OrderGenResult struct {
	Orders   []*entities.PlannedOrder
	Warnings []string
}

// ActionMessageType classifies an order-book reconciliation message.
type ActionMessageType string

const (
	ActionNew      ActionMessageType = "NEW"
	ActionIncrease ActionMessageType = "INCREASE"
	ActionReduce   ActionMessageType = "REDUCE"
	ActionExpedite ActionMessageType = "EXPEDITE"
	ActionCancel   ActionMessageType = "CANCEL"
)

// ActionMessage is one recommendation to reconcile the order book with the
// new plan.
type ActionMessage struct {
	Type      ActionMessageType
	OrderID   uuid.UUID
	ProductID string
	Kind      entities.OrderKind
	DeltaQty  float64
	DeltaDays int
	Text      string
}

// ActionMessageResult is the output of stage 6.
type ActionMessageResult struct {
	Messages []ActionMessage
}

// CapacityResult is the output of stage 7.
type CapacityResult struct {
	Loads []entities.CapacityLoad
}

// StorageSeverity classifies projected warehouse utilization.
type StorageSeverity string

const (
	SeverityOK       StorageSeverity = "OK"
	SeverityAlert    StorageSeverity = "ALERT"
	SeverityCritical StorageSeverity = "CRITICAL"
)

// StorageProjection is the projected volume of one warehouse in one week.
type StorageProjection struct {
	WarehouseID    string
	WeekStart      time.Time
	IncomingVolume float64
	OutgoingVolume float64
	ProjectedM3    float64
	CapacityM3     float64
	UtilizationPct float64
	Severity       StorageSeverity
}

// StorageResult is the output of stage 8.
type StorageResult struct {
	Projections []StorageProjection
}
