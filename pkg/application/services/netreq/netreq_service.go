// Package netreq computes the classic MRP netting grid: gross requirements
// against projected stock, scheduled receipts and safety stock.
package netreq

import (
	"time"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// Input is the per-product netting input, aligned to the planning periods.
type Input struct {
	ProductID         string
	PeriodStarts      []time.Time
	Gross             []float64
	ScheduledReceipts []float64
	InitialStock      float64
	SafetyStock       float64
}

// Service computes net requirements (stage 3b).
type Service struct{}

// NewService creates a net requirement service.
func NewService() *Service {
	return &Service{}
}

// Calculate runs the netting recurrence over the planning periods:
//
//	net[t]    = max(0, gross - projStock - scheduled + SS)
//	projStock = projStock + scheduled - gross
//
// Net requirements are floored at 0; projected stock may go negative since
// planned receipts are only added by the lot-sizing stage. The reported
// projected stock of each row is the balance after that period.
func (s *Service) Calculate(input Input) dto.NetGrid {
	grid := dto.NetGrid{
		ProductID:    input.ProductID,
		InitialStock: input.InitialStock,
		SafetyStock:  input.SafetyStock,
		Periods:      make([]dto.NetPeriod, 0, len(input.PeriodStarts)),
	}

	projStock := input.InitialStock
	for t, periodStart := range input.PeriodStarts {
		gross := valueAt(input.Gross, t)
		scheduled := valueAt(input.ScheduledReceipts, t)

		net := gross - projStock - scheduled + input.SafetyStock
		if net < 0 {
			net = 0
		}
		projStock = projStock + scheduled - gross

		// Unreachable through the formula above for exact arithmetic;
		// kept as a floating-point guard so stock never silently dips
		// below safety stock without a requirement being raised.
		if net == 0 && projStock < input.SafetyStock {
			net = input.SafetyStock - projStock
		}

		grid.Periods = append(grid.Periods, dto.NetPeriod{
			PeriodStart:       periodStart,
			GrossRequirement:  services.Round4(gross),
			ScheduledReceipts: services.Round4(scheduled),
			ProjectedStock:    services.Round4(projStock),
			NetRequirement:    services.Round4(net),
		})
	}
	return grid
}

func valueAt(xs []float64, i int) float64 {
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}
