package repositories

import (
	"context"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// BOMRepository provides read access to active bill-of-material lines.
type BOMRepository interface {
	ListActiveLines(ctx context.Context) ([]entities.BOMLine, error)
}
