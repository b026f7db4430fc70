package memory

import (
	"context"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// BOMRepository provides in-memory bill-of-material storage.
type BOMRepository struct {
	lines []entities.BOMLine
}

// NewBOMRepository creates a new in-memory BOM repository.
func NewBOMRepository() *BOMRepository {
	return &BOMRepository{}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// AddLine adds a BOM line to the repository.
func (r *BOMRepository) AddLine(line entities.BOMLine) {
	r.lines = append(r.lines, line)
}

// LoadLines loads BOM lines into the repository.
func (r *BOMRepository) LoadLines(lines []entities.BOMLine) {
	r.lines = append(r.lines, lines...)
}

// ListActiveLines returns all active BOM lines.
func (r *BOMRepository) ListActiveLines(ctx context.Context) ([]entities.BOMLine, error) {
	var active []entities.BOMLine
	for _, line := range r.lines {
		if line.Active {
			active = append(active, line)
		}
	}
	return active, nil
}
