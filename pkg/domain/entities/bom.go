package entities

// BOMLine is one line of a bill of materials: building one unit of the
// parent consumes Quantity units of the child, inflated by LossPct scrap.
type BOMLine struct {
	ParentID string
	ChildID  string
	Quantity float64
	LossPct  float64
	Active   bool
}

// EffectiveQuantity is the per-parent child usage including loss.
func (l BOMLine) EffectiveQuantity() float64 {
	return l.Quantity * (1 + l.LossPct/100)
}
