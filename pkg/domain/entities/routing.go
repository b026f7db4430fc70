package entities

// RoutingStep is one operation of a product's routing: the work center it
// runs on, its position in the sequence, and its time standards in minutes.
type RoutingStep struct {
	ProductID      string
	WorkCenterID   string
	Sequence       int
	SetupMinutes   float64
	MinutesPerUnit float64
}

// HoursFor returns the load in hours this step contributes for a quantity.
func (s RoutingStep) HoursFor(quantity float64) float64 {
	return (s.SetupMinutes + quantity*s.MinutesPerUnit) / 60
}
