package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Pipeline error kinds. Each terminates the run at the offending stage; the
// orchestrator records the step as FAILED and the execution as ERROR.
var (
	// ErrConcurrencyConflict signals another execution is already RUNNING.
	ErrConcurrencyConflict = errors.New("CONCURRENCY_CONFLICT: another MRP execution is already running")

	// ErrBadLotSizingMethod signals an unknown lot-sizing tag on a product.
	ErrBadLotSizingMethod = errors.New("BAD_METHOD: unknown lot sizing method")

	// ErrInsufficientHistory signals fewer than the required weekly demand
	// samples for a standalone Monte Carlo simulation.
	ErrInsufficientHistory = errors.New("INSUFFICIENT_HISTORY: not enough weekly demand samples")
)

// CircularBOMError reports a cycle in the BOM graph. Path is the closed
// cycle: the first product id repeats at the end.
type CircularBOMError struct {
	Path []string
}

func (e *CircularBOMError) Error() string {
	return fmt.Sprintf("CIRCULAR_BOM: cycle detected: %s", strings.Join(e.Path, " -> "))
}
