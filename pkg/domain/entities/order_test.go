package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewPlannedOrder_DateInvariants(t *testing.T) {
	neededBy := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	order, err := NewPlannedOrder(uuid.New(), "P1", OrderBuy, 50, neededBy, 10)
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	wantRelease := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	if !order.ReleaseDate.Equal(wantRelease) {
		t.Errorf("Expected release %v, got %v", wantRelease, order.ReleaseDate)
	}
	if !order.ExpectedReceipt.Equal(neededBy) {
		t.Errorf("Expected receipt %v, got %v", neededBy, order.ExpectedReceipt)
	}
	if order.Status != StatusPlanned {
		t.Errorf("Expected status PLANNED, got %s", order.Status)
	}
}

func TestNewPlannedOrder_Validation(t *testing.T) {
	if _, err := NewPlannedOrder(uuid.New(), "", OrderBuy, 1, time.Now(), 0); err == nil {
		t.Error("Expected error for empty product id")
	}
	if _, err := NewPlannedOrder(uuid.New(), "P1", OrderBuy, 0, time.Now(), 0); err == nil {
		t.Error("Expected error for zero quantity")
	}
	if _, err := NewPlannedOrder(uuid.New(), "P1", OrderBuy, -5, time.Now(), 0); err == nil {
		t.Error("Expected error for negative quantity")
	}
}

func TestPriorityFor_Bands(t *testing.T) {
	ref := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		release time.Time
		want    OrderPriority
	}{
		{ref.AddDate(0, 0, -1), PriorityCritical},
		{ref, PriorityHigh},
		{ref.AddDate(0, 0, 6), PriorityHigh},
		{ref.AddDate(0, 0, 7), PriorityMedium},
		{ref.AddDate(0, 0, 13), PriorityMedium},
		{ref.AddDate(0, 0, 14), PriorityLow},
	}
	for _, tt := range tests {
		if got := PriorityFor(tt.release, ref); got != tt.want {
			t.Errorf("PriorityFor(%v) = %s, want %s", tt.release, got, tt.want)
		}
	}
}
