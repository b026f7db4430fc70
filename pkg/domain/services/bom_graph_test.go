package services

import (
	"reflect"
	"testing"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

func line(parent, child string, qty float64) entities.BOMLine {
	return entities.BOMLine{ParentID: parent, ChildID: child, Quantity: qty, Active: true}
}

func TestBOMGraph_Roots(t *testing.T) {
	graph := NewBOMGraph([]entities.BOMLine{
		line("A", "B", 2),
		line("B", "C", 3),
		line("X", "C", 1),
	})

	roots := graph.Roots([]string{"A"})
	want := []string{"A", "X"}
	if !reflect.DeepEqual(roots, want) {
		t.Errorf("Roots = %v, want %v", roots, want)
	}
}

func TestBOMGraph_DetectCycle(t *testing.T) {
	graph := NewBOMGraph([]entities.BOMLine{
		line("A", "B", 1),
		line("B", "C", 1),
		line("C", "A", 1),
	})

	cycle := graph.DetectCycle()
	if cycle == nil {
		t.Fatal("Expected a cycle, got nil")
	}
	if len(cycle) != 4 {
		t.Fatalf("Expected closed 3-cycle of length 4, got %v", cycle)
	}
	if cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("Expected closed path, got %v", cycle)
	}
}

func TestBOMGraph_DetectCycle_SelfLoop(t *testing.T) {
	graph := NewBOMGraph([]entities.BOMLine{line("A", "A", 1)})

	cycle := graph.DetectCycle()
	if !reflect.DeepEqual(cycle, []string{"A", "A"}) {
		t.Errorf("Expected [A A], got %v", cycle)
	}
}

func TestBOMGraph_DetectCycle_Acyclic(t *testing.T) {
	graph := NewBOMGraph([]entities.BOMLine{
		line("A", "B", 1),
		line("A", "C", 1),
		line("B", "C", 1),
	})
	if cycle := graph.DetectCycle(); cycle != nil {
		t.Errorf("Expected no cycle, got %v", cycle)
	}
}

func TestBOMGraph_LowLevelCodes_MaxDepthWins(t *testing.T) {
	// C appears at depth 1 under A and at depth 2 via B; the code is the max.
	graph := NewBOMGraph([]entities.BOMLine{
		line("A", "B", 1),
		line("A", "C", 1),
		line("B", "C", 1),
	})

	codes := graph.LowLevelCodes(graph.Roots([]string{"A"}))
	want := map[string]int{"A": 0, "B": 1, "C": 2}
	if !reflect.DeepEqual(codes, want) {
		t.Errorf("LowLevelCodes = %v, want %v", codes, want)
	}
	if MaxLevel(codes) != 2 {
		t.Errorf("MaxLevel = %d, want 2", MaxLevel(codes))
	}
}
