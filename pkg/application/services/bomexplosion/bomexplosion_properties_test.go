package bomexplosion

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/infrastructure/repositories/memory"
)

// explodeChain builds a linear BOM P0 -> P1 -> ... with the given per-edge
// quantities and loss percentages, explodes a single week of root demand and
// returns the leaf quantity.
func explodeChain(t *testing.T, demand float64, quantities []int, losses []int) float64 {
	t.Helper()

	products := memory.NewProductRepository()
	products.AddProduct(&entities.Product{ID: "P0", Type: entities.ProductFinished, Active: true})

	bom := memory.NewBOMRepository()
	for i := range quantities {
		bom.AddLine(entities.BOMLine{
			ParentID: fmt.Sprintf("P%d", i),
			ChildID:  fmt.Sprintf("P%d", i+1),
			Quantity: float64(quantities[i]),
			LossPct:  float64(losses[i]),
			Active:   true,
		})
	}

	service := NewService(bom, products)
	result, err := service.Explode(context.Background(), mpsFor("P0", []float64{demand}))
	if err != nil {
		t.Fatalf("Explode failed: %v", err)
	}
	leaf := result.Gross[fmt.Sprintf("P%d", len(quantities))]
	if len(leaf) != 1 {
		t.Fatalf("Expected one leaf period, got %d", len(leaf))
	}
	return leaf[0].Quantity
}

func TestExplode_LossCompoundsDownChains(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("each level applies its factor to the rounded parent demand", prop.ForAll(
		func(demand int, quantities []int, losses []int) bool {
			got := explodeChain(t, float64(demand), quantities, losses)

			// The sweep rounds each level's accumulated demand before
			// multiplying it down to the next.
			expected := float64(demand)
			for i := range quantities {
				factor := float64(quantities[i]) * (1 + float64(losses[i])/100)
				expected = services.Round4(expected) * factor
			}
			return got == services.Round4(expected)
		},
		gen.IntRange(1, 500),
		gen.SliceOfN(5, gen.IntRange(1, 4)),
		gen.SliceOfN(5, gen.IntRange(0, 10)),
	))
	properties.Property("lossless integer chains stay exact", prop.ForAll(
		func(demand int, quantities []int) bool {
			losses := make([]int, len(quantities))
			got := explodeChain(t, float64(demand), quantities, losses)

			expected := float64(demand)
			for _, qty := range quantities {
				expected *= float64(qty)
			}
			return got == expected
		},
		gen.IntRange(1, 500),
		gen.SliceOfN(5, gen.IntRange(1, 4)),
	))
	properties.TestingRun(t)
}
