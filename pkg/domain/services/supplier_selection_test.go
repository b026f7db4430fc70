package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

func priced(supplierID string, price float64) entities.SupplierLink {
	p := decimal.NewFromFloat(price)
	return entities.SupplierLink{SupplierID: supplierID, UnitPrice: &p}
}

func TestSelectSupplierLink_PrincipalWins(t *testing.T) {
	links := []entities.SupplierLink{
		priced("S1", 1.50),
		{SupplierID: "S2", IsPrincipal: true},
		priced("S3", 0.90),
	}
	link := SelectSupplierLink(links)
	if link == nil || link.SupplierID != "S2" {
		t.Fatalf("Expected principal S2, got %+v", link)
	}
}

func TestSelectSupplierLink_CheapestPositivePrice(t *testing.T) {
	links := []entities.SupplierLink{
		priced("S1", 1.50),
		priced("S2", 0.90),
		priced("S3", 2.10),
	}
	link := SelectSupplierLink(links)
	if link == nil || link.SupplierID != "S2" {
		t.Fatalf("Expected cheapest S2, got %+v", link)
	}
}

func TestSelectSupplierLink_FallsBackToFirst(t *testing.T) {
	links := []entities.SupplierLink{
		{SupplierID: "S1"},
		{SupplierID: "S2"},
	}
	link := SelectSupplierLink(links)
	if link == nil || link.SupplierID != "S1" {
		t.Fatalf("Expected first link S1, got %+v", link)
	}
}

func TestSelectSupplierLink_NoLinks(t *testing.T) {
	if link := SelectSupplierLink(nil); link != nil {
		t.Errorf("Expected nil, got %+v", link)
	}
}
