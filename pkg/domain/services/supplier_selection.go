package services

import "github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"

// SelectSupplierLink picks the sourcing link for a purchased product: the
// principal link wins; otherwise the lowest positive unit price; otherwise
// the first link. Returns nil when no links exist.
func SelectSupplierLink(links []entities.SupplierLink) *entities.SupplierLink {
	var best *entities.SupplierLink
	for i := range links {
		link := &links[i]
		if link.IsPrincipal {
			return link
		}
		if link.UnitPrice == nil || !link.UnitPrice.IsPositive() {
			continue
		}
		if best == nil || best.UnitPrice == nil || link.UnitPrice.LessThan(*best.UnitPrice) {
			best = link
		}
	}
	if best != nil {
		return best
	}
	if len(links) > 0 {
		return &links[0]
	}
	return nil
}
