// Package actionmsg diffs freshly planned orders against the FIRM/RELEASED
// order book and emits reconciliation messages: EXPEDITE, INCREASE, REDUCE,
// NEW and CANCEL.
package actionmsg

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// matchWindow is the date tolerance for pairing planned orders with
// existing ones. Widening it changes recorded expectations; keep at 3 days.
const matchWindowDays = 3

// Service reconciles the order book (stage 6).
type Service struct {
	orders repositories.OrderRepository
}

// NewService creates an action message service.
func NewService(orders repositories.OrderRepository) *Service {
	return &Service{orders: orders}
}

// orderKey groups orders for comparison.
type orderKey struct {
	ProductID string
	Kind      entities.OrderKind
}

// Reconcile compares planned orders with existing FIRM and RELEASED orders
// per (product, kind) key and persists the resulting messages: onto the
// planned order for NEW/INCREASE/REDUCE/EXPEDITE, onto the existing order
// for CANCEL. PLANNED and CANCELLED existing orders are never compared.
func (s *Service) Reconcile(
	ctx context.Context,
	planned []*entities.PlannedOrder,
) (*dto.ActionMessageResult, error) {
	existing, err := s.orders.ListByStatus(ctx, entities.StatusFirm, entities.StatusReleased)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing orders: %w", err)
	}

	plannedGroups := groupOrders(planned)
	existingGroups := groupOrders(existing)

	result := &dto.ActionMessageResult{}

	for _, key := range sortedKeys(plannedGroups, existingGroups) {
		plannedGroup := plannedGroups[key]
		existingGroup := existingGroups[key]
		matched := make(map[int]bool, len(existingGroup))

		for _, plannedOrder := range plannedGroup {
			var (
				matchedQty     float64
				latestDelivery time.Time
				matchedAny     bool
			)
			for i, existingOrder := range existingGroup {
				if dayDistance(existingOrder.NeededBy, plannedOrder.NeededBy) > matchWindowDays {
					continue
				}
				matched[i] = true
				matchedAny = true
				matchedQty += existingOrder.Quantity
				if existingOrder.ExpectedReceipt.After(latestDelivery) {
					latestDelivery = existingOrder.ExpectedReceipt
				}
			}

			if !matchedAny {
				result.Messages = append(result.Messages, newMessage(plannedOrder))
				continue
			}

			matchedQty = services.Round4(matchedQty)
			switch {
			case latestDelivery.After(plannedOrder.NeededBy):
				days := int(math.Ceil(latestDelivery.Sub(plannedOrder.NeededBy).Hours() / 24))
				result.Messages = append(result.Messages, dto.ActionMessage{
					Type:      dto.ActionExpedite,
					OrderID:   plannedOrder.ID,
					ProductID: key.ProductID,
					Kind:      key.Kind,
					DeltaDays: days,
					Text: fmt.Sprintf("EXPEDITE: advance delivery by %d days to %s",
						days, plannedOrder.NeededBy.Format("2006-01-02")),
				})
			case matchedQty < plannedOrder.Quantity:
				delta := services.Round4(plannedOrder.Quantity - matchedQty)
				result.Messages = append(result.Messages, dto.ActionMessage{
					Type:      dto.ActionIncrease,
					OrderID:   plannedOrder.ID,
					ProductID: key.ProductID,
					Kind:      key.Kind,
					DeltaQty:  delta,
					Text: fmt.Sprintf("INCREASE: raise quantity by %.4f for %s",
						delta, plannedOrder.NeededBy.Format("2006-01-02")),
				})
			case matchedQty > plannedOrder.Quantity:
				delta := services.Round4(matchedQty - plannedOrder.Quantity)
				result.Messages = append(result.Messages, dto.ActionMessage{
					Type:      dto.ActionReduce,
					OrderID:   plannedOrder.ID,
					ProductID: key.ProductID,
					Kind:      key.Kind,
					DeltaQty:  delta,
					Text: fmt.Sprintf("REDUCE: lower quantity by %.4f for %s",
						delta, plannedOrder.NeededBy.Format("2006-01-02")),
				})
			}
		}

		// Existing orders in this key never matched by any planned order.
		for i, existingOrder := range existingGroup {
			if !matched[i] {
				result.Messages = append(result.Messages, cancelMessage(existingOrder))
			}
		}
	}

	for _, msg := range result.Messages {
		if err := s.orders.SetActionMessage(ctx, msg.OrderID, msg.Text); err != nil {
			return nil, fmt.Errorf("failed to persist action message: %w", err)
		}
	}
	return result, nil
}

func newMessage(order *entities.PlannedOrder) dto.ActionMessage {
	return dto.ActionMessage{
		Type:      dto.ActionNew,
		OrderID:   order.ID,
		ProductID: order.ProductID,
		Kind:      order.Kind,
		DeltaQty:  order.Quantity,
		Text: fmt.Sprintf("NEW: create %s order of %.4f for %s",
			order.Kind, order.Quantity, order.NeededBy.Format("2006-01-02")),
	}
}

func cancelMessage(order *entities.PlannedOrder) dto.ActionMessage {
	return dto.ActionMessage{
		Type:      dto.ActionCancel,
		OrderID:   order.ID,
		ProductID: order.ProductID,
		Kind:      order.Kind,
		DeltaQty:  order.Quantity,
		Text: fmt.Sprintf("CANCEL: order of %.4f due %s no longer required",
			order.Quantity, order.NeededBy.Format("2006-01-02")),
	}
}

func groupOrders(orders []*entities.PlannedOrder) map[orderKey][]*entities.PlannedOrder {
	groups := make(map[orderKey][]*entities.PlannedOrder)
	for _, order := range orders {
		key := orderKey{ProductID: order.ProductID, Kind: order.Kind}
		groups[key] = append(groups[key], order)
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if !group[i].NeededBy.Equal(group[j].NeededBy) {
				return group[i].NeededBy.Before(group[j].NeededBy)
			}
			return group[i].ID.String() < group[j].ID.String()
		})
	}
	return groups
}

// sortedKeys merges both key sets into a deterministic order.
func sortedKeys(a, b map[orderKey][]*entities.PlannedOrder) []orderKey {
	seen := make(map[orderKey]bool)
	var keys []orderKey
	for key := range a {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key := range b {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductID != keys[j].ProductID {
			return keys[i].ProductID < keys[j].ProductID
		}
		return keys[i].Kind < keys[j].Kind
	})
	return keys
}

// dayDistance is the absolute difference between two dates in whole days.
func dayDistance(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Hours() / 24)
}
