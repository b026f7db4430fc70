package lotsizing

import "math"

// wwDemand is one positive-demand period with its original grid index.
type wwDemand struct {
	idx int
	qty float64
}

// wagnerWhitin finds the cost-optimal order grouping by dynamic programming
// over the positive-demand periods:
//
//	dp[j] = min over i<=j of dp[i-1] + K + sum_{k=i..j} h*q[k]*(idx[k]-idx[i])
//
// The holding term is updated incrementally while scanning i from j down:
// moving the order point down one demand period adds
// h * (demand after i) * (idx[i+1] - idx[i]).
func wagnerWhitin(net []float64, orderCost, holdingCost float64, constrain func(float64) float64) []float64 {
	receipts := make([]float64, len(net))

	var demands []wwDemand
	for idx, qty := range net {
		if qty > 0 {
			demands = append(demands, wwDemand{idx: idx, qty: qty})
		}
	}
	m := len(demands)
	if m == 0 {
		return receipts
	}

	dp := make([]float64, m+1)
	backtrack := make([]int, m)
	for j := 0; j < m; j++ {
		best := math.Inf(1)
		bestStart := j
		holding := 0.0
		qtyAfter := 0.0
		for i := j; i >= 0; i-- {
			if i < j {
				qtyAfter += demands[i+1].qty
				holding += holdingCost * qtyAfter * float64(demands[i+1].idx-demands[i].idx)
			}
			cost := dp[i] + orderCost + holding
			if cost < best {
				best = cost
				bestStart = i
			}
		}
		dp[j+1] = best
		backtrack[j] = bestStart
	}

	// Walk the groupings backwards: each group (i..j) becomes one order at
	// demand period i covering the group's total demand.
	for j := m - 1; j >= 0; {
		i := backtrack[j]
		total := 0.0
		for k := i; k <= j; k++ {
			total += demands[k].qty
		}
		receipts[demands[i].idx] = constrain(total)
		j = i - 1
	}
	return receipts
}
