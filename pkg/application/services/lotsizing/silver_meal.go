package lotsizing

// silverMeal aggregates consecutive demand periods into one order while the
// average cost per covered period strictly decreases:
//
//	avg(i..j) = (K + sum h*q[k]*(k-i)) / periodsCovered
//
// Zero-demand periods are skipped (they never trigger a stop) but still
// stretch the holding distance of later demands.
func silverMeal(net []float64, orderCost, holdingCost float64, constrain func(float64) float64) []float64 {
	receipts := make([]float64, len(net))
	n := len(net)

	i := 0
	for i < n {
		if net[i] <= 0 {
			i++
			continue
		}

		lotQty := net[i]
		holding := 0.0
		covered := 1
		avg := orderCost // K / 1 period
		last := i

		for j := i + 1; j < n; j++ {
			if net[j] <= 0 {
				continue
			}
			candidateHolding := holding + holdingCost*net[j]*float64(j-i)
			candidateAvg := (orderCost + candidateHolding) / float64(covered+1)
			if candidateAvg >= avg {
				break
			}
			holding = candidateHolding
			avg = candidateAvg
			covered++
			lotQty += net[j]
			last = j
		}

		receipts[i] = constrain(lotQty)
		i = last + 1
	}
	return receipts
}
