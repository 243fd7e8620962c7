package analysis

import (
	"math"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

// Summarize aggregates OI totals, the put-call ratio and the max pain
// strike for a chain. PCR is 0 when no call OI is outstanding.
func Summarize(rows []interfaces.ChainRow) interfaces.ChainSummary {
	var summary interfaces.ChainSummary
	for _, row := range rows {
		summary.TotalCallOI += row.Call.OpenInterest
		summary.TotalPutOI += row.Put.OpenInterest
	}
	if summary.TotalCallOI > 0 {
		summary.PCR = summary.TotalPutOI / summary.TotalCallOI
	}
	summary.MaxPain = MaxPain(rows)
	return summary
}

// MaxPain returns the strike minimizing the aggregate payout option
// writers would owe at expiry. For each candidate settlement strike S the
// pain is sum(callOI * max(0, S-k)) + sum(putOI * max(0, k-S)) over all
// strikes k; ties resolve to the lowest strike. Returns 0 for an empty
// chain.
func MaxPain(rows []interfaces.ChainRow) float64 {
	if len(rows) == 0 {
		return 0
	}

	best := rows[0].Strike
	bestPain := math.Inf(1)
	for _, candidate := range rows {
		pain := 0.0
		for _, row := range rows {
			if intrinsic := candidate.Strike - row.Strike; intrinsic > 0 {
				pain += row.Call.OpenInterest * intrinsic
			}
			if intrinsic := row.Strike - candidate.Strike; intrinsic > 0 {
				pain += row.Put.OpenInterest * intrinsic
			}
		}
		if pain < bestPain {
			best = candidate.Strike
			bestPain = pain
		}
	}
	return best
}
