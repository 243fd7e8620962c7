package analysis

import (
	"math"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

// NearestStrike returns the strike closest to spot. Ties resolve to the
// first (lowest) strike under a strict < comparison. The second return is
// false when strikes is empty or spot is not a finite number.
func NearestStrike(strikes []float64, spot float64) (float64, bool) {
	if len(strikes) == 0 || math.IsNaN(spot) || math.IsInf(spot, 0) {
		return 0, false
	}

	best := strikes[0]
	bestDist := math.Abs(strikes[0] - spot)
	for _, s := range strikes[1:] {
		if d := math.Abs(s - spot); d < bestDist {
			best = s
			bestDist = d
		}
	}

	return best, true
}

// InferStep returns the smallest positive gap between consecutive strikes,
// which for exchange-listed chains is the instrument's strike spacing.
// Returns 0 when fewer than two distinct strikes are present.
func InferStep(strikes []float64) float64 {
	step := 0.0
	for i := 1; i < len(strikes); i++ {
		gap := strikes[i] - strikes[i-1]
		if gap > 0 && (step == 0 || gap < step) {
			step = gap
		}
	}
	return step
}

// WindowRows reduces the chain to the rows within HalfWidth steps of the
// ATM strike, bounds inclusive. ShowFull bypasses the reduction. A missing
// ATM or a non-finite/non-positive step fails open and returns the full
// chain rather than hiding data on bad input.
func WindowRows(rows []interfaces.ChainRow, atm float64, atmOK bool, cfg interfaces.WindowConfig) []interfaces.ChainRow {
	if cfg.ShowFull {
		return rows
	}
	if !atmOK || cfg.Step <= 0 || math.IsNaN(cfg.Step) || math.IsInf(cfg.Step, 0) {
		return rows
	}

	width := float64(cfg.HalfWidth)
	if cfg.HalfWidth < 1 {
		width = 1
	}
	lo := atm - width*cfg.Step
	hi := atm + width*cfg.Step

	out := make([]interfaces.ChainRow, 0, 2*int(width)+1)
	for _, row := range rows {
		if row.Strike >= lo && row.Strike <= hi {
			out = append(out, row)
		}
	}
	return out
}

// Strikes extracts the ordered strike values of a chain.
func Strikes(rows []interfaces.ChainRow) []float64 {
	strikes := make([]float64, len(rows))
	for i, row := range rows {
		strikes[i] = row.Strike
	}
	return strikes
}
