package analysis

import (
	"fmt"
	"math"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

// Placeholder is rendered for missing or non-numeric values.
const Placeholder = "—"

// DisplayLeg is one side of a strike with every field pre-formatted.
type DisplayLeg struct {
	Price    string `json:"price"`
	IV       string `json:"iv"`
	Delta    string `json:"delta"`
	Gamma    string `json:"gamma"`
	Theta    string `json:"theta"`
	Vega     string `json:"vega"`
	OI       string `json:"oi"`
	ChangeOI string `json:"change_oi"`
}

// DisplayRow is a display-ready chain row.
type DisplayRow struct {
	Strike string     `json:"strike"`
	ATM    bool       `json:"atm"`
	Call   DisplayLeg `json:"call"`
	Put    DisplayLeg `json:"put"`
}

// FormatPrice renders prices, IV and greeks with two decimals.
// NaN and infinities render as the placeholder.
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatStrike renders a strike without decimals unless it needs them.
func FormatStrike(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatOI renders open-interest style integers with Indian magnitude
// suffixes: Cr for crore (1e7), L for lakh (1e5), K for thousand.
func FormatOI(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1e7:
		return fmt.Sprintf("%s%.2fCr", sign, v/1e7)
	case v >= 1e5:
		return fmt.Sprintf("%s%.2fL", sign, v/1e5)
	case v >= 1e3:
		return fmt.Sprintf("%s%.2fK", sign, v/1e3)
	}
	return fmt.Sprintf("%s%.0f", sign, v)
}

// FormatChangeOI renders a signed OI delta, keeping an explicit plus so
// build-up and unwinding read apart in the table.
func FormatChangeOI(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if v > 0 {
		return "+" + FormatOI(v)
	}
	return FormatOI(v)
}

// FormatSpot renders the underlying price, placeholder when absent.
func FormatSpot(spot *float64) string {
	if spot == nil {
		return Placeholder
	}
	return FormatPrice(*spot)
}

// FormatRatio renders ratios like PCR with two decimals.
func FormatRatio(v float64) string {
	return FormatPrice(v)
}

func formatLeg(leg interfaces.OptionLeg) DisplayLeg {
	return DisplayLeg{
		Price:    FormatPrice(leg.LastPrice),
		IV:       FormatPrice(leg.ImpliedVolatility),
		Delta:    FormatPrice(leg.Delta),
		Gamma:    FormatPrice(leg.Gamma),
		Theta:    FormatPrice(leg.Theta),
		Vega:     FormatPrice(leg.Vega),
		OI:       FormatOI(leg.OpenInterest),
		ChangeOI: FormatChangeOI(leg.ChangeOI),
	}
}

// FormatRows converts chain rows into display rows, marking the ATM strike.
func FormatRows(rows []interfaces.ChainRow, atm float64, atmOK bool) []DisplayRow {
	out := make([]DisplayRow, len(rows))
	for i, row := range rows {
		out[i] = DisplayRow{
			Strike: FormatStrike(row.Strike),
			ATM:    atmOK && row.Strike == atm,
			Call:   formatLeg(row.Call),
			Put:    formatLeg(row.Put),
		}
	}
	return out
}
