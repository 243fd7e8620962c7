package analysis

import (
	"testing"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

func TestSummarize(t *testing.T) {
	rows := []interfaces.ChainRow{
		{Strike: 24700, Call: interfaces.OptionLeg{OpenInterest: 100}, Put: interfaces.OptionLeg{OpenInterest: 400}},
		{Strike: 24750, Call: interfaces.OptionLeg{OpenInterest: 300}, Put: interfaces.OptionLeg{OpenInterest: 200}},
		{Strike: 24800, Call: interfaces.OptionLeg{OpenInterest: 600}, Put: interfaces.OptionLeg{OpenInterest: 150}},
	}

	summary := Summarize(rows)
	if summary.TotalCallOI != 1000 {
		t.Fatalf("expected total call OI 1000, got %f", summary.TotalCallOI)
	}
	if summary.TotalPutOI != 750 {
		t.Fatalf("expected total put OI 750, got %f", summary.TotalPutOI)
	}
	if summary.PCR != 0.75 {
		t.Fatalf("expected PCR 0.75, got %f", summary.PCR)
	}
}

func TestSummarizeZeroCallOI(t *testing.T) {
	rows := []interfaces.ChainRow{
		{Strike: 24700, Put: interfaces.OptionLeg{OpenInterest: 500}},
	}

	summary := Summarize(rows)
	if summary.PCR != 0 {
		t.Fatalf("expected PCR 0 with no call OI, got %f", summary.PCR)
	}
}

func TestMaxPain(t *testing.T) {
	// Heavy put OI at 24800 drags writers' pain down at the top of the
	// chain; heavy call OI at 24700 does the same at the bottom. The
	// minimum payout sits at the middle strike.
	rows := []interfaces.ChainRow{
		{Strike: 24700, Call: interfaces.OptionLeg{OpenInterest: 1000}, Put: interfaces.OptionLeg{OpenInterest: 100}},
		{Strike: 24750, Call: interfaces.OptionLeg{OpenInterest: 500}, Put: interfaces.OptionLeg{OpenInterest: 500}},
		{Strike: 24800, Call: interfaces.OptionLeg{OpenInterest: 100}, Put: interfaces.OptionLeg{OpenInterest: 1000}},
	}

	if got := MaxPain(rows); got != 24750 {
		t.Fatalf("expected max pain 24750, got %f", got)
	}
}

func TestMaxPainEmptyChain(t *testing.T) {
	if got := MaxPain(nil); got != 0 {
		t.Fatalf("expected 0 for empty chain, got %f", got)
	}
}

func TestMaxPainSingleStrike(t *testing.T) {
	rows := []interfaces.ChainRow{
		{Strike: 24800, Call: interfaces.OptionLeg{OpenInterest: 100}, Put: interfaces.OptionLeg{OpenInterest: 100}},
	}
	if got := MaxPain(rows); got != 24800 {
		t.Fatalf("expected 24800, got %f", got)
	}
}
