package analysis

import (
	"math"
	"testing"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

func chainFromStrikes(strikes []float64) []interfaces.ChainRow {
	rows := make([]interfaces.ChainRow, len(strikes))
	for i, s := range strikes {
		rows[i] = interfaces.ChainRow{Strike: s}
	}
	return rows
}

func TestNearestStrike(t *testing.T) {
	strikes := []float64{24700, 24750, 24800, 24850, 24900}

	tests := []struct {
		name     string
		strikes  []float64
		spot     float64
		expected float64
		ok       bool
	}{
		{"mid chain", strikes, 24810, 24800, true},
		{"exact strike", strikes, 24750, 24750, true},
		{"below chain", strikes, 24000, 24700, true},
		{"above chain", strikes, 30000, 24900, true},
		{"tie resolves low", strikes, 24775, 24750, true},
		{"empty strikes", nil, 24810, 0, false},
		{"nan spot", strikes, math.NaN(), 0, false},
		{"inf spot", strikes, math.Inf(1), 0, false},
	}

	for _, test := range tests {
		actual, ok := NearestStrike(test.strikes, test.spot)
		if ok != test.ok {
			t.Fatalf("%s: expected ok=%v, got %v", test.name, test.ok, ok)
		}
		if ok && actual != test.expected {
			t.Fatalf("%s: expected ATM %f, got %f", test.name, test.expected, actual)
		}
	}
}

func TestNearestStrikeReturnsElement(t *testing.T) {
	strikes := []float64{100, 150, 220, 400}
	spots := []float64{-50, 0, 99.99, 125, 126, 310, 1e9}

	for _, spot := range spots {
		atm, ok := NearestStrike(strikes, spot)
		if !ok {
			t.Fatalf("spot %f: expected a strike", spot)
		}
		found := false
		for _, s := range strikes {
			if s == atm {
				found = true
			}
		}
		if !found {
			t.Fatalf("spot %f: ATM %f is not an element of the input", spot, atm)
		}
	}
}

func TestWindowRows(t *testing.T) {
	rows := chainFromStrikes([]float64{24700, 24750, 24800, 24850, 24900})

	got := WindowRows(rows, 24800, true, interfaces.WindowConfig{Step: 50, HalfWidth: 1})
	expected := []float64{24750, 24800, 24850}
	if len(got) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(got))
	}
	for i, s := range expected {
		if got[i].Strike != s {
			t.Fatalf("row %d: expected strike %f, got %f", i, s, got[i].Strike)
		}
	}
}

func TestWindowRowsShowFullIsIdentity(t *testing.T) {
	rows := chainFromStrikes([]float64{100, 150, 200, 250})

	got := WindowRows(rows, 150, true, interfaces.WindowConfig{Step: 50, HalfWidth: 1, ShowFull: true})
	if len(got) != len(rows) {
		t.Fatalf("expected identity, got %d of %d rows", len(got), len(rows))
	}
	for i := range rows {
		if got[i].Strike != rows[i].Strike {
			t.Fatalf("row %d changed under ShowFull", i)
		}
	}
}

func TestWindowRowsFailsOpen(t *testing.T) {
	rows := chainFromStrikes([]float64{100, 150, 200})

	tests := []struct {
		name  string
		atm   float64
		atmOK bool
		step  float64
	}{
		{"no atm", 0, false, 50},
		{"zero step", 150, true, 0},
		{"negative step", 150, true, -50},
		{"nan step", 150, true, math.NaN()},
		{"inf step", 150, true, math.Inf(1)},
	}

	for _, test := range tests {
		got := WindowRows(rows, test.atm, test.atmOK, interfaces.WindowConfig{Step: test.step, HalfWidth: 2})
		if len(got) != len(rows) {
			t.Fatalf("%s: expected full chain of %d rows, got %d", test.name, len(rows), len(got))
		}
	}
}

func TestWindowRowsEmptyChain(t *testing.T) {
	_, ok := NearestStrike(nil, 24810)
	if ok {
		t.Fatal("expected no ATM for empty strikes")
	}

	got := WindowRows(nil, 0, false, interfaces.WindowConfig{Step: 50, HalfWidth: 1})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}

func TestWindowRowsBounds(t *testing.T) {
	rows := chainFromStrikes([]float64{24600, 24650, 24700, 24750, 24800, 24850, 24900, 24950})
	atm := 24800.0
	cfg := interfaces.WindowConfig{Step: 50, HalfWidth: 2}

	got := WindowRows(rows, atm, true, cfg)
	if len(got) == 0 || len(got) > len(rows) {
		t.Fatalf("expected a non-empty subset, got %d rows", len(got))
	}
	lo := atm - float64(cfg.HalfWidth)*cfg.Step
	hi := atm + float64(cfg.HalfWidth)*cfg.Step
	for _, row := range got {
		if row.Strike < lo || row.Strike > hi {
			t.Fatalf("strike %f outside [%f, %f]", row.Strike, lo, hi)
		}
	}
}

func TestInferStep(t *testing.T) {
	tests := []struct {
		name     string
		strikes  []float64
		expected float64
	}{
		{"uniform", []float64{24700, 24750, 24800}, 50},
		{"mixed spacing", []float64{100, 200, 250, 350}, 50},
		{"single strike", []float64{24700}, 0},
		{"empty", nil, 0},
		{"duplicates ignored", []float64{100, 100, 150}, 50},
	}

	for _, test := range tests {
		if got := InferStep(test.strikes); got != test.expected {
			t.Fatalf("%s: expected step %f, got %f", test.name, test.expected, got)
		}
	}
}
