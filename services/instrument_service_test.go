package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

const scripMasterFixture = `SEM_SMST_SECURITY_ID,SM_SYMBOL_NAME,SEM_CUSTOM_SYMBOL,SEM_EXM_EXCH_ID,SEM_SEGMENT,SEM_EXCH_INSTRUMENT_TYPE,UNDERLYING_SYMBOL,SEM_LOT_UNITS
13,NIFTY,Nifty 50,NSE,I,INDEX,NIFTY,75
25,BANKNIFTY,Nifty Bank,NSE,I,INDEX,BANKNIFTY,35
2885,RELIANCE,Reliance Industries,NSE,E,EQ,RELIANCE,250
40001,NIFTY-Sep2026-24800-CE,NIFTY 24800 CE,NSE,D,OPTIDX,NIFTY,75
13,NIFTY,Nifty 50 dup,NSE,I,INDEX,NIFTY,75
`

// fakeStore collects saved instruments in memory.
type fakeStore struct {
	saved []*interfaces.Instrument
}

func (f *fakeStore) SaveInstruments(instruments []*interfaces.Instrument) error {
	f.saved = instruments
	return nil
}

func (f *fakeStore) SearchInstruments(query string, limit int) ([]*interfaces.Instrument, error) {
	var out []*interfaces.Instrument
	for _, inst := range f.saved {
		if strings.Contains(inst.Symbol, query) {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (f *fakeStore) ListInstruments(limit int) ([]*interfaces.Instrument, error) {
	return f.saved, nil
}

func (f *fakeStore) CountInstruments() (int64, error) {
	return int64(len(f.saved)), nil
}

func TestParseScripMaster(t *testing.T) {
	instruments, err := ParseScripMaster(strings.NewReader(scripMasterFixture))
	if err != nil {
		t.Fatalf("failed to parse scrip master: %v", err)
	}

	// Option rows (segment D) have no chain of their own and the
	// duplicate security id collapses; 2 indices + 1 equity remain.
	if len(instruments) != 3 {
		t.Fatalf("expected 3 instruments, got %d", len(instruments))
	}

	nifty := instruments[0]
	if nifty.SecurityID != "13" || nifty.Symbol != "NIFTY" {
		t.Fatalf("unexpected first instrument: %+v", nifty)
	}
	if nifty.InstrumentType != "INDEX" || nifty.Segment != "I" {
		t.Fatalf("unexpected type/segment: %+v", nifty)
	}
	if nifty.LotSize != 75 {
		t.Fatalf("expected lot size 75, got %d", nifty.LotSize)
	}

	reliance := instruments[2]
	if reliance.SecurityID != "2885" || reliance.InstrumentType != "EQ" {
		t.Fatalf("unexpected equity row: %+v", reliance)
	}
}

func TestInstrumentServiceRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(scripMasterFixture))
	}))
	defer server.Close()

	store := &fakeStore{}
	service := NewInstrumentService(store)
	service.csvURL = server.URL

	count, err := service.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 instruments, got %d", count)
	}
	if len(store.saved) != 3 {
		t.Fatalf("expected 3 saved instruments, got %d", len(store.saved))
	}
}

func TestInstrumentServiceRefreshUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	service := NewInstrumentService(&fakeStore{})
	service.csvURL = server.URL

	if _, err := service.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for upstream 404")
	}
}

func TestInstrumentServiceSearchEmptyQuery(t *testing.T) {
	service := NewInstrumentService(&fakeStore{})
	instruments, err := service.Search("  ", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(instruments) != 0 {
		t.Fatalf("expected no results for blank query, got %d", len(instruments))
	}
}

func TestToExchangeSegment(t *testing.T) {
	tests := []struct {
		instrumentType string
		segment        string
		expected       string
		ok             bool
	}{
		{"INDEX", "I", "IDX_I", true},
		{"EQ", "E", "NSE_FNO", true},
		{"OPTIDX", "D", "", false},
		{"FUTSTK", "D", "", false},
	}

	for _, test := range tests {
		got, ok := ToExchangeSegment(test.instrumentType, test.segment)
		if ok != test.ok || got != test.expected {
			t.Fatalf("ToExchangeSegment(%s, %s): expected (%q, %v), got (%q, %v)",
				test.instrumentType, test.segment, test.expected, test.ok, got, ok)
		}
	}
}
