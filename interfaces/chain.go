package interfaces

import (
	"context"
)

// OptionLeg holds the market data for one side (call or put) of a strike.
type OptionLeg struct {
	LastPrice         float64 `json:"last_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	Delta             float64 `json:"delta"`
	Gamma             float64 `json:"gamma"`
	Theta             float64 `json:"theta"`
	Vega              float64 `json:"vega"`
	OpenInterest      float64 `json:"oi"`        // clamped to >= 0
	ChangeOI          float64 `json:"change_oi"` // oi - previous_oi, signed
	Volume            float64 `json:"volume"`
	TopBidPrice       float64 `json:"top_bid_price"`
	TopAskPrice       float64 `json:"top_ask_price"`
}

// ChainRow is one strike of the option chain with both legs.
type ChainRow struct {
	Strike float64   `json:"strike"`
	Call   OptionLeg `json:"call"`
	Put    OptionLeg `json:"put"`
}

// ChainSummary carries the per-expiry sentiment badges.
type ChainSummary struct {
	PCR         float64 `json:"pcr"`
	MaxPain     float64 `json:"max_pain"`
	TotalCallOI float64 `json:"total_call_oi"`
	TotalPutOI  float64 `json:"total_put_oi"`
}

// ChainPayload is the normalized result of one chain refresh.
// Chain is sorted ascending by strike. Spot is nil when the
// upstream response carried no underlying price.
type ChainPayload struct {
	Spot    *float64     `json:"spot"`
	Summary ChainSummary `json:"summary"`
	Chain   []ChainRow   `json:"chain"`
}

// WindowConfig controls how the chain is reduced for display.
type WindowConfig struct {
	Step      float64 // strike spacing of the instrument
	HalfWidth int     // strikes kept on each side of ATM, >= 1
	ShowFull  bool    // bypass windowing entirely
}

// Instrument is one row of the scrip master catalog.
type Instrument struct {
	SecurityID       string  `json:"security_id"`
	Symbol           string  `json:"symbol"`
	DisplayName      string  `json:"display_name"`
	Exchange         string  `json:"exchange"`
	Segment          string  `json:"segment"`
	InstrumentType   string  `json:"instrument_type"`
	UnderlyingSymbol string  `json:"underlying_symbol"`
	LotSize          int     `json:"lot_size"`
	StrikeStep       float64 `json:"strike_step"`
}

// ChainProvider defines the upstream option chain boundary.
type ChainProvider interface {
	GetOptionChain(ctx context.Context, scrip int, segment, expiry string) (*ChainPayload, error)
	GetExpiryList(ctx context.Context, scrip int, segment string) ([]string, error)
}

// InstrumentStore defines persistence for the instrument catalog.
type InstrumentStore interface {
	SaveInstruments(instruments []*Instrument) error
	SearchInstruments(query string, limit int) ([]*Instrument, error)
	ListInstruments(limit int) ([]*Instrument, error)
	CountInstruments() (int64, error)
}

// PayloadCache holds the last fetched chain payload for reuse.
type PayloadCache interface {
	SetPayload(ctx context.Context, key string, payload *ChainPayload) error
	GetPayload(ctx context.Context, key string) (*ChainPayload, error)
	LastKey(ctx context.Context) (string, error)
}
