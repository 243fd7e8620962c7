package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Bhatter1986/Options-analysis/analysis"
	"github.com/Bhatter1986/Options-analysis/interfaces"
)

// ChainService turns raw upstream chains into display-ready views.
// Each refresh is a stateless transformation of the latest fetch; the
// only state kept is the last payload, cached for the AI summary.
type ChainService struct {
	provider interfaces.ChainProvider
	cache    interfaces.PayloadCache
	logger   *logrus.Logger
}

// NewChainService creates a new chain service. cache may be nil, in which
// case the AI summary has no chain context to fall back on.
func NewChainService(provider interfaces.ChainProvider, cache interfaces.PayloadCache) *ChainService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &ChainService{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// SummaryBadges carries the formatted header values shown above the table.
type SummaryBadges struct {
	Spot        string `json:"spot"`
	PCR         string `json:"pcr"`
	MaxPain     string `json:"max_pain"`
	TotalCallOI string `json:"total_call_oi"`
	TotalPutOI  string `json:"total_put_oi"`
}

// ChainView is the display-ready result of one refresh.
type ChainView struct {
	Spot      *float64                `json:"spot"`
	ATMStrike *float64                `json:"atm_strike"`
	Summary   interfaces.ChainSummary `json:"summary"`
	Badges    SummaryBadges           `json:"badges"`
	Rows      []analysis.DisplayRow   `json:"rows"`
	Expiry    string                  `json:"expiry"`
	Count     int                     `json:"count"`
}

// Refresh fetches the chain for one expiry, reduces it to the configured
// window and formats every row. The full (un-windowed) payload is cached
// so the AI summary can reuse the analyst's last view.
func (s *ChainService) Refresh(ctx context.Context, scrip int, segment, expiry string, cfg interfaces.WindowConfig) (*ChainView, error) {
	payload, err := s.provider.GetOptionChain(ctx, scrip, segment, expiry)
	if err != nil {
		return nil, fmt.Errorf("chain refresh failed: %w", err)
	}

	payload.Summary = analysis.Summarize(payload.Chain)

	if s.cache != nil {
		key := cacheKey(scrip, segment, expiry)
		if err := s.cache.SetPayload(ctx, key, payload); err != nil {
			// Cache loss only degrades the AI context, never the table.
			s.logger.WithError(err).Warn("Failed to cache chain payload")
		}
	}

	strikes := analysis.Strikes(payload.Chain)
	spot := 0.0
	if payload.Spot != nil {
		spot = *payload.Spot
	}
	atm, atmOK := NearestATM(strikes, payload.Spot)

	if cfg.Step <= 0 {
		cfg.Step = analysis.InferStep(strikes)
	}

	windowed := analysis.WindowRows(payload.Chain, atm, atmOK, cfg)

	view := &ChainView{
		Spot:    payload.Spot,
		Summary: payload.Summary,
		Badges: SummaryBadges{
			Spot:        analysis.FormatSpot(payload.Spot),
			PCR:         analysis.FormatRatio(payload.Summary.PCR),
			MaxPain:     analysis.FormatStrike(payload.Summary.MaxPain),
			TotalCallOI: analysis.FormatOI(payload.Summary.TotalCallOI),
			TotalPutOI:  analysis.FormatOI(payload.Summary.TotalPutOI),
		},
		Rows:   analysis.FormatRows(windowed, atm, atmOK),
		Expiry: expiry,
		Count:  len(windowed),
	}
	if atmOK {
		view.ATMStrike = &atm
	}

	s.logger.WithFields(logrus.Fields{
		"scrip":  scrip,
		"expiry": expiry,
		"spot":   spot,
		"rows":   view.Count,
	}).Debug("Chain refreshed")

	return view, nil
}

// Expiries fetches the available expiry dates for an underlying.
func (s *ChainService) Expiries(ctx context.Context, scrip int, segment string) ([]string, error) {
	expiries, err := s.provider.GetExpiryList(ctx, scrip, segment)
	if err != nil {
		return nil, fmt.Errorf("expiry list failed: %w", err)
	}
	return expiries, nil
}

// LastPayload returns the most recently cached chain payload, if any.
func (s *ChainService) LastPayload(ctx context.Context) (*interfaces.ChainPayload, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("no payload cache configured")
	}
	key, err := s.cache.LastKey(ctx)
	if err != nil {
		return nil, err
	}
	return s.cache.GetPayload(ctx, key)
}

// NearestATM resolves the ATM strike from an optional spot.
func NearestATM(strikes []float64, spot *float64) (float64, bool) {
	if spot == nil {
		return 0, false
	}
	return analysis.NearestStrike(strikes, *spot)
}

func cacheKey(scrip int, segment, expiry string) string {
	return fmt.Sprintf("optionchain:%d:%s:%s", scrip, segment, expiry)
}
