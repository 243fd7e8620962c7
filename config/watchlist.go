package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WatchlistEntry is one preset underlying on the dashboard.
type WatchlistEntry struct {
	Name            string  `yaml:"name" json:"name"`
	SecurityID      int     `yaml:"security_id" json:"security_id"`
	ExchangeSegment string  `yaml:"exchange_segment" json:"exchange_segment"`
	StrikeStep      float64 `yaml:"strike_step" json:"strike_step"`
}

// Watchlist holds the preset underlyings and default window settings.
type Watchlist struct {
	DefaultWindowSize int              `yaml:"default_window_size" json:"default_window_size"`
	Underlyings       []WatchlistEntry `yaml:"underlyings" json:"underlyings"`
}

// LoadWatchlist reads the watchlist YAML. A missing file returns an
// empty watchlist rather than an error so the service starts without one.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Watchlist{DefaultWindowSize: 5}, nil
		}
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %w", err)
	}
	if wl.DefaultWindowSize < 1 {
		wl.DefaultWindowSize = 5
	}
	return &wl, nil
}
