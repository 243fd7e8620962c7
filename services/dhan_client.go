package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

const (
	dhanSandboxBaseURL = "https://sandbox.dhan.co/v2"
	dhanLiveBaseURL    = "https://api.dhan.co/v2"
)

// DhanClient talks to the DhanHQ v2 option chain API
type DhanClient struct {
	baseURL     string
	accessToken string
	clientID    string
	logger      *logrus.Logger
	client      *http.Client
}

// NewDhanClient creates a Dhan API client. env is "SANDBOX" or "LIVE";
// anything else falls back to sandbox.
func NewDhanClient(env, accessToken, clientID string) *DhanClient {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	baseURL := dhanSandboxBaseURL
	if env == "LIVE" {
		baseURL = dhanLiveBaseURL
	}

	return &DhanClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		clientID:    clientID,
		logger:      logger,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// dhanChainRequest is the official option chain request body
type dhanChainRequest struct {
	UnderlyingScrip int    `json:"UnderlyingScrip"`
	UnderlyingSeg   string `json:"UnderlyingSeg"`
	Expiry          string `json:"Expiry,omitempty"`
}

// dhanGreeks holds the per-leg greeks as returned by Dhan
type dhanGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// dhanLeg is one ce/pe entry of the oc strike map
type dhanLeg struct {
	Greeks            dhanGreeks `json:"greeks"`
	ImpliedVolatility float64    `json:"implied_volatility"`
	LastPrice         float64    `json:"last_price"`
	OI                float64    `json:"oi"`
	PreviousOI        float64    `json:"previous_oi"`
	Volume            float64    `json:"volume"`
	TopBidPrice       float64    `json:"top_bid_price"`
	TopAskPrice       float64    `json:"top_ask_price"`
}

// dhanStrike groups both legs of one strike
type dhanStrike struct {
	CE *dhanLeg `json:"ce"`
	PE *dhanLeg `json:"pe"`
}

// dhanChainResponse is the official option chain response. The oc map is
// keyed by strike rendered as "25500.000000".
type dhanChainResponse struct {
	Data struct {
		LastPrice float64               `json:"last_price"`
		OC        map[string]dhanStrike `json:"oc"`
	} `json:"data"`
	Status string `json:"status"`
}

// dhanExpiryResponse is the expirylist response
type dhanExpiryResponse struct {
	Data   []string `json:"data"`
	Status string   `json:"status"`
}

func (d *DhanClient) post(ctx context.Context, path string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("access-token", d.accessToken)
	req.Header.Set("client-id", d.clientID)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Dhan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetOptionChain fetches and normalizes the option chain for one expiry
func (d *DhanClient) GetOptionChain(ctx context.Context, scrip int, segment, expiry string) (*interfaces.ChainPayload, error) {
	d.logger.WithFields(logrus.Fields{
		"scrip":   scrip,
		"segment": segment,
		"expiry":  expiry,
	}).Debug("Fetching option chain")

	var chainResp dhanChainResponse
	body := dhanChainRequest{UnderlyingScrip: scrip, UnderlyingSeg: segment, Expiry: expiry}
	if err := d.post(ctx, "/optionchain", body, &chainResp); err != nil {
		return nil, err
	}

	payload := normalizeChain(&chainResp)
	d.logger.WithField("rows", len(payload.Chain)).Debug("Fetched option chain")
	return payload, nil
}

// GetExpiryList fetches the available expiry dates for an underlying
func (d *DhanClient) GetExpiryList(ctx context.Context, scrip int, segment string) ([]string, error) {
	var expiryResp dhanExpiryResponse
	body := dhanChainRequest{UnderlyingScrip: scrip, UnderlyingSeg: segment}
	if err := d.post(ctx, "/optionchain/expirylist", body, &expiryResp); err != nil {
		return nil, err
	}

	expiries := expiryResp.Data
	sort.Strings(expiries)
	return expiries, nil
}

func normalizeLeg(leg *dhanLeg) interfaces.OptionLeg {
	if leg == nil {
		return interfaces.OptionLeg{}
	}

	oi := leg.OI
	if oi < 0 {
		oi = 0
	}
	prevOI := leg.PreviousOI
	if prevOI < 0 {
		prevOI = 0
	}

	return interfaces.OptionLeg{
		LastPrice:         leg.LastPrice,
		ImpliedVolatility: leg.ImpliedVolatility,
		Delta:             leg.Greeks.Delta,
		Gamma:             leg.Greeks.Gamma,
		Theta:             leg.Greeks.Theta,
		Vega:              leg.Greeks.Vega,
		OpenInterest:      oi,
		ChangeOI:          oi - prevOI,
		Volume:            leg.Volume,
		TopBidPrice:       leg.TopBidPrice,
		TopAskPrice:       leg.TopAskPrice,
	}
}

// normalizeChain flattens the wire-format strike map into rows sorted
// ascending by strike. Map iteration order is random, so sorting here is
// what upholds the ordering invariant downstream code relies on.
func normalizeChain(resp *dhanChainResponse) *interfaces.ChainPayload {
	rows := make([]interfaces.ChainRow, 0, len(resp.Data.OC))
	for strikeStr, legs := range resp.Data.OC {
		strike, err := strconv.ParseFloat(strikeStr, 64)
		if err != nil {
			continue
		}
		rows = append(rows, interfaces.ChainRow{
			Strike: strike,
			Call:   normalizeLeg(legs.CE),
			Put:    normalizeLeg(legs.PE),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Strike < rows[j].Strike
	})

	payload := &interfaces.ChainPayload{Chain: rows}
	if resp.Data.LastPrice > 0 {
		spot := resp.Data.LastPrice
		payload.Spot = &spot
	}
	return payload
}
