package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Bhatter1986/Options-analysis/interfaces"
)

// detailedCSVURL is Dhan's public scrip master dump. No auth needed.
const detailedCSVURL = "https://images.dhan.co/api-data/api-scrip-master-detailed.csv"

// InstrumentService maintains the local instrument catalog from the Dhan
// scrip master CSV.
type InstrumentService struct {
	store  interfaces.InstrumentStore
	logger *logrus.Logger
	client *http.Client
	csvURL string
}

// NewInstrumentService creates a new instrument service
func NewInstrumentService(store interfaces.InstrumentStore) *InstrumentService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &InstrumentService{
		store:  store,
		logger: logger,
		client: &http.Client{Timeout: 60 * time.Second},
		csvURL: detailedCSVURL,
	}
}

// Refresh downloads the scrip master and replaces the local catalog with
// every instrument that maps to a known option chain segment. Returns the
// number of instruments stored.
func (s *InstrumentService) Refresh(ctx context.Context) (int, error) {
	s.logger.WithField("url", s.csvURL).Info("Refreshing instrument catalog")

	req, err := http.NewRequestWithContext(ctx, "GET", s.csvURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to download scrip master: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	instruments, err := ParseScripMaster(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse scrip master: %w", err)
	}

	if err := s.store.SaveInstruments(instruments); err != nil {
		return 0, fmt.Errorf("failed to save instruments: %w", err)
	}

	s.logger.WithField("count", len(instruments)).Info("Instrument catalog refreshed")
	return len(instruments), nil
}

// Search finds catalog entries matching a symbol or display name fragment
func (s *InstrumentService) Search(query string, limit int) ([]*interfaces.Instrument, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*interfaces.Instrument{}, nil
	}
	return s.store.SearchInstruments(query, limit)
}

// List returns the catalog up to limit entries
func (s *InstrumentService) List(limit int) ([]*interfaces.Instrument, error) {
	return s.store.ListInstruments(limit)
}

// Count returns the catalog size
func (s *InstrumentService) Count() (int64, error) {
	return s.store.CountInstruments()
}

// ParseScripMaster reads the Dhan detailed scrip master CSV. Column names
// differ between dump versions, so each field is resolved against a list
// of known aliases. Rows without a known segment mapping are skipped.
func ParseScripMaster(r io.Reader) ([]*interfaces.Instrument, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	colmap := make(map[string]int, len(header))
	for i, name := range header {
		colmap[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	pick := func(record []string, names ...string) string {
		for _, name := range names {
			if i, ok := colmap[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
		}
		return ""
	}

	seen := make(map[string]bool)
	var instruments []*interfaces.Instrument

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are skipped, not fatal; the dump
			// occasionally carries stray quoting.
			continue
		}

		securityID := pick(record, "SEM_SMST_SECURITY_ID", "SECURITY_ID", "SM_SECURITY_ID")
		if securityID == "" || seen[securityID] {
			continue
		}

		segment := strings.ToUpper(pick(record, "SEM_SEGMENT", "SEGMENT"))
		instrumentType := strings.ToUpper(pick(record, "SEM_EXCH_INSTRUMENT_TYPE", "INSTRUMENT_TYPE"))
		if _, ok := ToExchangeSegment(instrumentType, segment); !ok {
			continue
		}

		lotSize := 0
		if lot := pick(record, "SEM_LOT_UNITS", "LOT_SIZE"); lot != "" {
			if f, err := strconv.ParseFloat(lot, 64); err == nil {
				lotSize = int(f)
			}
		}

		instruments = append(instruments, &interfaces.Instrument{
			SecurityID:       securityID,
			Symbol:           pick(record, "SM_SYMBOL_NAME", "SYMBOL_NAME", "SEM_TRADING_SYMBOL"),
			DisplayName:      pick(record, "SEM_CUSTOM_SYMBOL", "DISPLAY_NAME"),
			Exchange:         strings.ToUpper(pick(record, "SEM_EXM_EXCH_ID", "EXCH_ID")),
			Segment:          segment,
			InstrumentType:   instrumentType,
			UnderlyingSymbol: strings.ToUpper(pick(record, "UNDERLYING_SYMBOL")),
			LotSize:          lotSize,
		})
		seen[securityID] = true
	}

	return instruments, nil
}
