// Package tcmb fetches the daily exchange rate bulletin published by the
// Central Bank of the Republic of Turkey.
package tcmb

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/walletledger/internal/domain"
)

// DefaultURL is the bulletin of the current business day.
const DefaultURL = "https://www.tcmb.gov.tr/kurlar/today.xml"

// bulletinDateLayout matches the Date attribute, e.g. "03/01/2024".
const bulletinDateLayout = "01/02/2006"

// Config configures a Client.
type Config struct {
	URL        string
	Timeout    time.Duration
	MaxRetries uint64
	// InitialInterval is the first retry delay. Zero uses 200ms.
	InitialInterval time.Duration
	// Location is used to interpret the bulletin date.
	Location *time.Location
}

// Client implements usecase.RateProvider over HTTP.
type Client struct {
	httpClient      *http.Client
	url             string
	maxRetries      uint64
	initialInterval time.Duration
	location        *time.Location
	logger          zerolog.Logger
}

// NewClient creates a new Client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Client{
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		url:             cfg.URL,
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.InitialInterval,
		location:        cfg.Location,
		logger:          logger.With().Str("component", "tcmb").Logger(),
	}
}

type bulletin struct {
	XMLName    xml.Name         `xml:"Tarih_Date"`
	Date       string           `xml:"Date,attr"`
	Currencies []bulletinRecord `xml:"Currency"`
}

type bulletinRecord struct {
	Code            string `xml:"CurrencyCode,attr"`
	Kod             string `xml:"Kod,attr"`
	Unit            string `xml:"Unit"`
	Name            string `xml:"CurrencyName"`
	ForexBuying     string `xml:"ForexBuying"`
	ForexSelling    string `xml:"ForexSelling"`
	BanknoteBuying  string `xml:"BanknoteBuying"`
	BanknoteSelling string `xml:"BanknoteSelling"`
}

// GetRates downloads and decodes the bulletin. Network failures and 5xx
// responses are retried with exponential backoff; anything else fails fast.
func (c *Client) GetRates(ctx context.Context) (*domain.RateSnapshot, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = 5 * time.Second

	var snapshot *domain.RateSnapshot
	operation := func() error {
		s, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		snapshot = s
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Dur("retry_in", wait).Msg("rate bulletin fetch failed, retrying")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (c *Client) fetch(ctx context.Context) (*domain.RateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("rate bulletin: unexpected status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("rate bulletin: unexpected status %d", resp.StatusCode))
	}

	snapshot, err := c.decode(resp.Body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	return snapshot, nil
}

func (c *Client) decode(r io.Reader) (*domain.RateSnapshot, error) {
	var doc bulletin
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoRateData
		}
		return nil, fmt.Errorf("decode rate bulletin: %w", err)
	}

	snapshot := &domain.RateSnapshot{
		Currencies: make([]domain.SnapshotCurrency, 0, len(doc.Currencies)),
	}
	if doc.Date != "" {
		date, err := time.ParseInLocation(bulletinDateLayout, strings.TrimSpace(doc.Date), c.location)
		if err != nil {
			return nil, fmt.Errorf("parse bulletin date %q: %w", doc.Date, err)
		}
		snapshot.Date = date
	}

	for _, rec := range doc.Currencies {
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			code = strings.TrimSpace(rec.Kod)
		}

		unit := 1
		if s := strings.TrimSpace(rec.Unit); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: unit %q for %s", domain.ErrInvalidRate, rec.Unit, code)
			}
			unit = n
		}

		snapshot.Currencies = append(snapshot.Currencies, domain.SnapshotCurrency{
			Code:            code,
			Name:            strings.TrimSpace(rec.Name),
			Unit:            unit,
			ForexBuying:     strings.TrimSpace(rec.ForexBuying),
			ForexSelling:    strings.TrimSpace(rec.ForexSelling),
			BanknoteBuying:  strings.TrimSpace(rec.BanknoteBuying),
			BanknoteSelling: strings.TrimSpace(rec.BanknoteSelling),
		})
	}

	return snapshot, nil
}
