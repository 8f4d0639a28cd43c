package finnhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"KabuCard/internal/domain/models"
	drepo "KabuCard/internal/domain/repository"
	xhttp "KabuCard/pkg/http"
)

// Config holds the Finnhub REST endpoint and credentials.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements SnapshotProvider with the quote and profile2 endpoints.
// Finnhub has no business summary, so Summary is always nil.
type Client struct {
	cfg  Config
	http *xhttp.Client
}

// New creates a Finnhub snapshot provider.
func New(cfg Config, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(cfg.Timeout)}, opts...)
	return &Client{cfg: cfg, http: xhttp.NewClient(opts...)}
}

// Fetch reads the company profile, then the quote.
func (c *Client) Fetch(ctx context.Context, symbol string) (*models.StockSnapshot, error) {
	var profile profileResponse
	if err := c.get(ctx, "/api/v1/stock/profile2", symbol, &profile); err != nil {
		return nil, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}
	if profile.Name == "" && profile.Ticker == "" {
		return nil, fmt.Errorf("finnhub profile %s: %w", symbol, drepo.ErrSnapshotNotFound)
	}

	var quote quoteResponse
	if err := c.get(ctx, "/api/v1/quote", symbol, &quote); err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	snap := toSnapshot(symbol, &profile, &quote)
	snap.FetchedAt = time.Now()
	return snap, nil
}

func (c *Client) get(ctx context.Context, path, symbol string, out any) error {
	return c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         strings.TrimRight(c.cfg.BaseURL, "/") + path,
		QueryParams: map[string][]string{"symbol": {symbol}},
		Headers: map[string]string{
			"Accept":          "application/json",
			"X-Finnhub-Token": c.cfg.APIKey,
		},
	}, out)
}

func toSnapshot(symbol string, p *profileResponse, q *quoteResponse) *models.StockSnapshot {
	s := &models.StockSnapshot{Symbol: symbol, Currency: p.Currency}
	if p.Ticker != "" {
		s.Symbol = p.Ticker
	}
	s.Name = optString(p.Name)
	s.Industry = optString(p.Industry)
	s.Website = optString(p.WebURL)
	if p.MarketCap > 0 {
		mc := p.MarketCap * 1e6
		s.MarketCap = &mc
	}
	if q.Current > 0 {
		cur := q.Current
		s.CurrentPrice = &cur
	}
	if q.PreviousClose > 0 {
		pc := q.PreviousClose
		s.PreviousClose = &pc
	}
	return s
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

var _ drepo.SnapshotProvider = (*Client)(nil)
