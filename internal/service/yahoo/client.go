package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"KabuCard/internal/domain/models"
	drepo "KabuCard/internal/domain/repository"
	xhttp "KabuCard/pkg/http"
)

// Config holds the endpoints of the Yahoo Finance API.
type Config struct {
	BaseURL   string
	CookieURL string // empty skips the session bootstrap
	CrumbURL  string
	UserAgent string
	Timeout   time.Duration
}

// Client implements SnapshotProvider on top of the quoteSummary endpoint.
type Client struct {
	cfg  Config
	http *xhttp.Client

	mu    sync.Mutex
	crumb string
}

// New creates a Yahoo snapshot provider.
func New(cfg Config, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{
		xhttp.WithTimeout(cfg.Timeout),
		xhttp.WithUserAgent(cfg.UserAgent),
		xhttp.WithCookieJar(),
	}, opts...)
	return &Client{
		cfg:  cfg,
		http: xhttp.NewClient(opts...),
	}
}

// Fetch reads one snapshot. There is no retry: a failed call fails the render.
func (c *Client) Fetch(ctx context.Context, symbol string) (*models.StockSnapshot, error) {
	crumb, err := c.session(ctx)
	if err != nil {
		return nil, fmt.Errorf("yahoo session: %w", err)
	}

	params := map[string][]string{"modules": {strings.Join(summaryModules, ",")}}
	if crumb != "" {
		params["crumb"] = []string{crumb}
	}

	var resp summaryResponse
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.cfg.BaseURL + "/v10/finance/quoteSummary/" + url.PathEscape(symbol),
		QueryParams: params,
		Headers:     map[string]string{"Accept": "application/json"},
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			switch se.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				c.resetSession()
			case http.StatusNotFound:
				return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, drepo.ErrSnapshotNotFound)
			}
		}
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, err)
	}

	if e := resp.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %s: %w", symbol, e.Description, drepo.ErrSnapshotNotFound)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quoteSummary %s: empty result: %w", symbol, drepo.ErrSnapshotNotFound)
	}

	snap := toSnapshot(symbol, &resp.QuoteSummary.Result[0])
	snap.FetchedAt = time.Now()
	return snap, nil
}

// session returns the crumb, bootstrapping cookies on first use.
func (c *Client) session(ctx context.Context) (string, error) {
	if c.cfg.CookieURL == "" || c.cfg.CrumbURL == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.crumb != "" {
		return c.crumb, nil
	}

	// The cookie endpoint answers 404 but still sets the session cookie.
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{Method: xhttp.MethodGet, URL: c.cfg.CookieURL})
	if err != nil {
		return "", fmt.Errorf("cookie: %w", err)
	}
	_ = resp.Body.Close()

	var crumb string
	if err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{Method: xhttp.MethodGet, URL: c.cfg.CrumbURL}, &crumb); err != nil {
		return "", fmt.Errorf("crumb: %w", err)
	}
	crumb = strings.TrimSpace(crumb)
	if crumb == "" || strings.ContainsAny(crumb, "<{ ") {
		return "", fmt.Errorf("crumb: unexpected body %q", crumb)
	}
	c.crumb = crumb
	return crumb, nil
}

func (c *Client) resetSession() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

func toSnapshot(symbol string, r *summaryResult) *models.StockSnapshot {
	s := &models.StockSnapshot{Symbol: symbol}

	if p := r.Price; p != nil {
		if p.Symbol != "" {
			s.Symbol = p.Symbol
		}
		s.Currency = p.Currency
		s.Name = optString(p.LongName)
		s.CurrentPrice = p.RegularMarketPrice.value()
		s.PreviousClose = p.RegularMarketPreviousClose.value()
		s.MarketCap = p.MarketCap.value()
	}
	if d := r.SummaryDetail; d != nil {
		if s.PreviousClose == nil {
			s.PreviousClose = d.PreviousClose.value()
		}
		if s.MarketCap == nil {
			s.MarketCap = d.MarketCap.value()
		}
	}
	if a := r.AssetProfile; a != nil {
		s.Industry = optString(a.Industry)
		s.Website = optString(a.Website)
		s.Summary = optString(a.LongBusinessSummary)
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
