package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	drepo "KabuCard/internal/domain/repository"
)

func newFakeFinnhub(t *testing.T, profile, quote string, status int) *Client {
	t.Helper()
	mux := http.NewServeMux()
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Finnhub-Token") != "key" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if r.URL.Query().Get("symbol") != "7186.T" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if status != http.StatusOK {
				w.WriteHeader(status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			next(w, r)
		}
	}
	mux.HandleFunc("/api/v1/stock/profile2", auth(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(profile))
	}))
	mux.HandleFunc("/api/v1/quote", auth(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(quote))
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/", APIKey: "key", Timeout: 2 * time.Second})
}

func TestFetchMapsSnapshot(t *testing.T) {
	c := newFakeFinnhub(t,
		`{"ticker":"7186.T","name":"Yokohama Financial Group","currency":"JPY","finnhubIndustry":"Banking","weburl":"https://www.yokohama-fg.co.jp","marketCapitalization":1234567.89}`,
		`{"c":812.5,"d":12.5,"dp":1.56,"pc":800,"t":1700000000}`,
		http.StatusOK)

	snap, err := c.Fetch(context.Background(), "7186.T")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !snap.HasName() || *snap.Name != "Yokohama Financial Group" {
		t.Fatalf("name: %+v", snap.Name)
	}
	if snap.CurrentPrice == nil || *snap.CurrentPrice != 812.5 {
		t.Fatalf("price: %v", snap.CurrentPrice)
	}
	if snap.PreviousClose == nil || *snap.PreviousClose != 800 {
		t.Fatalf("previous close: %v", snap.PreviousClose)
	}
	if snap.MarketCap == nil || *snap.MarketCap < 1.2345e12 || *snap.MarketCap > 1.2346e12 {
		t.Fatalf("market cap: %v", snap.MarketCap)
	}
	if snap.Industry == nil || *snap.Industry != "Banking" {
		t.Fatalf("industry: %v", snap.Industry)
	}
	if snap.Summary != nil {
		t.Fatalf("summary should be nil, got %q", *snap.Summary)
	}
	if snap.FetchedAt.IsZero() {
		t.Fatalf("fetched_at not set")
	}
}

func TestFetchEmptyProfileIsNotFound(t *testing.T) {
	c := newFakeFinnhub(t, `{}`, `{"c":0,"d":null,"dp":null,"pc":0,"t":0}`, http.StatusOK)
	_, err := c.Fetch(context.Background(), "7186.T")
	if !errors.Is(err, drepo.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestFetchZeroQuoteLeavesPricesNil(t *testing.T) {
	c := newFakeFinnhub(t, `{"ticker":"7186.T","name":"YFG"}`, `{"c":0,"pc":0}`, http.StatusOK)
	snap, err := c.Fetch(context.Background(), "7186.T")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.CurrentPrice != nil || snap.PreviousClose != nil || snap.MarketCap != nil {
		t.Fatalf("expected nil numbers: %+v", snap)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	c := newFakeFinnhub(t, `{}`, `{}`, http.StatusTooManyRequests)
	_, err := c.Fetch(context.Background(), "7186.T")
	if err == nil || errors.Is(err, drepo.ErrSnapshotNotFound) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
