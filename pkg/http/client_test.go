package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "kabucard-test" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Query().Get("modules") != "price" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Yokohama"}`))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("kabucard-test"))
	var out struct {
		Name string `json:"name"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		URL:         srv.URL,
		QueryParams: map[string][]string{"modules": {"price"}},
	}, &out)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out.Name != "Yokohama" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, nil)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusTooManyRequests || se.Body != "slow down" {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestClientCookieJar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/set":
			http.SetCookie(w, &http.Cookie{Name: "B", Value: "session", Path: "/"})
		case "/get":
			ck, err := r.Cookie("B")
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(ck.Value))
		}
	}))
	defer srv.Close()

	c := NewClient(WithCookieJar())
	ctx := context.Background()
	if err := c.SendAndParse(ctx, &RequestOptions{URL: srv.URL + "/set"}, nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got string
	if err := c.SendAndParse(ctx, &RequestOptions{URL: srv.URL + "/get"}, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "session" {
		t.Fatalf("cookie value %q", got)
	}
}

func TestClientDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>consent</html>"))
	}))
	defer srv.Close()

	var out map[string]any
	err := NewClient().SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, &out)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Fatalf("decode failure must not look like a status error: %v", err)
	}
}
