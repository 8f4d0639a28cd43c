package di

import (
	"context"
	"fmt"
	"time"

	"KabuCard/internal/domain/repository"
	"KabuCard/internal/handler/api"
	"KabuCard/internal/handler/web"
	"KabuCard/internal/service/finnhub"
	"KabuCard/internal/service/ratelimit"
	"KabuCard/internal/service/yahoo"
	"KabuCard/internal/usecase"
	"KabuCard/pkg/config"
	xhttp "KabuCard/pkg/http"
	"KabuCard/pkg/logger"
	"KabuCard/pkg/metrics"
	"KabuCard/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry shared by the recorder and the HTTP middleware.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideSnapshotProvider creates the market data client selected by stock.provider.
func ProvideSnapshotProvider(cfg *config.Config) (repository.SnapshotProvider, error) {
	switch cfg.Stock.Provider {
	case "", "yahoo":
		return yahoo.New(yahoo.Config{
			BaseURL:   cfg.Yahoo.BaseURL,
			CookieURL: cfg.Yahoo.CookieURL,
			CrumbURL:  cfg.Yahoo.CrumbURL,
			UserAgent: cfg.Yahoo.UserAgent,
			Timeout:   cfg.Yahoo.Timeout,
		}), nil
	case "finnhub":
		return finnhub.New(finnhub.Config{
			BaseURL: cfg.Finnhub.BaseURL,
			APIKey:  cfg.Finnhub.APIKey,
			Timeout: cfg.Finnhub.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown stock provider %q", cfg.Stock.Provider)
	}
}

// ProvideLimiter creates the upstream guard selected by ratelimit.backend.
func ProvideLimiter(cfg *config.Config, l *logger.Logger) (repository.Limiter, func(), error) {
	rl := cfg.RateLimit
	switch rl.Backend {
	case "none":
		return ratelimit.Unlimited{}, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     rl.Redis.Addr,
			Password: rl.Redis.Password,
			DB:       rl.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		limiter := ratelimit.NewRedisWindow(client, rl.Redis.Prefix, int64(rl.Capacity), rl.Window)
		l.Info("redis limiter ready", logger.String("addr", rl.Redis.Addr))
		return limiter, func() {
			if err := limiter.Close(); err != nil {
				l.Warn("redis close error", logger.Error(err))
			}
		}, nil
	default:
		l.Info("memory limiter ready",
			logger.Float64("capacity", rl.Capacity),
			logger.Float64("refill_per_sec", rl.RefillPerSec),
		)
		return ratelimit.NewTokenBucket(rl.Capacity, rl.RefillPerSec), func() {}, nil
	}
}

// ProvideStockPage creates the stock page use case.
func ProvideStockPage(
	provider repository.SnapshotProvider,
	limiter repository.Limiter,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.StockPage {
	return usecase.NewStockPage(provider, limiter, m, usecase.StockPageConfig{
		Symbol: cfg.Stock.Ticker,
		Title:  cfg.Stock.Title,
		Icon:   cfg.Stock.Icon,
		Source: cfg.Stock.Source,
	})
}

// ProvideHandlers lists every route group served by the HTTP server.
func ProvideHandlers(l *logger.Logger, page *usecase.StockPage, cfg *config.Config) []xhttp.Handler {
	return []xhttp.Handler{
		web.NewPageHandler(l, page, cfg.Stock.Title, cfg.Stock.Icon),
		api.NewStockEchoHandler(l, page),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, reg *prometheus.Registry, l *logger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	l.Debug("http server configured",
		logger.Bool("cors", cfg.Server.CORS),
		logger.Bool("metrics", cfg.Metrics.Enabled),
	)
	return xhttp.NewServer(handlers,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath, reg),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, l *logger.Logger) *server.App {
	return server.New(cfg, srv, l)
}
