package repository

import (
	"context"

	"KabuCard/internal/domain/models"
)

// SnapshotProvider fetches a fresh snapshot for one ticker.
type SnapshotProvider interface {
	Fetch(ctx context.Context, symbol string) (*models.StockSnapshot, error)
}

// Limiter bounds how often a key may be used.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Metrics interface {
	RecordFetch(symbol, outcome string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordMarketCap(symbol string, value float64)
	RecordLatency(op string, seconds float64)
}
