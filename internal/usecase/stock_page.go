package usecase

import (
	"context"
	"errors"
	"time"

	"KabuCard/internal/domain/models"
	domrepo "KabuCard/internal/domain/repository"
	xhttp "KabuCard/pkg/http"
	"KabuCard/pkg/numfmt"
	"KabuCard/pkg/util"
)

// Page texts.
const (
	LabelPrice       = "現在の株価"
	LabelMarketCap   = "時価総額"
	PriceUnavailable = "取得不可"
	NotAvailable     = "N/A"
	NoSummary        = "事業概要のデータがありません。"
	NoData           = "データなし"

	MsgNoData     = "株価データを取得できませんでした。証券コードが正しいか、または一時的な問題が発生している可能性があります。"
	MsgUnexpected = "予期せぬエラーが発生しました。ページを再読み込みしてください。"
	MsgLimited    = "アクセスが集中しています。しばらくしてから再読み込みしてください。"
)

// StockPageConfig fixes what the page shows.
type StockPageConfig struct {
	Symbol string
	Title  string
	Icon   string
	Source string
}

// StockPage turns a fresh snapshot into a display-ready page.
type StockPage struct {
	provider domrepo.SnapshotProvider
	limiter  domrepo.Limiter
	metrics  domrepo.Metrics
	cfg      StockPageConfig
	units    numfmt.Units
}

func NewStockPage(provider domrepo.SnapshotProvider, limiter domrepo.Limiter, metrics domrepo.Metrics, cfg StockPageConfig) *StockPage {
	return &StockPage{
		provider: provider,
		limiter:  limiter,
		metrics:  metrics,
		cfg:      cfg,
		units:    numfmt.Yen.WithPlaceholder(NoData),
	}
}

// Symbol returns the ticker the page is fixed to.
func (u *StockPage) Symbol() string { return u.cfg.Symbol }

// Build fetches one snapshot and renders it. Errors are *xhttp.AppError.
func (u *StockPage) Build(ctx context.Context) (*models.StockPage, error) {
	symbol := u.cfg.Symbol

	ok, err := u.limiter.Allow(ctx, "upstream:"+symbol)
	if err != nil {
		// a broken limiter must not take the page down
		u.metrics.RecordError("limiter")
	} else if !ok {
		u.metrics.RecordFetch(symbol, "limited")
		return nil, xhttp.TooManyRequestsError(MsgLimited)
	}

	start := time.Now()
	snap, err := u.provider.Fetch(ctx, symbol)
	u.metrics.RecordLatency("fetch_snapshot", time.Since(start).Seconds())
	switch {
	case errors.Is(err, domrepo.ErrSnapshotNotFound):
		u.metrics.RecordFetch(symbol, "not_found")
		return nil, xhttp.NotFoundError("ERR_NO_DATA", MsgNoData).WithError(err)
	case err != nil:
		u.metrics.RecordFetch(symbol, "error")
		u.metrics.RecordError("upstream")
		return nil, xhttp.BadGatewayError(MsgUnexpected).WithError(err)
	case !snap.HasName():
		u.metrics.RecordFetch(symbol, "not_found")
		return nil, xhttp.NotFoundError("ERR_NO_DATA", MsgNoData)
	}
	u.metrics.RecordFetch(symbol, "ok")

	return u.render(snap), nil
}

func (u *StockPage) render(snap *models.StockSnapshot) *models.StockPage {
	page := &models.StockPage{
		Symbol:    snap.Symbol,
		Title:     u.cfg.Title,
		Icon:      u.cfg.Icon,
		Name:      *snap.Name,
		Price:     u.priceMetric(snap),
		MarketCap: models.Metric{Label: LabelMarketCap, Value: u.units.FormatMarketCap(snap.MarketCap)},
		Overview: models.CompanySummary{
			Industry: util.OrDefault(snap.Industry, NotAvailable),
			Website:  util.OrDefault(snap.Website, NotAvailable),
			Summary:  util.OrDefault(snap.Summary, NoSummary),
		},
		Source:    u.cfg.Source,
		FetchedAt: snap.FetchedAt,
	}
	if snap.MarketCap != nil {
		u.metrics.RecordMarketCap(snap.Symbol, *snap.MarketCap)
	}
	return page
}

// priceMetric needs both prices; zero counts as missing.
func (u *StockPage) priceMetric(snap *models.StockSnapshot) models.PriceMetric {
	m := models.PriceMetric{Metric: models.Metric{Label: LabelPrice, Value: PriceUnavailable}}
	if snap.CurrentPrice == nil || snap.PreviousClose == nil || *snap.CurrentPrice == 0 || *snap.PreviousClose == 0 {
		return m
	}

	price, prev := *snap.CurrentPrice, *snap.PreviousClose
	u.metrics.RecordLastPrice(snap.Symbol, price)

	delta := price - prev
	m.Value = u.units.FormatPrice(price)
	m.Delta = u.units.FormatDelta(delta)
	m.Available = true
	switch {
	case delta > 0:
		m.Direction = models.DirectionUp
	case delta < 0:
		m.Direction = models.DirectionDown
	default:
		m.Direction = models.DirectionFlat
	}
	return m
}
