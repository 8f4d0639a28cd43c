package models

import "time"

// Direction of the price change against the previous close.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// StockPage is the rendered view of one snapshot. Every value is display-ready.
type StockPage struct {
	Symbol    string         `json:"symbol"`
	Title     string         `json:"title"`
	Icon      string         `json:"icon,omitempty"`
	Name      string         `json:"name"`
	Price     PriceMetric    `json:"price"`
	MarketCap Metric         `json:"market_cap"`
	Overview  CompanySummary `json:"overview"`
	Source    string         `json:"source"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// Metric is a labelled display value.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PriceMetric carries the current price and its change, when both are known.
type PriceMetric struct {
	Metric
	Delta     string    `json:"delta,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Available bool      `json:"available"`
}

type CompanySummary struct {
	Industry string `json:"industry"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}
