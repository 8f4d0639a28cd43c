package finnhub

// quoteResponse is /api/v1/quote. Unknown symbols come back as all zeros.
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// profileResponse is /api/v1/stock/profile2. Unknown symbols come back as {}.
type profileResponse struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Currency  string  `json:"currency"`
	Industry  string  `json:"finnhubIndustry"`
	WebURL    string  `json:"weburl"`
	MarketCap float64 `json:"marketCapitalization"` // millions of Currency
}
