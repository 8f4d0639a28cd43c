package yahoo

// quoteSummary modules requested for one snapshot.
var summaryModules = []string{"price", "summaryDetail", "assetProfile"}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type summaryResult struct {
	Price *struct {
		Symbol                     string    `json:"symbol"`
		Currency                   string    `json:"currency"`
		LongName                   string    `json:"longName"`
		ShortName                  string    `json:"shortName"`
		RegularMarketPrice         *rawValue `json:"regularMarketPrice"`
		RegularMarketPreviousClose *rawValue `json:"regularMarketPreviousClose"`
		MarketCap                  *rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		PreviousClose *rawValue `json:"previousClose"`
		MarketCap     *rawValue `json:"marketCap"`
	} `json:"summaryDetail"`
	AssetProfile *struct {
		Industry            string `json:"industry"`
		Website             string `json:"website"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"assetProfile"`
}

// rawValue is Yahoo's {raw, fmt} number wrapper. Missing values arrive as {}.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v *rawValue) value() *float64 {
	if v == nil || v.Raw == nil {
		return nil
	}
	f := *v.Raw
	return &f
}
