package models

// MarketCapFormatRequest is bound from the query string of the formatting endpoint.
type MarketCapFormatRequest struct {
	Value string `query:"value" json:"value" validate:"required,numeric,excludes=-"`
}

type MarketCapFormatResponse struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}
