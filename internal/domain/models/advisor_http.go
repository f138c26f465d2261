package models

// Requests for advisor HTTP endpoints. Defined in domain for consistency and reuse.

type EvaluateRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"260" validate:"gte=1,lte=2000"`
}

type WatchRequest struct {
	Symbol string  `query:"symbol" json:"symbol" validate:"required"`
	Target float64 `query:"target" json:"target" validate:"gte=0"`
	Note   string  `query:"note" json:"note"`
	N      int     `query:"n" json:"n" default:"260" validate:"gte=1,lte=2000"`
}

type BarsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	Limit  int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=5000"`
}
