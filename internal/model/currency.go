package model

// Currency describes a display currency. ExchangeRate converts one unit of
// the base currency into this currency.
type Currency struct {
	Code         string  `json:"code"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	ExchangeRate float64 `json:"exchangeRate"`
	// Decimals is the number of fraction digits shown when formatting.
	Decimals int32 `json:"decimals"`
}
