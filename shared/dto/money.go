package dto

import "github.com/shopspring/decimal"

// Prices and amounts are written as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
