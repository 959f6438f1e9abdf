package entities

import "github.com/shopspring/decimal"

type RevenueResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Timestamp string          `json:"timestamp"`
}
