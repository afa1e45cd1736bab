package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the reference currency all rates are quoted against.
const BaseCurrency = "BYN"

// ExchangeRate is one dated version of an official rate. Rate is quoted per
// Scale units of Currency relative to the base currency. Versions accumulate
// over time; the one with the latest UpdateDate is current.
type ExchangeRate struct {
	CurrencyID int             `json:"currency_id"`
	Currency   string          `json:"currency"`
	Scale      int             `json:"scale"`
	Rate       decimal.Decimal `json:"rate"`
	UpdateDate time.Time       `json:"update_date"`
}
