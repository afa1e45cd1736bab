package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a single-currency bank account. Balance carries two decimal
// places; Currency is fixed for the account's lifetime.
type Account struct {
	ID          string          `json:"id"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	OpeningDate time.Time       `json:"opening_date"`
	ClosingDate *time.Time      `json:"closing_date,omitempty"`
	BankID      string          `json:"bank_id"`
	UserID      string          `json:"user_id"`
}

// IsClosed reports whether the account has been closed.
func (a *Account) IsClosed() bool {
	return a.ClosingDate != nil
}
