package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the four supported balance mutations.
type TransactionType string

const (
	Replenishment TransactionType = "REPLENISHMENT"
	Withdrawal    TransactionType = "WITHDRAWAL"
	Transfer      TransactionType = "TRANSFER"
	Exchange      TransactionType = "EXCHANGE"
)

// Transaction is one immutable audit record of a completed balance mutation.
// Records are append-only: created exactly once per committed operation,
// never updated or deleted.
type Transaction struct {
	ID                 string          `json:"id"`
	Date               time.Time       `json:"date"`
	Type               TransactionType `json:"type"`
	SenderBankID       string          `json:"sender_bank_id,omitempty"`
	RecipientBankID    string          `json:"recipient_bank_id"`
	SenderAccountID    string          `json:"sender_account_id,omitempty"`
	RecipientAccountID string          `json:"recipient_account_id"`
	Sum                decimal.Decimal `json:"sum"`
	// SumRecipient equals Sum except for EXCHANGE, where it carries the
	// converted amount credited in the recipient's currency.
	SumRecipient decimal.Decimal `json:"sum_recipient"`
}
