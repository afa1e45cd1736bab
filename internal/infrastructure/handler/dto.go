package handler

import "github.com/shopspring/decimal"

// ChangeBalanceRequest is the body for replenishment and withdrawal of a
// single account.
type ChangeBalanceRequest struct {
	RecipientAccountID string          `json:"recipient_account_id"`
	Sum                decimal.Decimal `json:"sum"`
	Type               string          `json:"type"`
}

// TransferRequest is the body for transfers and exchanges between two
// accounts. For exchanges the sum is quoted in the sender's currency.
type TransferRequest struct {
	SenderAccountID    string          `json:"sender_account_id"`
	RecipientAccountID string          `json:"recipient_account_id"`
	Sum                decimal.Decimal `json:"sum"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error     string `json:"error"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id"`
}

// ViolationsResponse aggregates field-shape violations; all of them are
// reported together rather than failing on the first.
type ViolationsResponse struct {
	Violations []string `json:"violations"`
	RequestID  string   `json:"request_id"`
}
