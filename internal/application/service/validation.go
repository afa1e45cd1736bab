package service

import (
	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

// AccountValidator runs the ordered business-rule checks against accounts
// involved in a transaction. Each check fails fast with a distinct
// BadRequestError; field-shape validation happens earlier, at the request
// boundary.
type AccountValidator struct{}

// NewAccountValidator creates a new account validator.
func NewAccountValidator() *AccountValidator {
	return &AccountValidator{}
}

// CheckOpen fails when the account has been closed.
func (v *AccountValidator) CheckOpen(account *entity.Account) error {
	if account.IsClosed() {
		return entity.NewBadRequestError("account %s is closed since %s",
			account.ID, account.ClosingDate.Format("2006-01-02"))
	}
	return nil
}

// CheckDistinctAccounts fails when both legs of a two-account operation
// name the same account. Debiting and crediting one balance in a single
// commit would let the credit overwrite the debit.
func (v *AccountValidator) CheckDistinctAccounts(senderID, recipientID string) error {
	if senderID == recipientID {
		return entity.NewBadRequestError("sender and recipient account must differ, got %s for both", senderID)
	}
	return nil
}

// CheckCurrencyMatch fails when the two accounts hold different currencies.
// Exchange operations skip this check.
func (v *AccountValidator) CheckCurrencyMatch(sender, recipient *entity.Account) error {
	if sender.Currency != recipient.Currency {
		return entity.NewBadRequestError("currency mismatch: sender account is in %s, recipient account is in %s",
			sender.Currency, recipient.Currency)
	}
	return nil
}

// CheckSufficientBalance fails when a debit of sum would overdraw the
// account. Credit-only operations are exempt.
func (v *AccountValidator) CheckSufficientBalance(account *entity.Account, sum decimal.Decimal) error {
	if account.Balance.LessThan(sum) {
		return entity.NewBadRequestError("insufficient funds: balance %s is less than requested sum %s",
			account.Balance.StringFixed(2), sum.StringFixed(2))
	}
	return nil
}
