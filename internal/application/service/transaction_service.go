package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/receipt"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// ChangeBalanceRequest credits or debits a single account.
type ChangeBalanceRequest struct {
	AccountID string
	Sum       decimal.Decimal
	Type      entity.TransactionType
}

// TransferRequest moves sum from the sender account to the recipient
// account. For Exchange the sum is quoted in the sender's currency.
type TransferRequest struct {
	SenderAccountID    string
	RecipientAccountID string
	Sum                decimal.Decimal
}

// ChangeBalanceResponse reports a completed replenishment or withdrawal.
type ChangeBalanceResponse struct {
	TransactionID      string                 `json:"transaction_id"`
	Date               string                 `json:"date"`
	Time               string                 `json:"time"`
	Type               entity.TransactionType `json:"type"`
	RecipientBank      string                 `json:"recipient_bank"`
	RecipientAccountID string                 `json:"recipient_account_id"`
	Sum                decimal.Decimal        `json:"sum"`
	OldBalance         decimal.Decimal        `json:"old_balance"`
	NewBalance         decimal.Decimal        `json:"new_balance"`
}

// TransferResponse reports a completed same-currency transfer.
type TransferResponse struct {
	TransactionID       string                 `json:"transaction_id"`
	Date                string                 `json:"date"`
	Time                string                 `json:"time"`
	Type                entity.TransactionType `json:"type"`
	SenderBank          string                 `json:"sender_bank"`
	RecipientBank       string                 `json:"recipient_bank"`
	SenderAccountID     string                 `json:"sender_account_id"`
	RecipientAccountID  string                 `json:"recipient_account_id"`
	Sum                 decimal.Decimal        `json:"sum"`
	SenderOldBalance    decimal.Decimal        `json:"sender_old_balance"`
	SenderNewBalance    decimal.Decimal        `json:"sender_new_balance"`
	RecipientOldBalance decimal.Decimal        `json:"recipient_old_balance"`
	RecipientNewBalance decimal.Decimal        `json:"recipient_new_balance"`
}

// ExchangeResponse reports a completed cross-currency transfer; it
// additionally carries both currencies and both settled sums.
type ExchangeResponse struct {
	TransferResponse
	SenderCurrency    string          `json:"sender_currency"`
	RecipientCurrency string          `json:"recipient_currency"`
	SumSender         decimal.Decimal `json:"sum_sender"`
	SumRecipient      decimal.Decimal `json:"sum_recipient"`
}

// TransactionService orchestrates the four transaction kinds. It owns the
// per-account serialization, the atomic commit of balances plus the audit
// record, and receipt generation.
type TransactionService struct {
	accounts     repository.AccountRepository
	banks        repository.BankRepository
	transactions repository.TransactionRepository
	validator    *AccountValidator
	exchange     *ExchangeService
	receipts     repository.ReceiptSink
	locks        *accountLocks
	logger       logger.Logger
	now          func() time.Time
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	accounts repository.AccountRepository,
	banks repository.BankRepository,
	transactions repository.TransactionRepository,
	exchange *ExchangeService,
	receipts repository.ReceiptSink,
	log logger.Logger,
) *TransactionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionService{
		accounts:     accounts,
		banks:        banks,
		transactions: transactions,
		validator:    NewAccountValidator(),
		exchange:     exchange,
		receipts:     receipts,
		locks:        newAccountLocks(),
		logger:       log,
		now:          time.Now,
	}
}

// ChangeBalance applies a REPLENISHMENT or WITHDRAWAL to one account.
func (s *TransactionService) ChangeBalance(ctx context.Context, req ChangeBalanceRequest) (*ChangeBalanceResponse, error) {
	if req.Type != entity.Replenishment && req.Type != entity.Withdrawal {
		return nil, entity.NewBadRequestError("unsupported transaction type %s", req.Type)
	}

	unlock := s.locks.Lock(req.AccountID)
	defer unlock()

	account, err := s.accounts.FindByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CheckOpen(account); err != nil {
		return nil, err
	}

	oldBalance := account.Balance
	var newBalance decimal.Decimal
	if req.Type == entity.Replenishment {
		newBalance = oldBalance.Add(req.Sum)
	} else {
		if err := s.validator.CheckSufficientBalance(account, req.Sum); err != nil {
			return nil, err
		}
		newBalance = oldBalance.Sub(req.Sum)
	}

	bank, err := s.banks.FindByID(ctx, account.BankID)
	if err != nil {
		return nil, err
	}

	when := s.now()
	record := &entity.Transaction{
		ID:                 uuid.New().String(),
		Date:               when,
		Type:               req.Type,
		RecipientBankID:    account.BankID,
		RecipientAccountID: account.ID,
		Sum:                req.Sum,
		SumRecipient:       req.Sum,
	}

	saved, err := s.transactions.Save(ctx, record, []repository.BalanceUpdate{
		{AccountID: account.ID, NewBalance: newBalance},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit %s: %w", req.Type, err)
	}

	s.logger.Info("Balance changed", map[string]interface{}{
		"transaction_id": saved.ID,
		"type":           req.Type,
		"account_id":     account.ID,
		"sum":            req.Sum.String(),
		"old_balance":    oldBalance.String(),
		"new_balance":    newBalance.String(),
	})

	s.storeReceipt(ctx, receipt.Data{
		TransactionID:    saved.ID,
		Date:             when.Format(dateLayout),
		Time:             when.Format(timeLayout),
		Type:             string(req.Type),
		RecipientBank:    bank.Name,
		RecipientAccount: account.ID,
		Sum:              formatMoney(req.Sum, account.Currency),
	})

	return &ChangeBalanceResponse{
		TransactionID:      saved.ID,
		Date:               when.Format(dateLayout),
		Time:               when.Format(timeLayout),
		Type:               req.Type,
		RecipientBank:      bank.Name,
		RecipientAccountID: account.ID,
		Sum:                req.Sum,
		OldBalance:         oldBalance,
		NewBalance:         newBalance,
	}, nil
}

// Transfer moves sum between two accounts holding the same currency. Both
// balance updates and the audit record commit as one atomic unit.
func (s *TransactionService) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if err := s.validator.CheckDistinctAccounts(req.SenderAccountID, req.RecipientAccountID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.SenderAccountID, req.RecipientAccountID)
	defer unlock()

	sender, recipient, err := s.loadPair(ctx, req.SenderAccountID, req.RecipientAccountID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CheckCurrencyMatch(sender, recipient); err != nil {
		return nil, err
	}
	if err := s.validator.CheckSufficientBalance(sender, req.Sum); err != nil {
		return nil, err
	}

	return s.commitTransfer(ctx, entity.Transfer, sender, recipient, req.Sum, req.Sum)
}

// Exchange moves sum (quoted in the sender's currency) between accounts of
// different currencies, crediting the converted amount.
func (s *TransactionService) Exchange(ctx context.Context, req TransferRequest) (*ExchangeResponse, error) {
	if err := s.validator.CheckDistinctAccounts(req.SenderAccountID, req.RecipientAccountID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.SenderAccountID, req.RecipientAccountID)
	defer unlock()

	sender, recipient, err := s.loadPair(ctx, req.SenderAccountID, req.RecipientAccountID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CheckSufficientBalance(sender, req.Sum); err != nil {
		return nil, err
	}

	sumRecipient, err := s.exchange.Convert(ctx, req.Sum, sender.Currency, recipient.Currency)
	if err != nil {
		return nil, err
	}

	resp, err := s.commitTransfer(ctx, entity.Exchange, sender, recipient, req.Sum, sumRecipient)
	if err != nil {
		return nil, err
	}

	return &ExchangeResponse{
		TransferResponse:  *resp,
		SenderCurrency:    sender.Currency,
		RecipientCurrency: recipient.Currency,
		SumSender:         req.Sum,
		SumRecipient:      sumRecipient,
	}, nil
}

// AccrueInterest credits monthly interest to one account, rounding the new
// balance down to two decimal places. It is the balance-update path used by
// the accrual job; no audit record is written for accruals.
func (s *TransactionService) AccrueInterest(ctx context.Context, accountID string, monthlyPercent decimal.Decimal) (*entity.Account, error) {
	unlock := s.locks.Lock(accountID)
	defer unlock()

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.IsClosed() || !account.Balance.IsPositive() {
		return account, nil
	}

	interest := account.Balance.Mul(monthlyPercent).Div(decimal.NewFromInt(100))
	newBalance := account.Balance.Add(interest).RoundDown(moneyScale)

	updated, err := s.accounts.UpdateBalance(ctx, accountID, newBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to accrue interest: %w", err)
	}

	s.logger.Info("Interest accrued", map[string]interface{}{
		"account_id":  accountID,
		"percent":     monthlyPercent.String(),
		"old_balance": account.Balance.String(),
		"new_balance": updated.Balance.String(),
	})

	return updated, nil
}

// loadPair fetches both legs of a two-account operation and runs the
// closed-account check on each.
func (s *TransactionService) loadPair(ctx context.Context, senderID, recipientID string) (*entity.Account, *entity.Account, error) {
	sender, err := s.accounts.FindByID(ctx, senderID)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := s.accounts.FindByID(ctx, recipientID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.validator.CheckOpen(sender); err != nil {
		return nil, nil, err
	}
	if err := s.validator.CheckOpen(recipient); err != nil {
		return nil, nil, err
	}
	return sender, recipient, nil
}

func (s *TransactionService) commitTransfer(
	ctx context.Context,
	kind entity.TransactionType,
	sender, recipient *entity.Account,
	sum, sumRecipient decimal.Decimal,
) (*TransferResponse, error) {
	senderBank, err := s.banks.FindByID(ctx, sender.BankID)
	if err != nil {
		return nil, err
	}
	recipientBank, err := s.banks.FindByID(ctx, recipient.BankID)
	if err != nil {
		return nil, err
	}

	senderNew := sender.Balance.Sub(sum)
	recipientNew := recipient.Balance.Add(sumRecipient)

	when := s.now()
	record := &entity.Transaction{
		ID:                 uuid.New().String(),
		Date:               when,
		Type:               kind,
		SenderBankID:       sender.BankID,
		RecipientBankID:    recipient.BankID,
		SenderAccountID:    sender.ID,
		RecipientAccountID: recipient.ID,
		Sum:                sum,
		SumRecipient:       sumRecipient,
	}

	saved, err := s.transactions.Save(ctx, record, []repository.BalanceUpdate{
		{AccountID: sender.ID, NewBalance: senderNew},
		{AccountID: recipient.ID, NewBalance: recipientNew},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit %s: %w", kind, err)
	}

	s.logger.Info("Transfer committed", map[string]interface{}{
		"transaction_id": saved.ID,
		"type":           kind,
		"sender":         sender.ID,
		"recipient":      recipient.ID,
		"sum":            sum.String(),
		"sum_recipient":  sumRecipient.String(),
	})

	data := receipt.Data{
		TransactionID:    saved.ID,
		Date:             when.Format(dateLayout),
		Time:             when.Format(timeLayout),
		Type:             string(kind),
		SenderBank:       senderBank.Name,
		RecipientBank:    recipientBank.Name,
		SenderAccount:    sender.ID,
		RecipientAccount: recipient.ID,
		Sum:              formatMoney(sum, sender.Currency),
	}
	if kind == entity.Exchange {
		data.SumRecipient = formatMoney(sumRecipient, recipient.Currency)
	}
	s.storeReceipt(ctx, data)

	return &TransferResponse{
		TransactionID:       saved.ID,
		Date:                when.Format(dateLayout),
		Time:                when.Format(timeLayout),
		Type:                kind,
		SenderBank:          senderBank.Name,
		RecipientBank:       recipientBank.Name,
		SenderAccountID:     sender.ID,
		RecipientAccountID:  recipient.ID,
		Sum:                 sum,
		SenderOldBalance:    sender.Balance,
		SenderNewBalance:    senderNew,
		RecipientOldBalance: recipient.Balance,
		RecipientNewBalance: recipientNew,
	}, nil
}

// storeReceipt renders and uploads the receipt. The mutation has already
// committed, so a sink failure is logged and not surfaced to the caller.
func (s *TransactionService) storeReceipt(ctx context.Context, data receipt.Data) {
	location, err := s.receipts.Store(ctx, receipt.Render(data))
	if err != nil {
		s.logger.Warn("Failed to store receipt", map[string]interface{}{
			"transaction_id": data.TransactionID,
			"error":          err.Error(),
		})
		return
	}

	s.logger.Debug("Receipt stored", map[string]interface{}{
		"transaction_id": data.TransactionID,
		"location":       location,
	})
}

func formatMoney(sum decimal.Decimal, currency string) string {
	return sum.StringFixed(moneyScale) + " " + currency
}
