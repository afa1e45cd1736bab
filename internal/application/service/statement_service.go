package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/receipt"
)

// Statement is the rendered report for one account over a period, plus the
// location the sink stored it at.
type Statement struct {
	AccountID string
	From      time.Time
	To        time.Time
	Rendered  string
	Location  string
}

// MoneyTotals carries the aggregate flows of the summary variant.
type MoneyTotals struct {
	SpentFunds    decimal.Decimal
	ReceivedFunds decimal.Decimal
}

// StatementService aggregates transaction history into formatted reports.
type StatementService struct {
	accounts     repository.AccountRepository
	banks        repository.BankRepository
	users        repository.UserRepository
	transactions repository.TransactionRepository
	sink         repository.ReceiptSink
	logger       logger.Logger
	now          func() time.Time
}

// NewStatementService creates a new statement service.
func NewStatementService(
	accounts repository.AccountRepository,
	banks repository.BankRepository,
	users repository.UserRepository,
	transactions repository.TransactionRepository,
	sink repository.ReceiptSink,
	log logger.Logger,
) *StatementService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &StatementService{
		accounts:     accounts,
		banks:        banks,
		users:        users,
		transactions: transactions,
		sink:         sink,
		logger:       log,
		now:          time.Now,
	}
}

// TransactionStatement renders the line-itemized statement: every
// transaction in the period with date, type, counterparty note and signed
// sum (debits negative).
func (s *StatementService) TransactionStatement(ctx context.Context, accountID string, from, to time.Time) (*Statement, error) {
	account, header, err := s.buildHeader(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	records, err := s.transactions.FindByAccountAndPeriod(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	surnames := map[string]string{}
	entries := make([]receipt.StatementEntry, 0, len(records))
	for _, r := range records {
		note, err := s.counterpartyNote(ctx, account, r, surnames)
		if err != nil {
			return nil, err
		}

		sum, debit := signedSum(account.ID, r)
		formatted := sum.StringFixed(2) + " " + account.Currency
		if debit {
			formatted = "-" + formatted
		}

		entries = append(entries, receipt.StatementEntry{
			Date: r.Date.Format(dateLayout),
			Type: string(r.Type),
			Note: note,
			Sum:  formatted,
		})
	}

	rendered := receipt.RenderTransactionStatement(header, entries)
	return s.store(ctx, accountID, from, to, rendered)
}

// MoneyStatement renders the amounts-only summary of funds spent and
// received over the period.
func (s *StatementService) MoneyStatement(ctx context.Context, accountID string, from, to time.Time) (*Statement, *MoneyTotals, error) {
	_, header, err := s.buildHeader(ctx, accountID, from, to)
	if err != nil {
		return nil, nil, err
	}

	spent, err := s.transactions.SumSpent(ctx, accountID, from, to)
	if err != nil {
		return nil, nil, err
	}
	received, err := s.transactions.SumReceived(ctx, accountID, from, to)
	if err != nil {
		return nil, nil, err
	}

	rendered := receipt.RenderMoneyStatement(header, received, spent)
	statement, err := s.store(ctx, accountID, from, to, rendered)
	if err != nil {
		return nil, nil, err
	}

	return statement, &MoneyTotals{SpentFunds: spent, ReceivedFunds: received}, nil
}

// buildHeader loads the account with its bank and owner and fills the
// header block as of generation time.
func (s *StatementService) buildHeader(ctx context.Context, accountID string, from, to time.Time) (*entity.Account, receipt.StatementHeader, error) {
	var header receipt.StatementHeader

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, header, err
	}
	bank, err := s.banks.FindByID(ctx, account.BankID)
	if err != nil {
		return nil, header, err
	}
	owner, err := s.users.FindByID(ctx, account.UserID)
	if err != nil {
		return nil, header, err
	}

	generated := s.now()
	header = receipt.StatementHeader{
		BankName:    bank.Name,
		Customer:    owner.FullName(),
		AccountID:   account.ID,
		Currency:    account.Currency,
		OpeningDate: account.OpeningDate.Format(dateLayout),
		PeriodFrom:  from.Format(dateLayout),
		PeriodTo:    to.Format(dateLayout),
		GeneratedAt: generated.Format(dateLayout) + ", " + generated.Format(timeLayout),
		Balance:     formatMoney(account.Balance, account.Currency),
	}
	return account, header, nil
}

// counterpartyNote resolves the surname printed next to a transaction: the
// other side's owner for transfers and exchanges, the account's own owner
// otherwise. Lookups are memoized per statement.
func (s *StatementService) counterpartyNote(ctx context.Context, account *entity.Account, r *entity.Transaction, surnames map[string]string) (string, error) {
	otherID := account.ID
	if r.Type == entity.Transfer || r.Type == entity.Exchange {
		if r.SenderAccountID == account.ID {
			otherID = r.RecipientAccountID
		} else {
			otherID = r.SenderAccountID
		}
	}

	if surname, ok := surnames[otherID]; ok {
		return surname, nil
	}

	other, err := s.accounts.FindByID(ctx, otherID)
	if err != nil {
		return "", err
	}
	owner, err := s.users.FindByID(ctx, other.UserID)
	if err != nil {
		return "", err
	}

	surnames[otherID] = owner.LastName
	return owner.LastName, nil
}

func (s *StatementService) store(ctx context.Context, accountID string, from, to time.Time, rendered string) (*Statement, error) {
	location, err := s.sink.Store(ctx, rendered)
	if err != nil {
		s.logger.Warn("Failed to store statement", map[string]interface{}{
			"account_id": accountID,
			"error":      err.Error(),
		})
		location = ""
	}

	return &Statement{
		AccountID: accountID,
		From:      from,
		To:        to,
		Rendered:  rendered,
		Location:  location,
	}, nil
}

// signedSum returns the amount the account saw for the record and whether
// it was a debit.
func signedSum(accountID string, r *entity.Transaction) (decimal.Decimal, bool) {
	switch r.Type {
	case entity.Withdrawal:
		return r.Sum, true
	case entity.Transfer, entity.Exchange:
		if r.SenderAccountID == accountID {
			return r.Sum, true
		}
		return r.SumRecipient, false
	default:
		return r.SumRecipient, false
	}
}
