package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

// BalanceUpdate is one account balance mutation applied as part of a
// transaction commit.
type BalanceUpdate struct {
	AccountID  string
	NewBalance decimal.Decimal
}

// TransactionRepository defines the interface for the append-only ledger.
type TransactionRepository interface {
	// Save persists the transaction record and every balance update in one
	// atomic unit: either all writes commit or none do.
	Save(ctx context.Context, record *entity.Transaction, updates []BalanceUpdate) (*entity.Transaction, error)

	// FindByID retrieves a transaction record by its identifier.
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindByAccountAndPeriod returns all transactions where the account is
	// sender or recipient, dated within [from, to], in chronological order.
	FindByAccountAndPeriod(ctx context.Context, accountID string, from, to time.Time) ([]*entity.Transaction, error)

	// SumSpent totals the sums debited from the account over the period.
	SumSpent(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)

	// SumReceived totals the sums credited to the account over the period.
	SumReceived(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)
}
