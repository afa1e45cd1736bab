package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

// AccountRepository defines the interface for account storage. Master-record
// CRUD lives outside this core; the engine only reads accounts and mutates
// balances.
type AccountRepository interface {
	// FindByID retrieves an account, returning entity.NotFoundError if absent.
	FindByID(ctx context.Context, id string) (*entity.Account, error)

	// FindWithPositiveBalance returns all accounts whose balance is > 0.
	FindWithPositiveBalance(ctx context.Context) ([]*entity.Account, error)

	// UpdateBalance sets the account balance and returns the updated account.
	UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) (*entity.Account, error)

	// Save stores an account record (used for seeding).
	Save(ctx context.Context, account *entity.Account) error
}
