package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

const accountPrefix = "account:"

func accountKey(id string) []byte {
	return []byte(accountPrefix + id)
}

// BadgerAccountRepository implements the account repository interface using
// BadgerDB. The *badger.DB handle is injected and shared across
// repositories; its lifecycle is owned by the caller.
type BadgerAccountRepository struct {
	db *badger.DB
}

// NewBadgerAccountRepository creates a new BadgerDB account repository.
func NewBadgerAccountRepository(db *badger.DB) *BadgerAccountRepository {
	return &BadgerAccountRepository{db: db}
}

// FindByID retrieves an account by its identifier.
func (r *BadgerAccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	var account entity.Account

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &account)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, entity.NewNotFoundError("account %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}

	return &account, nil
}

// FindWithPositiveBalance returns every account with balance > 0.
func (r *BadgerAccountRepository) FindWithPositiveBalance(ctx context.Context) ([]*entity.Account, error) {
	var accounts []*entity.Account

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(accountPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var account entity.Account
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &account)
			})
			if err != nil {
				return err
			}
			if account.Balance.IsPositive() {
				accounts = append(accounts, &account)
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// UpdateBalance sets the account balance inside one store transaction and
// returns the updated account.
func (r *BadgerAccountRepository) UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) (*entity.Account, error) {
	var account entity.Account

	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(id))
		if err != nil {
			return err
		}
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &account)
		})
		if err != nil {
			return err
		}

		account.Balance = newBalance
		data, err := json.Marshal(&account)
		if err != nil {
			return err
		}
		return txn.Set(accountKey(id), data)
	})

	if err == badger.ErrKeyNotFound {
		return nil, entity.NewNotFoundError("account %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	return &account, nil
}

// Save stores an account record.
func (r *BadgerAccountRepository) Save(ctx context.Context, account *entity.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(accountKey(account.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}

	return nil
}
