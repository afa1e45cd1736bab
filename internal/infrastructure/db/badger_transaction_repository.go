package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
)

const (
	txPrefix    = "tx:"
	txIdxPrefix = "txacc:"
)

func txKey(id string) []byte {
	return []byte(txPrefix + id)
}

// txIndexPrefix scopes the per-account secondary index. The account id is
// length-prefixed because ids are opaque strings: without the length, an id
// that is a prefix of another (or one containing the separator) would bleed
// into a neighbouring account's scan.
func txIndexPrefix(accountID string) []byte {
	return []byte(fmt.Sprintf("%s%08d:%s:", txIdxPrefix, len(accountID), accountID))
}

// txIndexKey orders the index chronologically: the zero-padded unix-nano
// timestamp keeps lexicographic and time order equal.
func txIndexKey(accountID string, date time.Time, txID string) []byte {
	return append(txIndexPrefix(accountID), fmt.Sprintf("%020d:%s", date.UnixNano(), txID)...)
}

// BadgerTransactionRepository implements the append-only ledger on
// BadgerDB.
type BadgerTransactionRepository struct {
	db *badger.DB
}

// NewBadgerTransactionRepository creates a new BadgerDB transaction
// repository.
func NewBadgerTransactionRepository(db *badger.DB) *BadgerTransactionRepository {
	return &BadgerTransactionRepository{db: db}
}

// Save persists the transaction record, its per-account index entries and
// every balance update inside a single Badger transaction. An error on any
// sub-write aborts the whole unit, so a failed recipient update leaves the
// sender untouched and no record behind.
func (r *BadgerTransactionRepository) Save(ctx context.Context, record *entity.Transaction, updates []repository.BalanceUpdate) (*entity.Transaction, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		for _, update := range updates {
			if err := applyBalance(txn, update); err != nil {
				return err
			}
		}

		if err := txn.Set(txKey(record.ID), data); err != nil {
			return err
		}

		if err := txn.Set(txIndexKey(record.RecipientAccountID, record.Date, record.ID), []byte(record.ID)); err != nil {
			return err
		}
		if record.SenderAccountID != "" {
			if err := txn.Set(txIndexKey(record.SenderAccountID, record.Date, record.ID), []byte(record.ID)); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return record, nil
}

func applyBalance(txn *badger.Txn, update repository.BalanceUpdate) error {
	item, err := txn.Get(accountKey(update.AccountID))
	if err == badger.ErrKeyNotFound {
		return entity.NewNotFoundError("account %s not found", update.AccountID)
	}
	if err != nil {
		return err
	}

	var account entity.Account
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &account)
	})
	if err != nil {
		return err
	}

	account.Balance = update.NewBalance
	data, err := json.Marshal(&account)
	if err != nil {
		return err
	}
	return txn.Set(accountKey(update.AccountID), data)
}

// FindByID retrieves a transaction record by its identifier.
func (r *BadgerTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var record entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, entity.NewNotFoundError("transaction %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return &record, nil
}

// FindByAccountAndPeriod returns the account's transactions within
// [from, to] in chronological order.
func (r *BadgerTransactionRepository) FindByAccountAndPeriod(ctx context.Context, accountID string, from, to time.Time) ([]*entity.Transaction, error) {
	var records []*entity.Transaction

	err := r.forEachInPeriod(accountID, from, to, func(record *entity.Transaction) {
		records = append(records, record)
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// SumSpent totals debits: transfers and exchanges where the account is the
// sender, plus withdrawals from the account.
func (r *BadgerTransactionRepository) SumSpent(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero

	err := r.forEachInPeriod(accountID, from, to, func(record *entity.Transaction) {
		switch record.Type {
		case entity.Transfer, entity.Exchange:
			if record.SenderAccountID == accountID {
				total = total.Add(record.Sum)
			}
		case entity.Withdrawal:
			if record.RecipientAccountID == accountID {
				total = total.Add(record.Sum)
			}
		}
	})
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// SumReceived totals credits: every record where the account is the
// recipient, withdrawals excluded.
func (r *BadgerTransactionRepository) SumReceived(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero

	err := r.forEachInPeriod(accountID, from, to, func(record *entity.Transaction) {
		if record.RecipientAccountID == accountID && record.Type != entity.Withdrawal {
			total = total.Add(record.SumRecipient)
		}
	})
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// forEachInPeriod walks the per-account index over [from, to] and invokes
// fn with each resolved record, oldest first. Key suffixes past the prefix
// are "<20-digit stamp>:<tx id>", so parsing needs no separator scan over
// the account id.
func (r *BadgerTransactionRepository) forEachInPeriod(accountID string, from, to time.Time, fn func(*entity.Transaction)) error {
	prefix := txIndexPrefix(accountID)
	lower := append(append([]byte{}, prefix...), fmt.Sprintf("%020d:", from.UnixNano())...)
	upper := to.UnixNano()

	const stampWidth = 20

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(lower); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			suffix := key[len(prefix):]
			if len(suffix) < stampWidth+2 {
				return fmt.Errorf("malformed index key %q", key)
			}
			stamp, err := strconv.ParseInt(suffix[:stampWidth], 10, 64)
			if err != nil {
				return fmt.Errorf("malformed index key %q: %w", key, err)
			}
			if stamp > upper {
				break
			}
			txID := suffix[stampWidth+1:]

			item, err := txn.Get(txKey(txID))
			if err != nil {
				return err
			}

			var record entity.Transaction
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			fn(&record)
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to scan transactions: %w", err)
	}
	return nil
}
