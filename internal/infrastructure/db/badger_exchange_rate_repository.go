package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

const ratePrefix = "rate:"

// rateKey orders versions per currency by update time; Latest reads the
// highest key, Append only ever adds new ones.
func rateKey(currency string, rate *entity.ExchangeRate) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", ratePrefix, currency, rate.UpdateDate.UnixNano()))
}

// BadgerExchangeRateRepository implements the append-only exchange rate
// store on BadgerDB. The mapping between the ExchangeRate entity and the
// stored JSON lives entirely behind this type.
type BadgerExchangeRateRepository struct {
	db *badger.DB
}

// NewBadgerExchangeRateRepository creates a new BadgerDB exchange rate
// repository.
func NewBadgerExchangeRateRepository(db *badger.DB) *BadgerExchangeRateRepository {
	return &BadgerExchangeRateRepository{db: db}
}

// Latest returns the most recently updated rate version for the currency.
func (r *BadgerExchangeRateRepository) Latest(ctx context.Context, currency string) (*entity.ExchangeRate, error) {
	var rate entity.ExchangeRate
	found := false

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ratePrefix + currency + ":")
		seek := append(append([]byte{}, prefix...), 0xFF)

		it.Seek(seek)
		if !it.ValidForPrefix(prefix) {
			return nil
		}

		found = true
		return it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &rate)
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exchange rate: %w", err)
	}
	if !found {
		return nil, entity.NewNotFoundError("no exchange rate for currency %s", currency)
	}

	return &rate, nil
}

// Append stores a new rate version, never overwriting earlier ones.
func (r *BadgerExchangeRateRepository) Append(ctx context.Context, rate *entity.ExchangeRate) error {
	data, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange rate: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rateKey(rate.Currency, rate), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store exchange rate: %w", err)
	}

	return nil
}
