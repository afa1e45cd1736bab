package repository

import (
	"context"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

// ExchangeRateRepository defines the interface for the append-only exchange
// rate store. Rates are never overwritten: refreshes append new versions and
// Latest selects the most recently updated one.
type ExchangeRateRepository interface {
	// Latest returns the current rate for the currency code, or
	// entity.NotFoundError if no version exists.
	Latest(ctx context.Context, currency string) (*entity.ExchangeRate, error)

	// Append stores a new rate version.
	Append(ctx context.Context, rate *entity.ExchangeRate) error
}
