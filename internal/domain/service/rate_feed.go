package service

import (
	"context"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

// RateFeed defines the interface for the external official-rate feed
// queried by the refresh job.
type RateFeed interface {
	// FetchRate retrieves the current official rate for a currency code.
	FetchRate(ctx context.Context, currency string) (*entity.ExchangeRate, error)
}
