package cache

import (
	"context"
	"sync"
	"time"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
)

// entry is a cached latest-rate with its load time.
type entry struct {
	rate     *entity.ExchangeRate
	loadedAt time.Time
}

// ExchangeRateCache is a read-through decorator over an exchange rate
// repository. Conversions are read-mostly, so the latest rate per currency
// is kept in memory for a short TTL; Append writes through and replaces the
// cached version immediately so a refresh becomes visible without waiting
// for expiry.
type ExchangeRateCache struct {
	inner      repository.ExchangeRateRepository
	expiration time.Duration
	mutex      sync.RWMutex
	cache      map[string]entry
}

// NewExchangeRateCache wraps the given repository with an in-memory
// latest-rate cache.
func NewExchangeRateCache(inner repository.ExchangeRateRepository, expiration time.Duration) *ExchangeRateCache {
	if expiration <= 0 {
		expiration = time.Minute
	}
	return &ExchangeRateCache{
		inner:      inner,
		expiration: expiration,
		cache:      make(map[string]entry),
	}
}

// Latest returns the cached current rate for the currency, falling back to
// the wrapped repository on miss or expiry.
func (c *ExchangeRateCache) Latest(ctx context.Context, currency string) (*entity.ExchangeRate, error) {
	c.mutex.RLock()
	e, ok := c.cache[currency]
	c.mutex.RUnlock()

	if ok && time.Since(e.loadedAt) <= c.expiration {
		return e.rate, nil
	}

	rate, err := c.inner.Latest(ctx, currency)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.cache[currency] = entry{rate: rate, loadedAt: time.Now()}
	c.mutex.Unlock()

	return rate, nil
}

// Append writes the new rate version through to the wrapped repository and
// refreshes the cached entry.
func (c *ExchangeRateCache) Append(ctx context.Context, rate *entity.ExchangeRate) error {
	if err := c.inner.Append(ctx, rate); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// An older version must never shadow a newer cached one.
	if e, ok := c.cache[rate.Currency]; ok && e.rate.UpdateDate.After(rate.UpdateDate) {
		return nil
	}
	c.cache[rate.Currency] = entry{rate: rate, loadedAt: time.Now()}
	return nil
}

// Clear drops all cached entries.
func (c *ExchangeRateCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]entry)
}

// Size returns the number of cached currencies.
func (c *ExchangeRateCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}
