package job

import (
	"context"
	"sync"
	"time"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
	domain "github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/service"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
)

// RateRefreshJob pulls the current official rate for every tracked currency
// from the external feed and appends it to the rate store as a new version.
type RateRefreshJob struct {
	feed       domain.RateFeed
	rates      repository.ExchangeRateRepository
	currencies []string
	timeout    time.Duration
	logger     logger.Logger
}

// NewRateRefreshJob creates a new rate refresh job.
func NewRateRefreshJob(
	feed domain.RateFeed,
	rates repository.ExchangeRateRepository,
	currencies []string,
	timeout time.Duration,
	log logger.Logger,
) *RateRefreshJob {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RateRefreshJob{
		feed:       feed,
		rates:      rates,
		currencies: currencies,
		timeout:    timeout,
		logger:     log,
	}
}

// Run implements cron.Job. Currencies are fetched concurrently; a fetch,
// parse or persist failure for one currency is logged and affects neither
// the other currencies nor future ticks. There is no retry within a tick.
func (j *RateRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, currency := range j.currencies {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			j.refresh(ctx, code)
		}(currency)
	}
	wg.Wait()
}

func (j *RateRefreshJob) refresh(ctx context.Context, code string) {
	rate, err := j.feed.FetchRate(ctx, code)
	if err != nil {
		j.logger.Error("Failed to fetch exchange rate", map[string]interface{}{
			"currency": code,
			"error":    err.Error(),
		})
		return
	}

	if err := j.rates.Append(ctx, rate); err != nil {
		j.logger.Error("Failed to append exchange rate", map[string]interface{}{
			"currency": code,
			"error":    err.Error(),
		})
		return
	}

	j.logger.Info("Exchange rate refreshed", map[string]interface{}{
		"currency": rate.Currency,
		"scale":    rate.Scale,
		"rate":     rate.Rate.String(),
	})
}
