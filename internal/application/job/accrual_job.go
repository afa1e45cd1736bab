// Package job contains the long-lived scheduled jobs. Each job is a plain
// object constructed with its dependencies and run on a fixed tick by the
// process scheduler; lifecycle is owned by main, not by any web framework.
package job

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
)

// InterestAccruer is the slice of the transaction engine the accrual job
// drives: the serialized balance-update path.
type InterestAccruer interface {
	AccrueInterest(ctx context.Context, accountID string, monthlyPercent decimal.Decimal) (*entity.Account, error)
}

// AccrualJob credits monthly interest to every positive-balance account.
// The tick fires often, so a calendar guard makes sure interest is applied
// once per month: only on the last day of the month, within a narrow
// window before midnight.
type AccrualJob struct {
	accounts       repository.AccountRepository
	engine         InterestAccruer
	monthlyPercent decimal.Decimal
	window         time.Duration
	logger         logger.Logger
	now            func() time.Time
}

// NewAccrualJob creates a new accrual job.
func NewAccrualJob(
	accounts repository.AccountRepository,
	engine InterestAccruer,
	monthlyPercent decimal.Decimal,
	window time.Duration,
	log logger.Logger,
) *AccrualJob {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	if window <= 0 {
		window = 10 * time.Minute
	}

	return &AccrualJob{
		accounts:       accounts,
		engine:         engine,
		monthlyPercent: monthlyPercent,
		window:         window,
		logger:         log,
		now:            time.Now,
	}
}

// Run implements cron.Job. Outside the guard window it is a no-op. Inside
// it, accounts are processed concurrently and independently: one failed
// account is logged and does not block or roll back the others.
func (j *AccrualJob) Run() {
	now := j.now()
	if !j.shouldAccrue(now) {
		return
	}

	ctx := context.Background()
	accounts, err := j.accounts.FindWithPositiveBalance(ctx)
	if err != nil {
		j.logger.Error("Failed to list accounts for accrual", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	j.logger.Info("Accruing monthly interest", map[string]interface{}{
		"accounts": len(accounts),
		"percent":  j.monthlyPercent.String(),
	})

	var wg sync.WaitGroup
	for _, account := range accounts {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := j.engine.AccrueInterest(ctx, id, j.monthlyPercent); err != nil {
				j.logger.Error("Interest accrual failed for account", map[string]interface{}{
					"account_id": id,
					"error":      err.Error(),
				})
			}
		}(account.ID)
	}
	wg.Wait()
}

// shouldAccrue reports whether now is the last calendar day of its month
// and within the end-of-day window.
func (j *AccrualJob) shouldAccrue(now time.Time) bool {
	if now.AddDate(0, 0, 1).Day() != 1 {
		return false
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now) <= j.window
}
