package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
)

// moneyScale is the number of decimal places every settled amount carries.
const moneyScale = 2

// ExchangeService resolves current exchange rates and converts amounts
// between currencies through the base currency.
type ExchangeService struct {
	rates  repository.ExchangeRateRepository
	logger logger.Logger
}

// NewExchangeService creates a new exchange service.
func NewExchangeService(rates repository.ExchangeRateRepository, log logger.Logger) *ExchangeService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExchangeService{
		rates:  rates,
		logger: log,
	}
}

// LatestRate returns the most recently updated rate version for the
// currency code.
func (s *ExchangeService) LatestRate(ctx context.Context, currency string) (*entity.ExchangeRate, error) {
	return s.rates.Latest(ctx, currency)
}

// Convert translates amount from one currency into another using the
// current official rates. Cross-foreign conversion bridges through the base
// currency, rounding at every intermediate step; the amount is rounded away
// from zero to two decimal places each time. The ordering of the rounding
// points is fixed: changing it changes settlement amounts.
func (s *ExchangeService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	result := amount

	if from != entity.BaseCurrency {
		rate, err := s.rates.Latest(ctx, from)
		if err != nil {
			return decimal.Zero, fmt.Errorf("no rate for sender currency: %w", err)
		}
		result = result.Mul(rate.Rate).
			Div(decimal.NewFromInt(int64(rate.Scale))).
			RoundUp(moneyScale)
	}

	if to != entity.BaseCurrency {
		rate, err := s.rates.Latest(ctx, to)
		if err != nil {
			return decimal.Zero, fmt.Errorf("no rate for recipient currency: %w", err)
		}
		result = result.Div(rate.Rate).
			RoundUp(moneyScale).
			Mul(decimal.NewFromInt(int64(rate.Scale))).
			RoundUp(moneyScale)
	}

	s.logger.Debug("Converted amount", map[string]interface{}{
		"from":   from,
		"to":     to,
		"amount": amount.String(),
		"result": result.String(),
	})

	return result, nil
}
