package job

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/mocks"
)

func feedRate(currency string, rate string) *entity.ExchangeRate {
	return &entity.ExchangeRate{
		Currency:   currency,
		Scale:      1,
		Rate:       decimal.RequireFromString(rate),
		UpdateDate: time.Now(),
	}
}

func TestRateRefreshAppendsEveryTrackedCurrency(t *testing.T) {
	feed := new(mocks.MockRateFeed)
	rates := new(mocks.MockExchangeRateRepository)

	usd := feedRate("USD", "3.2954")
	eur := feedRate("EUR", "3.4773")
	feed.On("FetchRate", mock.Anything, "USD").Return(usd, nil).Once()
	feed.On("FetchRate", mock.Anything, "EUR").Return(eur, nil).Once()
	rates.On("Append", mock.Anything, usd).Return(nil).Once()
	rates.On("Append", mock.Anything, eur).Return(nil).Once()

	j := NewRateRefreshJob(feed, rates, []string{"USD", "EUR"}, time.Second,
		logger.NewJSONLogger(nil, logger.ErrorLevel))
	j.Run()

	feed.AssertExpectations(t)
	rates.AssertExpectations(t)
}

func TestRateRefreshFetchFailureIsIsolated(t *testing.T) {
	feed := new(mocks.MockRateFeed)
	rates := new(mocks.MockExchangeRateRepository)

	eur := feedRate("EUR", "3.4773")
	feed.On("FetchRate", mock.Anything, "USD").Return(nil, entity.NewBadRequestError("rate feed returned status 503")).Once()
	feed.On("FetchRate", mock.Anything, "EUR").Return(eur, nil).Once()
	rates.On("Append", mock.Anything, eur).Return(nil).Once()

	j := NewRateRefreshJob(feed, rates, []string{"USD", "EUR"}, time.Second,
		logger.NewJSONLogger(nil, logger.ErrorLevel))
	j.Run()

	// EUR still landed; USD was only logged
	rates.AssertExpectations(t)
	rates.AssertNumberOfCalls(t, "Append", 1)
}

func TestRateRefreshPersistFailureIsIsolated(t *testing.T) {
	feed := new(mocks.MockRateFeed)
	rates := new(mocks.MockExchangeRateRepository)

	usd := feedRate("USD", "3.2954")
	feed.On("FetchRate", mock.Anything, "USD").Return(usd, nil).Once()
	rates.On("Append", mock.Anything, usd).Return(entity.NewBadRequestError("store unavailable")).Once()

	j := NewRateRefreshJob(feed, rates, []string{"USD"}, time.Second,
		logger.NewJSONLogger(nil, logger.ErrorLevel))
	j.Run()

	feed.AssertExpectations(t)
	rates.AssertExpectations(t)
}
