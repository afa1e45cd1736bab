package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

const (
	defaultBaseURL = "https://api.nbrb.by/exrates/rates"

	// The feed quotes dates without a zone offset.
	feedDateLayout = "2006-01-02T15:04:05"
)

// NBRBClient fetches official rates from the National Bank rate feed. It
// implements the domain RateFeed interface. One request covers one
// currency; the caller bounds the whole refresh with a context timeout, so
// no retries happen here.
type NBRBClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNBRBClient creates a new rate feed client. An empty baseURL selects
// the production feed.
func NewNBRBClient(baseURL string, httpClient *http.Client) *NBRBClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &NBRBClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// rateResponse mirrors the feed's JSON payload for one currency.
type rateResponse struct {
	CurID        int             `json:"Cur_ID"`
	Abbreviation string          `json:"Cur_Abbreviation"`
	Scale        int             `json:"Cur_Scale"`
	OfficialRate decimal.Decimal `json:"Cur_OfficialRate"`
	Date         string          `json:"Date"`
}

// FetchRate retrieves the current official rate for a currency code.
func (c *NBRBClient) FetchRate(ctx context.Context, currency string) (*entity.ExchangeRate, error) {
	reqURL := fmt.Sprintf("%s/%s?parammode=2", c.baseURL, url.PathEscape(currency))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate feed returned status %d for %s", resp.StatusCode, currency)
	}

	var feed rateResponse
	if err := json.Unmarshal(bodyBytes, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !feed.OfficialRate.IsPositive() {
		return nil, fmt.Errorf("invalid official rate %s for %s", feed.OfficialRate, currency)
	}
	if feed.Scale <= 0 {
		return nil, fmt.Errorf("invalid scale %d for %s", feed.Scale, currency)
	}

	// The feed's own quote date versions the rate; fetch time is only the
	// fallback when the field is absent or malformed.
	updateDate, err := time.Parse(feedDateLayout, feed.Date)
	if err != nil {
		updateDate = time.Now()
	}

	return &entity.ExchangeRate{
		CurrencyID: feed.CurID,
		Currency:   feed.Abbreviation,
		Scale:      feed.Scale,
		Rate:       feed.OfficialRate,
		UpdateDate: updateDate,
	}, nil
}
