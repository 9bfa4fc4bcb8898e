// Package marketdata fetches daily closing prices and FX rates from the
// Yahoo Finance chart API. It is the only package that talks to the external
// market-data source; everything above it consumes parsed Series values.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is the market-data contract consumed by the pricing layer.
// Implementations must respect context cancellation and bound every call
// with a timeout; a failed fetch is reported as an error and recovered by
// the caller's fallback chain, never retried here.
type Provider interface {
	GetClosePrices(ctx context.Context, symbol string, startDate, endDate time.Time) (Series, error)
	GetFxRate(ctx context.Context, symbol string) (float64, error)
}

// Client fetches financial data from the Yahoo Finance chart API.
// It wraps an HTTP client with a bounded per-request timeout.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a market-data client. Every request is bounded by the
// given timeout in addition to any deadline on the caller's context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// GetClosePrices fetches daily closing prices for a symbol within the
// inclusive date range and returns them as a parsed Series tagged with the
// provider-reported quote currency.
//
// The range query uses Unix timestamps; the end date is extended by one day
// because the provider treats period2 as exclusive.
func (c *Client) GetClosePrices(ctx context.Context, symbol string, startDate, endDate time.Time) (Series, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		symbol,
		startDate.Unix(),
		endDate.AddDate(0, 0, 1).Unix(),
	)

	response, err := c.query(ctx, url)
	if err != nil {
		return Series{}, err
	}

	return parseSeries(symbol, response)
}

// GetFxRate fetches the most recent closing rate for an FX pair symbol
// (e.g. "USDTWD=X"). Uses the provider's 5-day range query and returns the
// latest close, so weekends and holidays still resolve to the last fix.
func (c *Client) GetFxRate(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d",
		symbol,
	)

	response, err := c.query(ctx, url)
	if err != nil {
		return 0, err
	}

	series, err := parseSeries(symbol, response)
	if err != nil {
		return 0, err
	}
	if len(series.Points) == 0 {
		return 0, fmt.Errorf("no rate data returned for %s", symbol)
	}

	return series.Points[len(series.Points)-1].Close, nil
}

// parseSeries converts a raw chart API response into a Series.
// Validates that timestamps and close prices are present and aligned.
func parseSeries(symbol string, response Response) (Series, error) {
	if len(response.Chart.Result) == 0 {
		return Series{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return Series{}, fmt.Errorf("no price data returned for %s", symbol)
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return Series{}, fmt.Errorf("no close prices returned for %s", symbol)
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return Series{}, fmt.Errorf("mismatched data lengths for %s", symbol)
	}

	points := make([]Point, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		points[i] = Point{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: result.Indicators.Quote[0].Close[i],
		}
	}

	return Series{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Points:   points,
	}, nil
}

// query executes one HTTP request to the chart API.
// Sets the headers the provider requires and checks for API-level errors.
func (c *Client) query(ctx context.Context, url string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("market data error: %s", *response.Chart.Error)
	}

	return response, nil
}
