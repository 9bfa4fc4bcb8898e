// Package pricing implements the price and FX history cache used by the
// valuation engines: bounded concurrent fetching, calendar gap-filling and
// the fallback chain that keeps missing market data from ever failing a
// computation.
package pricing

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ymoney/networth-backend/internal/marketdata"
)

// Origin identifies where a price point came from. The currency policy
// consults it per point: a freshly fetched point carries the provider's
// quote currency and may need FX conversion, while a fallback point is the
// asset's last cached price, which is already in the local currency for
// exchange-synced assets.
type Origin int

const (
	// OriginFetched marks a point retrieved from the market-data provider.
	OriginFetched Origin = iota
	// OriginAssetFallback marks a point substituted from the asset's last
	// known current price because no fetched data covered the date.
	OriginAssetFallback
)

// PricePoint is one daily closing price tagged with its quote currency and
// origin at the moment of fetch.
type PricePoint struct {
	Close    float64
	Currency string
	Origin   Origin
}

// History maps symbol -> date ("2006-01-02") -> price point.
// A symbol whose fetch failed entirely maps to an empty inner map; callers
// fall back to the asset's last cached price for every date.
type History map[string]map[string]PricePoint

// Lookup returns the price point for a symbol on a date.
func (h History) Lookup(symbol, date string) (PricePoint, bool) {
	series, ok := h[symbol]
	if !ok {
		return PricePoint{}, false
	}
	p, ok := series[date]
	return p, ok
}

// Cache fetches and memoizes daily close-price series for a set of symbols.
//
// A Cache is additive-only: a cancelled or partially failed fetch leaves any
// series already merged intact, so it is always safe to keep and reuse. The
// zero value is not usable; construct with NewCache.
type Cache struct {
	provider    marketdata.Provider
	bufferDays  int
	concurrency int

	mu     sync.Mutex
	series History
}

// NewCache creates a price cache.
//
// bufferDays extends every requested range backward to guarantee a seed value
// exists before forward-filling across non-trading days. concurrency bounds
// the number of in-flight provider requests.
func NewCache(provider marketdata.Provider, bufferDays, concurrency int) *Cache {
	if bufferDays <= 0 {
		bufferDays = 7
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Cache{
		provider:    provider,
		bufferDays:  bufferDays,
		concurrency: concurrency,
		series:      make(History),
	}
}

// Fetch retrieves daily closing prices for all symbols across the inclusive
// date range and returns them gap-filled so that every calendar day in
// [startDate-buffer, endDate] has a defined price, provided at least one
// data point was retrieved for the symbol.
//
// Per-symbol fetches run concurrently under a bounded worker pool. Results
// are merged into the cache only after the whole group completes, so no
// caller ever observes a partially fetched symbol. A symbol that fails
// completely is recorded as an empty series and logged; the error is not
// propagated, callers use the asset's last known price instead.
//
// Symbols already cached are not refetched; the cache lives for one
// computation, not across requests.
func (c *Cache) Fetch(ctx context.Context, symbols []string, startDate, endDate time.Time) History {
	fetchStart := startDate.AddDate(0, 0, -c.bufferDays)

	c.mu.Lock()
	missing := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		if symbol == "" {
			continue
		}
		if _, ok := c.series[symbol]; !ok {
			missing = append(missing, symbol)
		}
	}
	c.mu.Unlock()

	fetched := make(map[string]map[string]PricePoint, len(missing))
	var fetchedMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, symbol := range missing {
		symbol := symbol
		g.Go(func() error {
			series, err := c.provider.GetClosePrices(gctx, symbol, fetchStart, endDate)
			if err != nil {
				log.Printf("price fetch failed for %s: %v", symbol, err)
				series = marketdata.Series{Symbol: symbol}
			}

			filled := fillSeries(series, fetchStart, endDate)

			fetchedMu.Lock()
			fetched[symbol] = filled
			fetchedMu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait is for completion only. Merging after
	// the barrier keeps partial results invisible to concurrent readers.
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	for symbol, filled := range fetched {
		c.series[symbol] = filled
	}

	result := make(History, len(symbols))
	for _, symbol := range symbols {
		if s, ok := c.series[symbol]; ok {
			result[symbol] = s
		}
	}
	return result
}

// fillSeries expands a fetched series into a calendar-complete map.
//
// Missing days are filled forward (carry the last known close across
// weekends and holidays), then the leading days before the first data point
// are seeded backward with that first close. Non-finite closes are treated
// as missing. An input with no valid point yields an empty map.
func fillSeries(series marketdata.Series, startDate, endDate time.Time) map[string]PricePoint {
	known := make(map[string]float64, len(series.Points))
	for _, p := range series.Points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			continue
		}
		known[p.Date.Format("2006-01-02")] = p.Close
	}

	filled := make(map[string]PricePoint)
	if len(known) == 0 {
		return filled
	}

	var last float64
	seeded := false
	var leading []string

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if close, ok := known[key]; ok {
			last = close
			seeded = true
		}
		if !seeded {
			leading = append(leading, key)
			continue
		}
		filled[key] = PricePoint{Close: last, Currency: series.Currency, Origin: OriginFetched}
	}

	// Backward fill: seed days before the first known close with it.
	if seeded {
		for _, key := range leading {
			filled[key] = PricePoint{Close: firstKnown(series), Currency: series.Currency, Origin: OriginFetched}
		}
	}

	return filled
}

// firstKnown returns the earliest finite close in the series.
func firstKnown(series marketdata.Series) float64 {
	for _, p := range series.Points {
		if !math.IsNaN(p.Close) && !math.IsInf(p.Close, 0) {
			return p.Close
		}
	}
	return 0
}
