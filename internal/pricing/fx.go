package pricing

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/ymoney/networth-backend/internal/marketdata"
)

// SettingStore is the slice of the settings persistence the FX cache needs
// to back its last-known-good rate.
type SettingStore interface {
	GetValue(key string) (string, error)
	UpsertValue(key, value string) error
}

// FxCache resolves the local-currency value of one unit of the reference
// foreign currency, with a short TTL so that concurrent callers observe the
// same rate within a refresh window.
//
// Resolution chain: in-memory cache (within TTL) → provider fetch (persisted
// as the new last-known-good setting) → persisted setting → hardcoded
// fallback constant. Every step degrades silently; Rate never fails.
//
// The cache is an explicitly constructed, injectable object: tests and
// profile switches create their own instance instead of sharing hidden
// package state.
type FxCache struct {
	provider   marketdata.Provider
	settings   SettingStore
	symbol     string
	settingKey string
	ttl        time.Duration
	fallback   float64

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// NewFxCache creates an FX rate cache.
func NewFxCache(provider marketdata.Provider, settings SettingStore, symbol, settingKey string, ttl time.Duration, fallback float64) *FxCache {
	return &FxCache{
		provider:   provider,
		settings:   settings,
		symbol:     symbol,
		settingKey: settingKey,
		ttl:        ttl,
		fallback:   fallback,
	}
}

// Rate returns the current FX rate, consulting the fallback chain as needed.
//
// The provider call happens outside the lock, so two callers racing past an
// expired TTL may both fetch; the duplicate fetch is tolerated, a torn or
// inconsistent value is not.
func (c *FxCache) Rate(ctx context.Context) float64 {
	c.mu.Lock()
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		rate := c.rate
		c.mu.Unlock()
		return rate
	}
	c.mu.Unlock()

	rate, err := c.provider.GetFxRate(ctx, c.symbol)
	if err == nil && rate > 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0) {
		c.store(rate)
		return rate
	}
	if err != nil {
		log.Printf("fx fetch failed for %s: %v", c.symbol, err)
	}

	// Provider unavailable: last-known-good persisted rate.
	if c.settings != nil {
		if value, err := c.settings.GetValue(c.settingKey); err == nil {
			if persisted, err := strconv.ParseFloat(value, 64); err == nil && persisted > 0 {
				return persisted
			}
		}
	}

	return c.fallback
}

// Refresh forces a provider fetch, updating the cache and the persisted
// last-known-good setting on success. Used by the scheduled refresh cycle.
func (c *FxCache) Refresh(ctx context.Context) (float64, error) {
	rate, err := c.provider.GetFxRate(ctx, c.symbol)
	if err != nil {
		return 0, err
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, errInvalidRate
	}

	c.store(rate)
	return rate, nil
}

// Reset clears the cached rate, forcing the next Rate call through the
// full resolution chain.
func (c *FxCache) Reset() {
	c.mu.Lock()
	c.rate = 0
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// Fallback returns the hardcoded last-resort rate.
func (c *FxCache) Fallback() float64 {
	return c.fallback
}

func (c *FxCache) store(rate float64) {
	c.mu.Lock()
	c.rate = rate
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	if c.settings != nil {
		if err := c.settings.UpsertValue(c.settingKey, strconv.FormatFloat(rate, 'f', -1, 64)); err != nil {
			log.Printf("failed to persist fx rate: %v", err)
		}
	}
}

var errInvalidRate = errors.New("fetched fx rate is not a valid positive number")
