// Package exchange resolves exchange rates between currencies through an
// explicit cache in front of a rate store.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cradoe/peoplepay/internal/currency"
	"github.com/cradoe/peoplepay/internal/models"
)

const DefaultTTL = 5 * time.Minute

var ErrRateNotFound = errors.New("exchange rate not found")

type Cache interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, rate float64, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RateSource returns the latest stored rate for a currency pair. Rates are
// directional; found is false when no row exists for from→to.
type RateSource interface {
	FindLatest(ctx context.Context, from, to string) (*models.ExchangeRate, bool, error)
}

func CacheKey(from, to string) string {
	return strings.ToUpper(from) + "-" + strings.ToUpper(to)
}

type Converter struct {
	source RateSource
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewConverter builds a Converter. A non-positive ttl means DefaultTTL and a
// nil logger discards output.
func NewConverter(source RateSource, cache Cache, ttl time.Duration, logger *slog.Logger) *Converter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Converter{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Rate returns how many units of to one unit of from buys. A stored to→from
// row is used inverted when no direct row exists.
func (c *Converter) Rate(ctx context.Context, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return 1, nil
	}

	key := CacheKey(from, to)

	rate, found, err := c.cache.Get(ctx, key)
	if err != nil {
		// cache failures fall through to the store
		c.logger.Warn("exchange rate cache read failed", "key", key, "error", err.Error())
	} else if found {
		return rate, nil
	}

	rate, err = c.lookup(ctx, from, to)
	if err != nil {
		return 0, err
	}

	if err := c.cache.Set(ctx, key, rate, c.ttl); err != nil {
		c.logger.Warn("exchange rate cache write failed", "key", key, "error", err.Error())
	}

	return rate, nil
}

func (c *Converter) lookup(ctx context.Context, from, to string) (float64, error) {
	direct, found, err := c.source.FindLatest(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("find rate %s: %w", CacheKey(from, to), err)
	}
	if found && direct.Rate > 0 {
		return direct.Rate, nil
	}

	reverse, found, err := c.source.FindLatest(ctx, to, from)
	if err != nil {
		return 0, fmt.Errorf("find rate %s: %w", CacheKey(to, from), err)
	}
	if found && reverse.Rate > 0 {
		return currency.ReverseRate(reverse.Rate), nil
	}

	return 0, fmt.Errorf("%w: %s", ErrRateNotFound, CacheKey(from, to))
}

// Convert converts amount and rounds it to the target currency's precision.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to currency.Currency) (float64, error) {
	rate, err := c.Rate(ctx, from.Code, to.Code)
	if err != nil {
		return 0, err
	}

	return currency.ConvertCurrency(amount, rate, to.DecimalPlaces), nil
}

// Invalidate drops both directions of a pair, since either may have been
// cached from the row that changed.
func (c *Converter) Invalidate(ctx context.Context, from, to string) error {
	return c.cache.Delete(ctx, CacheKey(from, to), CacheKey(to, from))
}
