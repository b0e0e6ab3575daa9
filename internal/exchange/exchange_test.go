package exchange_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cradoe/peoplepay/internal/cache"
	"github.com/cradoe/peoplepay/internal/currency"
	"github.com/cradoe/peoplepay/internal/exchange"
	"github.com/cradoe/peoplepay/internal/mocks"
	"github.com/cradoe/peoplepay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingCache struct{}

func (failingCache) Get(context.Context, string) (float64, bool, error) {
	return 0, false, errors.New("redis down")
}

func (failingCache) Set(context.Context, string, float64, time.Duration) error {
	return errors.New("redis down")
}

func (failingCache) Delete(context.Context, ...string) error {
	return errors.New("redis down")
}

func rate(from, to string, value float64) *models.ExchangeRate {
	return &models.ExchangeRate{FromCurrency: from, ToCurrency: to, Rate: value}
}

func mustCurrency(t *testing.T, code string) currency.Currency {
	t.Helper()
	c, ok := currency.Lookup(code)
	require.True(t, ok)
	return c
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "USD-INR", exchange.CacheKey("usd", "INR"))
}

func TestRateSameCurrency(t *testing.T) {
	source := new(mocks.MockExchangeRateRepo)
	conv := exchange.NewConverter(source, cache.NewMemory(), 0, nil)

	r, err := conv.Rate(context.Background(), "USD", "usd")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)
	source.AssertNotCalled(t, "FindLatest", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateDirectIsCached(t *testing.T) {
	ctx := context.Background()
	source := new(mocks.MockExchangeRateRepo)
	source.On("FindLatest", mock.Anything, "USD", "INR").Return(rate("USD", "INR", 83.5), true, nil).Once()

	conv := exchange.NewConverter(source, cache.NewMemory(), time.Minute, nil)

	for range 3 {
		r, err := conv.Rate(ctx, "USD", "INR")
		require.NoError(t, err)
		assert.Equal(t, 83.5, r)
	}

	source.AssertExpectations(t)
}

func TestRateDerivedFromReverse(t *testing.T) {
	ctx := context.Background()
	source := new(mocks.MockExchangeRateRepo)
	source.On("FindLatest", mock.Anything, "INR", "USD").Return(nil, false, nil).Once()
	source.On("FindLatest", mock.Anything, "USD", "INR").Return(rate("USD", "INR", 83.5), true, nil).Once()

	conv := exchange.NewConverter(source, cache.NewMemory(), time.Minute, nil)

	r, err := conv.Rate(ctx, "INR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1/83.5, r, 1e-12)
	assert.Equal(t, "0.011976", currency.FormatReverseRate(83.5))

	source.AssertExpectations(t)
}

func TestRateNotFound(t *testing.T) {
	source := new(mocks.MockExchangeRateRepo)
	source.On("FindLatest", mock.Anything, mock.Anything, mock.Anything).Return(nil, false, nil)

	conv := exchange.NewConverter(source, cache.NewMemory(), time.Minute, nil)

	_, err := conv.Rate(context.Background(), "USD", "LKR")
	assert.ErrorIs(t, err, exchange.ErrRateNotFound)
}

func TestRateSourceError(t *testing.T) {
	source := new(mocks.MockExchangeRateRepo)
	source.On("FindLatest", mock.Anything, "USD", "PHP").Return(nil, false, errors.New("connection refused"))

	conv := exchange.NewConverter(source, cache.NewMemory(), time.Minute, nil)

	_, err := conv.Rate(context.Background(), "USD", "PHP")
	require.Error(t, err)
	assert.NotErrorIs(t, err, exchange.ErrRateNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRateSurvivesCacheFailure(t *testing.T) {
	source := new(mocks.MockExchangeRateRepo)
	source.On("FindLatest", mock.Anything, "EUR", "GBP").Return(rate("EUR", "GBP", 0.86), true, nil).Twice()

	conv := exchange.NewConverter(source, failingCache{}, time.Minute, nil)

	for range 2 {
		r, err := conv.Rate(context.Background(), "EUR", "GBP")
		require.NoError(t, err)
		assert.Equal(t, 0.86, r)
	}
	source.AssertExpectations(t)
}

func TestConvertRoundsToTarget(t *testing.T) {
	ctx := context.Background()
	source := new(mocks.MockExchangeRateRepo)
	source.On("FindLatest", mock.Anything, "USD", "JPY").Return(rate("USD", "JPY", 149.237), true, nil)
	source.On("FindLatest", mock.Anything, "USD", "INR").Return(rate("USD", "INR", 83.5), true, nil)

	conv := exchange.NewConverter(source, cache.NewMemory(), time.Minute, nil)

	amount, err := conv.Convert(ctx, 10, mustCurrency(t, "USD"), mustCurrency(t, "JPY"))
	require.NoError(t, err)
	assert.Equal(t, 1492.0, amount)

	amount, err = conv.Convert(ctx, 12.34, mustCurrency(t, "USD"), mustCurrency(t, "INR"))
	require.NoError(t, err)
	assert.Equal(t, 1030.39, amount)
}

func TestInvalidateDropsBothDirections(t *testing.T) {
	ctx := context.Background()
	source := new(mocks.MockExchangeRateRepo)
	source.On("FindLatest", mock.Anything, "USD", "INR").Return(rate("USD", "INR", 83.5), true, nil).Once()
	source.On("FindLatest", mock.Anything, "INR", "USD").Return(nil, false, nil).Once()
	source.On("FindLatest", mock.Anything, "USD", "INR").Return(rate("USD", "INR", 84.0), true, nil).Once()

	mem := cache.NewMemory()
	conv := exchange.NewConverter(source, mem, time.Minute, nil)

	_, err := conv.Rate(ctx, "USD", "INR")
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, "INR-USD", 1/83.5, time.Minute))

	require.NoError(t, conv.Invalidate(ctx, "USD", "INR"))

	_, found, _ := mem.Get(ctx, "USD-INR")
	assert.False(t, found)
	_, found, _ = mem.Get(ctx, "INR-USD")
	assert.False(t, found)

	r, err := conv.Rate(ctx, "INR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1/84.0, r, 1e-12)
}

func TestConvertersDoNotShareState(t *testing.T) {
	ctx := context.Background()
	first := new(mocks.MockExchangeRateRepo)
	first.On("FindLatest", mock.Anything, "USD", "SGD").Return(rate("USD", "SGD", 1.35), true, nil)
	second := new(mocks.MockExchangeRateRepo)
	second.On("FindLatest", mock.Anything, "USD", "SGD").Return(rate("USD", "SGD", 1.29), true, nil)

	a := exchange.NewConverter(first, cache.NewMemory(), time.Minute, nil)
	b := exchange.NewConverter(second, cache.NewMemory(), time.Minute, nil)

	ra, err := a.Rate(ctx, "USD", "SGD")
	require.NoError(t, err)
	rb, err := b.Rate(ctx, "USD", "SGD")
	require.NoError(t, err)

	assert.Equal(t, 1.35, ra)
	assert.Equal(t, 1.29, rb)
}
