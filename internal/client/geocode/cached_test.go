package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCached(t *testing.T, inner Geocoder, opts ...CachedOption) *Cached {
	t.Helper()
	opts = append([]CachedOption{WithRate(0)}, opts...)
	c, err := NewCached(inner, logging.Nop{}, opts...)
	require.NoError(t, err)
	return c
}

func TestCached_HitsCacheForNearbyCoordinates(t *testing.T) {
	inner := &fakeGeocoder{addr: Address{Found: true, DisplayName: "Beijing"}}
	c := newTestCached(t, inner)
	ctx := context.Background()

	a1, err := c.Reverse(ctx, beijing)
	require.NoError(t, err)
	a2, err := c.Reverse(ctx, models.Coordinate{Latitude: 39.900001, Longitude: 116.400001})
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, 1, inner.count())
	assert.Equal(t, "cached-fake", c.Name())
}

func TestCached_CachesNoAddress(t *testing.T) {
	inner := &fakeGeocoder{err: ErrNoAddress}
	c := newTestCached(t, inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Reverse(ctx, beijing)
		require.ErrorIs(t, err, ErrNoAddress)
	}
	assert.Equal(t, 1, inner.count())
}

func TestCached_DoesNotCacheFailures(t *testing.T) {
	inner := &fakeGeocoder{err: errors.New("network down")}
	c := newTestCached(t, inner, WithCircuitBreaker(10, time.Minute))
	ctx := context.Background()

	_, err := c.Reverse(ctx, beijing)
	require.Error(t, err)

	inner.set(Address{Found: true, DisplayName: "Beijing"}, nil)
	addr, err := c.Reverse(ctx, beijing)
	require.NoError(t, err)
	assert.Equal(t, "Beijing", addr.DisplayName)
	assert.Equal(t, 2, inner.count())
}

func TestCached_CircuitBreaker(t *testing.T) {
	inner := &fakeGeocoder{err: errors.New("503")}
	c := newTestCached(t, inner, WithCircuitBreaker(2, time.Minute))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.breaker.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.Reverse(ctx, models.Coordinate{Latitude: float64(i)})
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, stateOpen, c.breaker.current())

	_, err := c.Reverse(ctx, models.Coordinate{Latitude: 5})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, inner.count())

	// probe after the open period fails and reopens
	now = now.Add(2 * time.Minute)
	_, err = c.Reverse(ctx, models.Coordinate{Latitude: 6})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, stateOpen, c.breaker.current())

	// successful probe closes the circuit
	now = now.Add(2 * time.Minute)
	inner.set(Address{Found: true, DisplayName: "Somewhere"}, nil)
	addr, err := c.Reverse(ctx, models.Coordinate{Latitude: 7})
	require.NoError(t, err)
	assert.Equal(t, "Somewhere", addr.DisplayName)
	assert.Equal(t, stateClosed, c.breaker.current())
}

func TestCached_CacheServedWhileOpen(t *testing.T) {
	inner := &fakeGeocoder{addr: Address{Found: true, DisplayName: "Beijing"}}
	c := newTestCached(t, inner, WithCircuitBreaker(1, time.Hour))
	ctx := context.Background()

	_, err := c.Reverse(ctx, beijing)
	require.NoError(t, err)

	inner.set(Address{}, errors.New("down"))
	_, err = c.Reverse(ctx, models.Coordinate{Latitude: 1, Longitude: 1})
	require.Error(t, err)
	require.Equal(t, stateOpen, c.breaker.current())

	addr, err := c.Reverse(ctx, beijing)
	require.NoError(t, err)
	assert.Equal(t, "Beijing", addr.DisplayName)
}

func TestCached_CancelledWaitDoesNotCountAsFailure(t *testing.T) {
	inner := &fakeGeocoder{addr: Address{Found: true, DisplayName: "x"}}
	c, err := NewCached(inner, logging.Nop{}, WithRate(0.001), WithCircuitBreaker(1, time.Hour))
	require.NoError(t, err)

	// first call consumes the only token
	_, err = c.Reverse(context.Background(), beijing)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Reverse(ctx, models.Coordinate{Latitude: 1})
	require.Error(t, err)
	assert.Equal(t, stateClosed, c.breaker.current())
	assert.Equal(t, 1, inner.count())
}

func TestNewCached_InvalidSize(t *testing.T) {
	_, err := NewCached(Offline{}, logging.Nop{}, WithCacheSize(0))
	require.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "39.90000,116.40000", cacheKey(beijing))
	assert.Equal(t, cacheKey(beijing), cacheKey(models.Coordinate{Latitude: 39.9000004, Longitude: 116.3999996}))
}
