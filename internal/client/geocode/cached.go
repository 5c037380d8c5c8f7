package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/logging"
)

const (
	DefaultCacheSize        = 256
	DefaultRate             = rate.Limit(1)
	DefaultFailureThreshold = 3
	DefaultOpenDuration     = time.Minute
)

// Cached wraps a Geocoder with an LRU cache, a rate limiter and a circuit
// breaker. Both found addresses and "no address" answers are cached;
// transport failures are not.
type Cached struct {
	inner   Geocoder
	log     logging.Logger
	cache   *lru.Cache[string, Address]
	limiter *rate.Limiter
	breaker *circuitBreaker
}

type cachedConfig struct {
	size      int
	limit     rate.Limit
	burst     int
	threshold int
	openFor   time.Duration
}

// CachedOption configures a Cached geocoder.
type CachedOption func(*cachedConfig)

func WithCacheSize(n int) CachedOption {
	return func(c *cachedConfig) { c.size = n }
}

// WithRate limits upstream calls to r per second. A non-positive r disables
// limiting.
func WithRate(r float64) CachedOption {
	return func(c *cachedConfig) {
		if r <= 0 {
			c.limit = rate.Inf
			return
		}
		c.limit = rate.Limit(r)
	}
}

// WithCircuitBreaker opens the circuit after threshold consecutive failures
// and keeps it open for openFor.
func WithCircuitBreaker(threshold int, openFor time.Duration) CachedOption {
	return func(c *cachedConfig) {
		c.threshold = threshold
		c.openFor = openFor
	}
}

func NewCached(inner Geocoder, log logging.Logger, opts ...CachedOption) (*Cached, error) {
	cfg := cachedConfig{
		size:      DefaultCacheSize,
		limit:     DefaultRate,
		burst:     1,
		threshold: DefaultFailureThreshold,
		openFor:   DefaultOpenDuration,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cache, err := lru.New[string, Address](cfg.size)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode cache: %w", err)
	}

	return &Cached{
		inner:   inner,
		log:     log.With("geocoder", inner.Name()),
		cache:   cache,
		limiter: rate.NewLimiter(cfg.limit, cfg.burst),
		breaker: newCircuitBreaker(cfg.threshold, cfg.openFor),
	}, nil
}

func (c *Cached) Name() string { return "cached-" + c.inner.Name() }

// cacheKey rounds to 5 decimals (about a metre).
func cacheKey(coord models.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f", coord.Latitude, coord.Longitude)
}

func (c *Cached) Reverse(ctx context.Context, coord models.Coordinate) (Address, error) {
	key := cacheKey(coord)
	if addr, ok := c.cache.Get(key); ok {
		return found(addr)
	}

	if !c.breaker.allow() {
		return Address{}, ErrCircuitOpen
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.breaker.abandon()
		return Address{}, err
	}

	addr, err := c.inner.Reverse(ctx, coord)
	switch {
	case err == nil, errors.Is(err, ErrNoAddress):
		if c.breaker.success() {
			c.log.Info(ctx, "geocoder recovered")
		}
		if err != nil {
			addr = Address{}
		}
		c.cache.Add(key, addr)
		return found(addr)
	case ctx.Err() != nil:
		c.breaker.abandon()
		return Address{}, err
	default:
		if c.breaker.failure() {
			c.log.Warn(ctx, "geocoder circuit opened", "err", err)
		} else {
			c.log.Debug(ctx, "geocoder call failed", "err", err)
		}
		return Address{}, err
	}
}

func found(addr Address) (Address, error) {
	if !addr.Found {
		return Address{}, ErrNoAddress
	}
	return addr, nil
}
