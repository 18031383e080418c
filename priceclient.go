package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// This file contains the client for the exchange's public market-data API
// (minute-bar klines). It is the only component that talks to the network.

// DefaultAPIBaseURL is the exchange's public market-data endpoint.
const DefaultAPIBaseURL = "https://api.binance.com/api/v3"

// bridgeStablecoin is the pivot asset used when no direct pair against the
// reporting currency exists.
const bridgeStablecoin = "USDT"

// fallbackBridgeRate approximates the USDT to EUR rate when even the bridge
// rate fetch fails. This is an explicit approximation, not market data.
var fallbackBridgeRate = decimal.NewFromFloat(0.92)

// ErrRateLimited signals that the remote API asked us to slow down.
var ErrRateLimited = errors.New("market data: rate limited")

// RetryPolicy is an explicit bounded-retry policy with exponential backoff.
//
// The policy retries when the error is a rate-limit signal; with
// RetryAllErrors it also retries generic transport failures under the same
// schedule, which reproduces the venue-conflating source behavior.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration // doubled after each failed attempt
	RetryAllErrors bool
}

// DefaultRetryPolicy matches the source: 3 attempts, 500ms base delay,
// rate-limit and transport errors retried identically.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, RetryAllErrors: true}

// retryable reports whether the error warrants another attempt.
func (p RetryPolicy) retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || p.RetryAllErrors
}

// do runs f under the policy. The backoff sleep blocks only the calling
// goroutine; batch workers retry independently of each other.
func (p RetryPolicy) do(f func() (Price, error)) (Price, error) {
	delay := p.BaseDelay
	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		var price Price
		price, err = f()
		if err == nil {
			return price, nil
		}
		if !p.retryable(err) || attempt == p.MaxAttempts-1 {
			break
		}
		time.Sleep(delay)
		delay *= 2
	}
	return UnknownPrice, err
}

// Client fetches minute-bar close prices in the reporting currency,
// writing every successful fetch through to the price cache.
//
// Client never fails outward: exhausted retries and missing market data both
// degrade to an unknown Price.
type Client struct {
	baseURL  string
	currency string
	cache    *PriceCache
	http     *http.Client
	limiter  *rate.Limiter
	retry    RetryPolicy
	group    singleflight.Group
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL overrides the market-data endpoint (used by tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) { c.retry = p }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a market-data client reporting prices in the given
// currency, backed by the given cache.
func NewClient(currency string, cache *PriceCache, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultAPIBaseURL,
		currency: currency,
		cache:    cache,
		http:     &http.Client{Timeout: 5 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(10), 10),
		retry:    DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PriceAt returns the asset's price in the reporting currency at the
// instant's minute. It implements PriceSource.
//
// Lookup order: reporting currency itself (always 1), cache, direct pair,
// bridge pair through the stablecoin. Whatever the outcome, PriceAt does
// not fail: an unpriceable (asset, minute) yields an unknown Price.
func (c *Client) PriceAt(asset string, at time.Time) Price {
	if asset == c.currency {
		return PriceOf(1)
	}
	if p, ok := c.cache.Get(asset, at); ok {
		return p
	}

	// Concurrent batch workers asking for the same (asset, minute) share a
	// single fetch.
	key := cacheKey(asset, MinuteBucket(at))
	v, _, _ := c.group.Do(key, func() (any, error) {
		if p, ok := c.cache.Get(asset, at); ok {
			return p, nil
		}
		p, err := c.retry.do(func() (Price, error) { return c.fetch(asset, MinuteBucket(at)) })
		if err != nil {
			log.Printf("price %s at %s unavailable: %v", asset, at.Format(time.RFC3339), err)
			return UnknownPrice, nil
		}
		c.cache.Set(asset, at, p)
		return p, nil
	})
	return v.(Price)
}

// fetch is one attempt at pricing the asset: direct pair first, then the
// bridge pair converted through the stablecoin rate. A response with no bar
// in the window is a valid outcome (unknown price, nil error); only
// transport-level and rate-limit failures return an error.
func (c *Client) fetch(asset string, bucket int64) (Price, error) {
	// direct pair, e.g. BTCEUR
	close, ok, err := c.klineClose(asset+c.currency, bucket)
	if err != nil {
		return UnknownPrice, err
	}
	if ok {
		return NewPrice(close), nil
	}

	// bridge pair, e.g. BTCUSDT, converted with the stablecoin rate
	close, ok, err = c.klineClose(asset+bridgeStablecoin, bucket)
	if err != nil {
		return UnknownPrice, err
	}
	if !ok {
		return UnknownPrice, nil
	}
	return NewPrice(close.Mul(c.bridgeRate(bucket))), nil
}

// bridgeRate returns the stablecoin to reporting-currency rate at the given
// minute. The pair is quoted the other way around (reporting per stablecoin
// units, e.g. EURUSDT), hence the inversion. Any failure falls back to a
// hardcoded approximate constant.
func (c *Client) bridgeRate(bucket int64) decimal.Decimal {
	close, ok, err := c.klineClose(c.currency+bridgeStablecoin, bucket)
	if err != nil || !ok || close.IsZero() {
		return fallbackBridgeRate
	}
	return decimal.NewFromInt(1).Div(close)
}

// klineClose fetches the single minute bar closest to the bucket, within a
// one-minute window on each side, and returns its close price. ok is false
// when the venue has no bar there, which is not an error.
func (c *Client) klineClose(symbol string, bucket int64) (close decimal.Decimal, ok bool, err error) {
	addr := fmt.Sprintf("%s/klines?symbol=%s&interval=1m&startTime=%d&endTime=%d&limit=1",
		c.baseURL, symbol, bucket-60_000, bucket+60_000)

	// A kline is a loosely-typed JSON array ([openTime, "open", "high",
	// "low", "close", ...]); decode to any and extract by path.
	var jobj any
	if err := c.jwget(addr, &jobj); err != nil {
		return close, false, err
	}
	jval, err := jsonpath.Get("$[0][4]", jobj)
	if err != nil {
		// empty payload: no bar at this minute for this pair
		return close, false, nil
	}
	str, isString := jval.(string)
	if !isString {
		return close, false, fmt.Errorf("unexpected close value %v for %s", jval, symbol)
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return close, false, fmt.Errorf("cannot parse close %q for %s: %w", str, symbol, err)
	}
	return d, true, nil
}

// jwget performs a rate-limited HTTP GET and unmarshals the JSON response
// into the provided data structure. A 429 status maps to ErrRateLimited.
func (c *Client) jwget(addr string, data any) error {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return err
	}
	resp, err := c.http.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
