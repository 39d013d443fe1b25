package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/deckgen/pkg/buildinfo"
	"github.com/matzehuels/deckgen/pkg/cache"
	"github.com/matzehuels/deckgen/pkg/errors"
	"github.com/matzehuels/deckgen/pkg/observability"
)

const (
	// defaultTimeout bounds one request attempt.
	defaultTimeout = 30 * time.Second

	// maxPayloadSize caps a fetched payload. Deck payloads are JSON
	// documents, not media; anything larger is a misdirected URL.
	maxPayloadSize = 10 << 20
)

// IsURL reports whether the input names an http(s) resource rather than
// a local file.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetcher downloads deck payloads with retry and response caching.
// The zero value is not usable; create one with [NewFetcher].
type Fetcher struct {
	Client *http.Client
	Cache  cache.Cache
	Keyer  cache.Keyer

	// TTL is how long fetched responses stay cached.
	TTL time.Duration
}

// NewFetcher creates a fetcher over the given cache and keyer.
// If c is nil, responses are not cached.
// If keyer is nil, a DefaultKeyer is used.
func NewFetcher(c cache.Cache, keyer cache.Keyer) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Fetcher{
		Client: &http.Client{Timeout: defaultTimeout},
		Cache:  c,
		Keyer:  keyer,
		TTL:    cache.TTLHTTP,
	}
}

// Fetch retrieves the payload at url, serving from cache when possible.
// Transient failures (network errors, 429, 5xx) are retried with
// backoff; other HTTP errors fail immediately. Failures carry
// ErrCodeNetwork.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := f.Keyer.HTTPKey("payload", url)
	if data, hit, err := f.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "http")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "http")

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "deckgen/"+buildinfo.Version)

		resp, err := f.Client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to read
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return &RetryableError{Err: fmt.Errorf("http %d from %s", resp.StatusCode, url)}
		default:
			return fmt.Errorf("http %d from %s", resp.StatusCode, url)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize+1))
		if err != nil {
			return &RetryableError{Err: err}
		}
		if len(body) > maxPayloadSize {
			return fmt.Errorf("payload at %s exceeds %d bytes", url, maxPayloadSize)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch payload")
	}

	_ = f.Cache.Set(ctx, key, body, f.TTL)
	observability.Cache().OnCacheSet(ctx, "http", len(body))
	return body, nil
}
