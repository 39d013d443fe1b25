// Package httputil fetches deck payloads over HTTP.
//
// # Overview
//
// The CLI accepts payload URLs as well as local files; this package
// provides the client side of that:
//
//   - [Fetcher]: Cached, retrying payload downloads
//   - [Retry]: Automatic retry with exponential backoff
//
// # Fetching
//
// [Fetcher] keys responses by URL in a shared byte cache so repeated
// builds of the same hosted payload skip the network:
//
//	f := httputil.NewFetcher(fileCache, nil)
//	data, err := f.Fetch(ctx, "https://example.com/payload.json")
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Non-transient responses (4xx) fail immediately.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Request timeout: 30 seconds
//   - Response TTL: 1 hour
//   - Max retries: 3
//   - Base backoff: 1 second
package httputil
