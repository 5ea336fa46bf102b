// Package httputil fetches remote datasets over HTTP.
//
// [Fetcher] issues GET requests with retry on transient failures and keeps
// successful response bodies in an on-disk [Cache] so repeated renders of
// the same URL do not hit the network:
//
//	store, _ := httputil.NewCache(dir, time.Hour)
//	f := httputil.NewFetcher(store)
//	resp, err := f.Fetch(ctx, "https://example.com/sales.csv", false)
//
// Network errors, 429 and 5xx responses are retried up to three times with
// doubling delay. Other non-2xx responses fail immediately.
package httputil
