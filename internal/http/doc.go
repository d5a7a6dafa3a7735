// Package http provides the HTTP client used to fetch remote catalog manifests.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Rejecting non-200 responses and oversized bodies
//
// # Basic Usage
//
//	client := http.NewClient(30*time.Second, "MusicCatalog")
//
//	// Fetch a manifest
//	data, err := client.Get(ctx, "https://example.com/catalog.json")
package http
