// Package http provides the HTTP client used to fetch the sheet export and
// cover images.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeouts and optional proxy routing
//   - Typed errors (*TransportError) for failed requests and non-2xx statuses
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch CSV text
//	text, err := client.GetString(ctx, sheetURL)
//	if http.IsTransportError(err) {
//	    // surface as a load failure
//	}
package http
