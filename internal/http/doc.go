// Package http provides an HTTP client configured for scoring-site requests.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Existence probes via HEAD requests
//   - Classified fetch errors
//
// # Basic Usage
//
//	client := http.NewClient("igcfetch", 60*time.Second)
//
//	// Fetch a results page
//	html, err := client.GetString(ctx, "https://scoring.example.org/comp42/task7.html")
//
//	// Probe for the next task page
//	ok, err := client.Exists(ctx, "https://scoring.example.org/comp42/task8.html")
//
// # Fetch Errors
//
// Every failed Get comes back as a *FetchError carrying one of three
// kinds, so callers can report failures uniformly:
//
//	var fe *http.FetchError
//	if errors.As(err, &fe) && fe.Kind == http.KindBadStatus {
//	    fmt.Println(fe.StatusCode) // e.g. 404
//	}
package http
