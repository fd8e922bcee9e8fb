// Package article fetches web articles and breaks their text into sentences.
package article

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// FetchError reports a text source failure: the URL was invalid, the page
// unreachable, or its content could not be parsed into article text.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch article at %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the readable text of an article at a URL.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates an article fetcher with a bounded request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchText downloads the page at rawURL and extracts its article text.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("unsupported scheme %q", pageURL.Scheme)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("page returned status %d", resp.StatusCode)}
	}

	parsed, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("no readable text found")}
	}

	return text, nil
}
