package tts

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// Synthesizer converts one sanitized sentence into raw audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, sentence string) ([]byte, error)
}

// Client is an HTTP client for the TTS backend. The wire contract is a
// single request/response exchange: the sanitized sentence goes out as the
// raw POST body and a 200 response carries the WAV payload. Retry policy
// belongs to the caller, not here.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a TTS backend client. A timeout of zero disables the
// per-request bound (the context still applies).
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Synthesize posts one sanitized sentence to the backend and returns the
// raw audio bytes. Any non-200 status or transport failure is a
// SynthesisError identifying the sentence.
func (c *Client) Synthesize(ctx context.Context, sentence string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(sentence))
	if err != nil {
		return nil, &SynthesisError{Sentence: sentence, Err: err}
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SynthesisError{Sentence: sentence, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &SynthesisError{Sentence: sentence, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Sentence: sentence, Err: err}
	}

	return body, nil
}
