package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultUserAgent identifies geocmp to the geocoding services it queries.
const DefaultUserAgent = "geocmp/1.0 (+https://github.com/UnknownOlympus/geocmp)"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the fetcher.
var (
	ErrBadStatus   = errors.New("bad response code")
	ErrInvalidJSON = errors.New("couldn't parse response as JSON")
)

// Fetcher issues GET requests on behalf of the providers and decodes their JSON bodies.
type Fetcher struct {
	client    HTTPClient
	userAgent string
	log       *slog.Logger
}

// NewFetcher creates a Fetcher with its own http.Client.
// A zero timeout leaves requests bounded only by the context.
func NewFetcher(userAgent string, timeout time.Duration, log *slog.Logger) *Fetcher {
	return NewFetcherWithClient(&http.Client{Timeout: timeout}, userAgent, log)
}

// NewFetcherWithClient creates a Fetcher with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewFetcherWithClient(client HTTPClient, userAgent string, log *slog.Logger) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Fetcher{client: client, userAgent: userAgent, log: log}
}

// Get performs a GET request and returns the raw body.
// Any status other than 200 is reported as ErrBadStatus.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.WarnContext(ctx, "Bad response code", "status", resp.StatusCode, "url", rawURL)
		return nil, fmt.Errorf("%w %d for '%s'", ErrBadStatus, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// GetJSON performs a GET request and decodes the body into v.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, v any) error {
	body, err := f.Get(ctx, rawURL)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, v); err != nil {
		f.log.WarnContext(ctx, "Couldn't parse as JSON", "body", string(body), "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return nil
}
