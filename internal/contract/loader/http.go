package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// loadHTTP fetches a remote contract. timeout bounds the whole exchange on
// top of any deadline already on ctx.
func loadHTTP(ctx context.Context, client *http.Client, rawURL string, timeout time.Duration) ([]byte, error) {
	if rawURL == "" {
		return nil, errors.New("contract loader: url is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("contract loader: parse url: %w", err)
	}
	if err := checkFormat(parsed.Path, true); err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("contract loader: build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contract loader: fetch %s: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("contract loader: fetch %s: unexpected status %s", rawURL, resp.Status)
	}
	return readDocument(resp.Body, rawURL)
}
