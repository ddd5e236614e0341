package api

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-recipebook/pkg/contract"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// DefaultBaseURL is the backend origin used when none is configured.
const DefaultBaseURL = "http://localhost:8081"

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the backend origin. Trailing slashes are dropped.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient injects the transport. Timeouts are whatever client defines.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithSession sets the store the bearer token is read from on every request.
func WithSession(store session.Store) Option {
	return func(c *Client) {
		c.session = store
	}
}

// WithContract validates every outgoing request against ct before sending.
func WithContract(ct *contract.Contract) Option {
	return func(c *Client) {
		c.contract = ct
	}
}

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDs overrides the request id generator. Used by tests.
func WithRequestIDs(next func() string) Option {
	return func(c *Client) {
		if next != nil {
			c.requestID = next
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
