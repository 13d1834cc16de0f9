package session

import (
	"net/http"

	"github.com/minhyannv/sqlprompt/pkg/indicator"
	loggerpkg "github.com/minhyannv/sqlprompt/pkg/logger"
)

// Option configures optional runtime dependencies for Session.
type Option func(*sessionDeps)

type sessionDeps struct {
	logger     loggerpkg.Logger
	indicator  indicator.Indicator
	completer  Completer
	httpClient *http.Client
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *sessionDeps) {
		d.logger = l
	}
}

// WithIndicator sets the busy indicator shown while a request is in flight.
func WithIndicator(i indicator.Indicator) Option {
	return func(d *sessionDeps) {
		d.indicator = i
	}
}

// WithCompleter replaces the HTTP completion client.
func WithCompleter(c Completer) Option {
	return func(d *sessionDeps) {
		d.completer = c
	}
}

// WithHTTPClient is passed through to the completion client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *sessionDeps) {
		d.httpClient = c
	}
}
