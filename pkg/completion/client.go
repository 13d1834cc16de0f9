package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	configpkg "github.com/minhyannv/sqlprompt/pkg/config"
	loggerpkg "github.com/minhyannv/sqlprompt/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const maxLoggedBody = 200

// Client posts completion requests to a single fixed endpoint.
// It is safe for sequential use and is meant to live for the whole process.
type Client struct {
	api        openai.Client
	httpClient *http.Client
	path       string
	endpoint   string
	timeout    time.Duration

	logger  loggerpkg.Logger
	verbose bool
}

// Option configures optional dependencies for Client.
type Option func(*clientDeps)

type clientDeps struct {
	httpClient *http.Client
	logger     loggerpkg.Logger
}

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *clientDeps) {
		d.httpClient = c
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *clientDeps) {
		d.logger = l
	}
}

// New builds a Client from a validated configuration.
func New(cfg configpkg.Config, opts ...Option) (*Client, error) {
	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return nil, err
	}

	deps := clientDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.httpClient == nil {
		deps.httpClient = &http.Client{Transport: defaultTransport()}
	}

	api := openai.NewClient(
		option.WithHTTPClient(deps.httpClient),
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.Token),
		option.WithMaxRetries(0),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
	)

	loggerpkg.Debug(cfg.Verbose, deps.logger, "completion client init", map[string]any{
		"endpoint": cfg.Endpoint(),
		"timeout":  cfg.Timeout.String(),
	})

	return &Client{
		api:        api,
		httpClient: deps.httpClient,
		path:       cfg.CompletionsPath(),
		endpoint:   cfg.Endpoint(),
		timeout:    cfg.Timeout,
		logger:     deps.logger,
		verbose:    cfg.Verbose,
	}, nil
}

// defaultTransport is a TLS-capable pooled transport.
func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Endpoint returns the absolute URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Complete sends one request and decodes the reply.
// Non-2xx replies return *APIError, transport failures *TransportError,
// and undecodable bodies *DecodeError.
func (c *Client) Complete(parentCtx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	start := time.Now()

	payload, err := json.Marshal(req)
	if err != nil {
		return CompletionResponse{}, &EncodeError{Err: err}
	}

	ctx, cancel := context.WithTimeout(parentCtx, c.timeout)
	defer cancel()

	loggerpkg.Debug(c.verbose, c.logger, "completion request starting", map[string]any{
		"endpoint":   c.endpoint,
		"body_bytes": len(payload),
	})

	var raw []byte
	err = c.api.Post(ctx, c.path, bytes.NewReader(payload), &raw)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			loggerpkg.Warn(c.logger, "completion server error", map[string]any{
				"status":   apiErr.StatusCode,
				"type":     apiErr.Type,
				"duration": time.Since(start).String(),
			})
			return CompletionResponse{}, &APIError{
				StatusCode: apiErr.StatusCode,
				Message:    apiErr.Message,
				Type:       apiErr.Type,
				Body:       truncate(responseBody(apiErr), maxLoggedBody),
			}
		}
		loggerpkg.Warn(c.logger, "completion transport error", map[string]any{
			"error":    err,
			"duration": time.Since(start).String(),
		})
		return CompletionResponse{}, &TransportError{Endpoint: c.endpoint, Err: err}
	}

	var resp CompletionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return CompletionResponse{}, &DecodeError{Body: truncate(string(raw), maxLoggedBody), Err: err}
	}

	loggerpkg.Debug(c.verbose, c.logger, "completion request done", map[string]any{
		"choices":  len(resp.Choices),
		"duration": time.Since(start).String(),
	})
	return resp, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// responseBody extracts the payload of a failed reply, headers stripped.
func responseBody(apiErr *openai.Error) string {
	if apiErr.Response == nil {
		return ""
	}
	dump := string(apiErr.DumpResponse(true))
	if i := strings.Index(dump, "\r\n\r\n"); i >= 0 {
		dump = dump[i+4:]
	}
	return strings.TrimSpace(dump)
}

// truncate limits string length for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
