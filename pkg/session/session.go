package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/minhyannv/sqlprompt/pkg/completion"
	configpkg "github.com/minhyannv/sqlprompt/pkg/config"
	"github.com/minhyannv/sqlprompt/pkg/indicator"
	loggerpkg "github.com/minhyannv/sqlprompt/pkg/logger"
)

// Completer sends one completion request.
type Completer interface {
	Complete(ctx context.Context, req completion.CompletionRequest) (completion.CompletionResponse, error)
}

// Kind categorizes the result of one turn.
type Kind int

const (
	KindOK Kind = iota
	KindTransport
	KindAPI
	KindDecode
	KindEmpty
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	case KindEmpty:
		return "empty"
	case KindEncode:
		return "encode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of one turn: either Text or a categorized Err.
type Outcome struct {
	Kind Kind
	Text string
	Err  error
}

// OK reports a successful turn.
func (o Outcome) OK() bool { return o.Kind == KindOK }

// Fatal reports failures that should end the process.
func (o Outcome) Fatal() bool { return o.Kind == KindEncode }

// Session holds the fixed configuration and the long-lived client.
type Session struct {
	config    configpkg.Config
	completer Completer
	closer    func()
	indicator indicator.Indicator

	ctx     context.Context
	logger  loggerpkg.Logger
	verbose bool
}

// New initializes a Session with the provided context, config, and dependencies.
func New(ctx context.Context, cfg configpkg.Config, opts ...Option) (*Session, error) {
	cfg = configpkg.Normalize(cfg)
	deps := sessionDeps{logger: loggerpkg.NopLogger{}, indicator: indicator.Nop{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.logger == nil {
		deps.logger = loggerpkg.NopLogger{}
	}
	if deps.indicator == nil {
		deps.indicator = indicator.Nop{}
	}
	if err := configpkg.Validate(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s := &Session{
		config:    cfg,
		completer: deps.completer,
		closer:    func() {},
		indicator: deps.indicator,
		ctx:       ctx,
		logger:    deps.logger,
		verbose:   cfg.Verbose,
	}

	if s.completer == nil {
		client, err := completion.New(cfg,
			completion.WithLogger(deps.logger),
			completion.WithHTTPClient(deps.httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("create completion client: %w", err)
		}
		s.completer = client
		s.closer = client.Close
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "session init", map[string]any{
		"endpoint": cfg.Endpoint(),
		"preamble": cfg.Preamble,
		"timeout":  cfg.Timeout.String(),
	})
	return s, nil
}

// Run processes one line of user input. The input is used as read.
// The indicator runs for the duration of the request and is stopped
// before Run returns, whatever the outcome.
func (s *Session) Run(input string) Outcome {
	s.indicator.Start()
	defer s.indicator.Stop()

	req := completion.BuildRequest(s.config.Preamble, input)
	resp, err := s.completer.Complete(s.ctx, req)
	if err != nil {
		out := Outcome{Kind: classify(err), Err: err}
		loggerpkg.Debug(s.verbose, s.logger, "turn failed", map[string]any{
			"kind":  out.Kind.String(),
			"error": err,
		})
		return out
	}

	text, err := resp.FirstText()
	if err != nil {
		return Outcome{Kind: KindEmpty, Err: err}
	}
	return Outcome{Kind: KindOK, Text: text}
}

// Close releases the underlying client.
func (s *Session) Close() {
	s.closer()
}

func classify(err error) Kind {
	var (
		encErr *completion.EncodeError
		apiErr *completion.APIError
		decErr *completion.DecodeError
	)
	switch {
	case errors.As(err, &encErr):
		return KindEncode
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &decErr):
		return KindDecode
	case errors.Is(err, completion.ErrEmptyChoices):
		return KindEmpty
	default:
		return KindTransport
	}
}
