package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/minhyannv/sqlprompt/pkg/indicator"
	loggerpkg "github.com/minhyannv/sqlprompt/pkg/logger"
	"github.com/minhyannv/sqlprompt/pkg/session"
)

const emptyChoicesMessage = "No completion returned; try again."

// turnRunner runs one prompt/response turn.
type turnRunner interface {
	Run(input string) session.Outcome
}

// replOptions configures REPL behavior.
type replOptions struct {
	ClearScreen bool
	Verbose     bool
	Logger      loggerpkg.Logger
}

// runREPL reads lines from in until end of input. Per-turn failures are
// printed and the prompt is shown again; only read and encode errors end it.
func runREPL(runner turnRunner, opts replOptions, in io.Reader, out io.Writer) error {
	if runner == nil {
		return fmt.Errorf("session is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	if opts.ClearScreen {
		_ = indicator.Clear(out)
	}
	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", nil)

	reader := bufio.NewReader(in)
	for {
		_, _ = fmt.Fprintln(out, ">")

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		eof := err != nil

		if line != "" {
			_, _ = fmt.Fprintln(out)
			outcome := runner.Run(line)
			if outcome.Fatal() {
				loggerpkg.Error(opts.Logger, "turn failed", map[string]any{
					"kind":  outcome.Kind.String(),
					"error": outcome.Err,
				})
				return outcome.Err
			}
			printOutcome(out, outcome)
		}

		if eof {
			loggerpkg.Debug(opts.Verbose, opts.Logger, "repl end of input", nil)
			return nil
		}
	}
}

func printOutcome(out io.Writer, outcome session.Outcome) {
	switch outcome.Kind {
	case session.KindOK:
		_, _ = fmt.Fprintf(out, "\n%s\n", outcome.Text)
	case session.KindEmpty:
		_, _ = fmt.Fprintf(out, "%s\n\n", emptyChoicesMessage)
	default:
		_, _ = fmt.Fprintf(out, "Error: %v\n\n", outcome.Err)
	}
}
