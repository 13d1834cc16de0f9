// Command sqlprompt sends each typed line, behind a fixed preamble, to a
// text-completion endpoint and prints the first completion.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/minhyannv/sqlprompt/pkg/indicator"
	loggerpkg "github.com/minhyannv/sqlprompt/pkg/logger"
	"github.com/minhyannv/sqlprompt/pkg/session"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "sqlprompt",
		Short: "Interactive completion client",
		Long: `sqlprompt reads one line at a time, prefixes it with a preamble and
prints the first completion returned by the API.

The bearer token is read from OAI_TOKEN (a .env file is loaded if present).
End input with Ctrl-D.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(flags.EnvFile); err != nil {
				return err
			}
			cfg, err := resolveConfig(flags, cmd.Flags().Changed, os.Getenv)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			appLogger := loggerpkg.NewWriterLogger(cmd.ErrOrStderr(), cfg.Verbose)
			ind := indicator.For(out, cfg.NoSpinner)

			s, err := session.New(cmd.Context(), cfg,
				session.WithLogger(appLogger),
				session.WithIndicator(ind),
			)
			if err != nil {
				return err
			}
			defer s.Close()

			_, interactive := ind.(*indicator.Spinner)
			return runREPL(s, replOptions{
				ClearScreen: interactive,
				Verbose:     cfg.Verbose,
				Logger:      appLogger,
			}, cmd.InOrStdin(), out)
		},
	}
	bindFlags(cmd.Flags(), &flags)
	return cmd
}

// main is the program entry point.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
