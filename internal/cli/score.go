package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/crease/internal/engine"
)

// ScoreOptions holds flags for the score command.
type ScoreOptions struct {
	*RootOptions
	Steps bool // print every outcome, not just the final one
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "score <command>...",
		Short: "Score a sequence of balls and print the result",
		Long: `Start an innings, apply each argument as a command, and print the final
scoreboard. All arguments are parsed before anything is applied, so a bad
command changes nothing.

Exit codes:
  0 - Scored
  2 - A command was rejected

Examples:
  crease score 4 6 W 1
  crease score "RUN 2" WICKET SIX --steps
  crease score 4 6 W 1 --format json --db ./crease.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Steps, "steps", false, "print the scoreboard after every command")

	return cmd
}

func runScore(opts *ScoreOptions, args []string, cmd *cobra.Command) (err error) {
	ctx := commandContext(cmd.Context())
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	commands, err := engine.ParseCommands(args)
	if err != nil {
		_ = out.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "rejected command", err)
	}

	c, closeFn, err := openController(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeFn()
	defer abandonOnExit(ctx, c, &err)

	last, err := c.StartNewGame(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to start innings", err)
	}
	if opts.Steps {
		if err := out.Outcome(last); err != nil {
			return err
		}
	}

	for _, command := range commands {
		last, err = c.Dispatch(ctx, command)
		if err != nil {
			return WrapExitError(ExitFailure, "command "+command.String(), err)
		}
		if opts.Steps {
			if err := out.Outcome(last); err != nil {
				return err
			}
		}
	}

	if opts.Steps {
		return nil
	}
	if opts.Format == "json" {
		return out.Success(NewOutcomeView(last))
	}
	return out.Success(FormatSnapshot(c.Snapshot()))
}
