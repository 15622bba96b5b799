package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/crease/internal/engine"
)

const playHelp = `Commands:
  START | NEW         start a new innings (abandons a live one)
  RUN n | n           score n runs (n = 1, 2, 3, 4 or 6)
  FOUR | SIX          boundaries
  WICKET | W | OUT    a wicket falls
  STOP | END          end the innings
  STATUS              show the scoreboard
  HELP                show this help
  QUIT | EXIT         leave`

// NewPlayCommand creates the interactive play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Score an innings interactively",
		Long: `Read commands from stdin, one per line, and print the scoreboard after
each. An innings starts automatically; type START to begin a fresh one.

` + playHelp,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(rootOpts, cmd)
		},
	}
	return cmd
}

func runPlay(opts *RootOptions, cmd *cobra.Command) (err error) {
	ctx := commandContext(cmd.Context())
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	c, closeFn, err := openController(ctx, opts)
	if err != nil {
		return err
	}
	defer closeFn()
	defer abandonOnExit(ctx, c, &err)

	first, err := c.StartNewGame(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to start innings", err)
	}
	if err := out.Outcome(first); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch strings.ToUpper(line) {
		case "QUIT", "EXIT":
			return nil
		case "STATUS":
			if err := out.Success(statusView(c, opts.Format)); err != nil {
				return err
			}
			continue
		case "HELP", "?":
			if opts.Format != "json" {
				fmt.Fprintln(out.Writer, playHelp)
			}
			continue
		}

		command, err := engine.ParseCommand(line)
		if err != nil {
			if err := out.Error(errorCode(err), err.Error(), nil); err != nil {
				return err
			}
			continue
		}

		outcome, err := c.Dispatch(ctx, command)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("command %s", command), err)
		}
		if err := out.Outcome(outcome); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}

// StatusView is the STATUS reply in JSON mode.
type StatusView struct {
	InningsID string `json:"innings_id"`
	Status    string `json:"status"`
	Balls     int    `json:"balls"`
	LastSeq   int64  `json:"last_seq"`
	Scoreline string `json:"scoreline"`
}

func statusView(c *engine.Controller, format string) any {
	snap := c.Snapshot()
	if format != "json" {
		return fmt.Sprintf("innings %s (%s): %s", c.InningsID(), c.Status(), FormatSnapshot(snap))
	}
	return StatusView{
		InningsID: c.InningsID(),
		Status:    c.Status().String(),
		Balls:     len(c.History()),
		LastSeq:   c.LastSeq(),
		Scoreline: FormatSnapshot(snap),
	}
}
