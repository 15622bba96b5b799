package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/crease/internal/match"
	"github.com/roach88/crease/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	InningsID string // optional - specific innings only
}

// ReplayInningsResult holds the replay result for one innings.
type ReplayInningsResult struct {
	InningsID     string         `json:"innings_id"`
	Balls         int            `json:"balls"`
	EndReason     string         `json:"end_reason"`
	Final         match.Snapshot `json:"final"`
	Mismatches    int            `json:"mismatches"`
	Problems      []string       `json:"problems,omitempty"`
	Deterministic bool           `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Innings          []ReplayInningsResult `json:"innings"`
	TotalInnings     int                   `json:"total_innings"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the journal and verify determinism",
		Long: `Replay every journaled innings from a fresh state and check each recorded
state digest against the replayed one.

Exit codes:
  0 - All innings replay deterministically
  1 - Determinism verification failed
  2 - Command error (journal not set or unreadable, unknown innings)

Examples:
  crease replay --db ./crease.db
  crease replay --db ./crease.db --innings 0190c7a2-...
  crease replay --db ./crease.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InningsID, "innings", "", "replay specific innings only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd.Context())

	st, err := openJournal(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	var ids []string
	if opts.InningsID != "" {
		ids = []string{opts.InningsID}
	} else {
		all, err := st.ListInnings(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list innings", err)
		}
		for _, rec := range all {
			ids = append(ids, rec.ID)
		}
	}

	result := ReplayResult{
		Innings:          make([]ReplayInningsResult, 0, len(ids)),
		TotalInnings:     len(ids),
		AllDeterministic: true,
	}
	for _, id := range ids {
		r, err := replayInnings(ctx, st, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay innings %s", id), err)
		}
		result.Innings = append(result.Innings, r)
		if !r.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

func replayInnings(ctx context.Context, st *store.Store, id string) (ReplayInningsResult, error) {
	v, err := st.VerifyInnings(ctx, id)
	if err != nil {
		return ReplayInningsResult{}, err
	}
	return ReplayInningsResult{
		InningsID:     id,
		Balls:         v.Balls,
		EndReason:     v.Innings.EndReason,
		Final:         match.NewSnapshot(v.Final),
		Mismatches:    len(v.Mismatches),
		Problems:      v.Problems,
		Deterministic: v.Deterministic,
	}, nil
}

// openJournal opens the journal named by --db for reading commands.
func openJournal(opts *RootOptions) (*store.Store, error) {
	if opts.Journal == "" {
		return nil, NewExitError(ExitCommandError, "no journal: pass --db or set CREASE_JOURNAL")
	}
	// store.Open creates missing files; a reader must not.
	if _, err := os.Stat(opts.Journal); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", opts.Journal))
		}
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	st, err := store.Open(opts.Journal)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	return st, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if result.TotalInnings == 0 {
		fmt.Fprintln(w, "No innings found in journal.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d innings\n", result.TotalInnings)
	fmt.Fprintln(w)

	for _, inn := range result.Innings {
		status := "✓"
		if !inn.Deterministic {
			status = "✗"
		}
		reason := inn.EndReason
		if reason == "" {
			reason = "open"
		}

		fmt.Fprintf(w, "%s Innings: %s (%s)\n", status, inn.InningsID, reason)
		fmt.Fprintf(w, "  Balls: %d  %s\n", inn.Balls, FormatSnapshot(inn.Final))
		if verbose || !inn.Deterministic {
			if inn.Mismatches > 0 {
				fmt.Fprintf(w, "  Digest mismatches: %d\n", inn.Mismatches)
			}
			for _, p := range inn.Problems {
				fmt.Fprintf(w, "  Problem: %s\n", p)
			}
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All innings verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
