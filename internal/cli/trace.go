package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/crease/internal/match"
	"github.com/roach88/crease/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	InningsID string
}

// TraceBall is one journaled ball with the score it produced.
type TraceBall struct {
	Seq       int64  `json:"seq"`
	Event     string `json:"event"`
	Label     string `json:"label"`
	Score     string `json:"score"`
	Overs     string `json:"overs"`
	StateHash string `json:"state_hash"`
}

// TraceResult is the timeline of one innings.
type TraceResult struct {
	InningsID  string      `json:"innings_id"`
	StartedSeq int64       `json:"started_seq"`
	EndedSeq   int64       `json:"ended_seq,omitempty"`
	EndReason  string      `json:"end_reason,omitempty"`
	Balls      []TraceBall `json:"balls"`
}

// InningsSummary is one row of the innings listing.
type InningsSummary struct {
	InningsID  string `json:"innings_id"`
	StartedSeq int64  `json:"started_seq"`
	EndedSeq   int64  `json:"ended_seq,omitempty"`
	EndReason  string `json:"end_reason,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show journaled innings ball by ball",
		Long: `Without --innings, list the journaled innings in the order they started.
With --innings, show that innings ball by ball with the score after each.

Examples:
  crease trace --db ./crease.db
  crease trace --db ./crease.db --innings 0190c7a2-...
  crease trace --db ./crease.db --innings 0190c7a2-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InningsID, "innings", "", "innings ID to show")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd.Context())

	st, err := openJournal(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.InningsID == "" {
		return listInnings(ctx, st, opts, cmd)
	}

	rec, err := st.ReadInnings(ctx, opts.InningsID)
	if err != nil {
		if isNotFound(err) {
			return NewExitError(ExitCommandError, fmt.Sprintf("innings not found: %s", opts.InningsID))
		}
		return WrapExitError(ExitCommandError, "failed to read innings", err)
	}
	balls, err := st.ReadBalls(ctx, rec.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read balls", err)
	}

	result := TraceResult{
		InningsID:  rec.ID,
		StartedSeq: rec.StartedSeq,
		EndedSeq:   rec.EndedSeq,
		EndReason:  rec.EndReason,
		Balls:      buildTimeline(balls),
	}

	if opts.Format == "json" {
		return writeJSON(cmd, CLIResponse{Status: "ok", Data: result})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Innings: %s (started seq %d)\n", result.InningsID, result.StartedSeq)
	fmt.Fprintln(w)
	for _, b := range result.Balls {
		fmt.Fprintf(w, "  [%d] %-7s %-8s %6s  %s ov  %s\n", b.Seq, b.Event, b.Label, b.Score, b.Overs, shortHash(b.StateHash))
	}
	if len(result.Balls) == 0 {
		fmt.Fprintln(w, "  (no balls)")
	}
	fmt.Fprintln(w)
	if rec.IsOpen() {
		fmt.Fprintln(w, "Innings still open.")
	} else {
		fmt.Fprintf(w, "Ended at seq %d: %s\n", result.EndedSeq, result.EndReason)
	}
	return nil
}

// buildTimeline replays the balls to show the score after each. Balls that
// do not parse are listed with an empty score.
func buildTimeline(balls []store.BallRecord) []TraceBall {
	timeline := make([]TraceBall, 0, len(balls))
	state := match.NewInnings()
	for _, b := range balls {
		tb := TraceBall{Seq: b.Seq, Event: b.Event, StateHash: b.StateHash}
		if ev, err := match.ParseEvent(b.Event); err == nil {
			state = match.Apply(state, ev)
			tb.Label = ev.Label()
			tb.Score = fmt.Sprintf("%d/%d", state.Runs, state.Wickets)
			tb.Overs = match.OversDisplay(state)
		}
		timeline = append(timeline, tb)
	}
	return timeline
}

func listInnings(ctx context.Context, st *store.Store, opts *TraceOptions, cmd *cobra.Command) error {
	recs, err := st.ListInnings(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list innings", err)
	}

	rows := make([]InningsSummary, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, InningsSummary{
			InningsID:  r.ID,
			StartedSeq: r.StartedSeq,
			EndedSeq:   r.EndedSeq,
			EndReason:  r.EndReason,
		})
	}

	if opts.Format == "json" {
		return writeJSON(cmd, CLIResponse{Status: "ok", Data: rows})
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No innings found in journal.")
		return nil
	}
	for _, r := range rows {
		reason := r.EndReason
		if reason == "" {
			reason = "open"
		}
		fmt.Fprintf(w, "%s  seq %d  %s\n", r.InningsID, r.StartedSeq, reason)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
