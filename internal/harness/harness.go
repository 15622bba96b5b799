package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/crease/internal/engine"
	"github.com/roach88/crease/internal/store"
	"github.com/roach88/crease/internal/testutil"
)

// Harness runs one scenario against a fresh controller and journal.
type Harness struct {
	store      *store.Store
	controller *engine.Controller
	logger     *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory journal for isolation.
//
// Execution flow:
//  1. Dispatch each command, recording a trace entry per command
//  2. Replay every journaled innings and check its digests
//  3. Evaluate the assertions
//
// An error is returned only when the harness itself fails (journal I/O);
// failed assertions are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	prefix := scenario.InningsID
	if prefix == "" {
		prefix = scenario.Name
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := &Harness{
		store:  st,
		logger: logger,
		controller: engine.New(
			engine.WithJournal(st),
			engine.WithClock(testutil.NewDeterministicClock()),
			engine.WithIDGenerator(testutil.NewSequentialIDGenerator(prefix)),
			engine.WithLogger(logger),
		),
	}

	ctx := context.Background()
	result := NewResult(scenario.Name)

	if err := h.executeCommands(ctx, scenario.Commands, result); err != nil {
		return nil, fmt.Errorf("failed to execute commands: %w", err)
	}
	result.Final = h.controller.Snapshot()

	if err := h.verifyJournal(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to verify journal: %w", err)
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

// executeCommands dispatches commands in order. Rejected commands are traced
// with their error code and leave the state untouched.
func (h *Harness) executeCommands(ctx context.Context, commands []string, result *Result) error {
	for i, line := range commands {
		cmd, err := engine.ParseCommand(line)
		if err != nil {
			var ce *engine.CommandError
			if !errors.As(err, &ce) {
				return fmt.Errorf("command %d: %w", i, err)
			}
			result.AddTrace(TraceEvent{
				Command: strings.TrimSpace(line),
				Error:   string(ce.Code),
				State:   h.controller.Snapshot(),
			})
			h.logger.Info("command rejected", "step", i, "command", line, "code", ce.Code)
			continue
		}

		out, err := h.controller.Dispatch(ctx, cmd)
		if err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd, err)
		}
		result.AddTrace(TraceEvent{
			Seq:     out.Seq,
			Command: cmd.String(),
			Applied: out.Applied,
			State:   out.Snapshot,
		})
	}
	return nil
}

// verifyJournal replays every innings the scenario journaled.
func (h *Harness) verifyJournal(ctx context.Context, result *Result) error {
	innings, err := h.store.ListInnings(ctx)
	if err != nil {
		return err
	}
	for _, rec := range innings {
		v, err := h.store.VerifyInnings(ctx, rec.ID)
		if err != nil {
			return err
		}
		for _, m := range v.Mismatches {
			result.AddError(fmt.Sprintf("journal: innings %s seq %d (%s): recorded %s, replayed %s",
				rec.ID, m.Seq, m.Event, m.Recorded, m.Replayed))
		}
		for _, p := range v.Problems {
			result.AddError(fmt.Sprintf("journal: innings %s: %s", rec.ID, p))
		}
	}
	return nil
}

// RunAll runs scenarios concurrently and returns results in input order.
// The first harness error cancels the remaining runs.
func RunAll(ctx context.Context, scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(sc)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
