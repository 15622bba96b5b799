package cli

import (
	"context"
	"log/slog"

	"github.com/roach88/crease/internal/engine"
	"github.com/roach88/crease/internal/store"
)

// openController builds a controller for play and score. When a journal
// path is set, the journal is opened and the clock continues after its last
// seq so seqs stay unique across sessions. The returned func closes the
// journal.
func openController(ctx context.Context, opts *RootOptions) (*engine.Controller, func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Journal == "" {
		return engine.New(engine.WithLogger(logger)), func() {}, nil
	}

	st, err := store.Open(opts.Journal)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	last, err := st.LastSeq(ctx)
	if err != nil {
		st.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	logger.Debug("journal opened", "path", opts.Journal, "last_seq", last)

	c := engine.New(
		engine.WithJournal(st),
		engine.WithClock(engine.NewClockAt(last)),
		engine.WithLogger(logger),
	)
	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Error("error closing journal", "error", err)
		}
	}
	return c, closeFn, nil
}

// abandonOnExit closes an innings still live when a play or score session
// ends, so the journal never keeps an innings open that no controller can
// resume. The journal write outlives a cancelled command context.
func abandonOnExit(ctx context.Context, c *engine.Controller, err *error) {
	if c.Status() != engine.StatusActive {
		return
	}
	if abandonErr := c.Abandon(context.WithoutCancel(ctx)); abandonErr != nil && *err == nil {
		*err = WrapExitError(ExitFailure, "failed to close innings", abandonErr)
	}
}

func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
