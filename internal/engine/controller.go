package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/crease/internal/digest"
	"github.com/roach88/crease/internal/match"
	"github.com/roach88/crease/internal/store"
)

// Status is the lifecycle state of a Controller.
type Status int

const (
	// StatusIdle means no innings has been started yet.
	StatusIdle Status = iota
	// StatusActive means the current innings accepts ball events.
	StatusActive
	// StatusCompleted means the current innings has ended.
	StatusCompleted
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Journal records innings transitions. *store.Store implements it.
type Journal interface {
	WriteInnings(ctx context.Context, rec store.InningsRecord) error
	WriteBall(ctx context.Context, rec store.BallRecord) error
	EndInnings(ctx context.Context, id string, seq int64, reason string) error
}

// Outcome is the result of one controller command.
type Outcome struct {
	Command  Command
	Applied  bool  // false when the command was ignored
	Seq      int64 // seq stamped on the transition; 0 if ignored
	Status   Status
	Snapshot match.Snapshot
}

// Controller owns the MatchState of one session.
//
// INVARIANTS:
//   - state is only replaced by StartNewGame and only advanced by match.Apply
//     or match.End
//   - history holds exactly the events applied to the current innings
//   - a Controller is used from one goroutine
type Controller struct {
	clock   Sequencer
	ids     IDGenerator
	journal Journal
	logger  *slog.Logger

	started   bool
	state     match.MatchState
	inningsID string
	history   []match.BallEvent
	lastSeq   int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithJournal records every transition in j.
func WithJournal(j Journal) Option {
	return func(c *Controller) {
		c.journal = j
	}
}

// WithClock replaces the default logical clock.
func WithClock(clock Sequencer) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithIDGenerator replaces the default UUIDv7 innings ID generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *Controller) {
		c.ids = ids
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates an idle Controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		clock:  NewClock(),
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status reports the lifecycle state.
func (c *Controller) Status() Status {
	switch {
	case !c.started:
		return StatusIdle
	case c.state.IsActive:
		return StatusActive
	default:
		return StatusCompleted
	}
}

// State returns the current state and whether an innings exists.
func (c *Controller) State() (match.MatchState, bool) {
	return c.state, c.started
}

// Snapshot returns the read model of the current state.
func (c *Controller) Snapshot() match.Snapshot {
	return match.NewSnapshot(c.state)
}

// InningsID returns the ID of the current innings, or "" when idle.
func (c *Controller) InningsID() string {
	return c.inningsID
}

// History returns a copy of the events applied to the current innings.
func (c *Controller) History() []match.BallEvent {
	out := make([]match.BallEvent, len(c.history))
	copy(out, c.history)
	return out
}

// LastSeq returns the seq of the most recent transition, or 0.
func (c *Controller) LastSeq() int64 {
	return c.lastSeq
}

// Dispatch routes a parsed command.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Outcome, error) {
	switch cmd.Type {
	case CommandStart:
		return c.StartNewGame(ctx)
	case CommandStop:
		return c.Stop(ctx)
	case CommandBall:
		return c.Apply(ctx, cmd.Event)
	default:
		return Outcome{}, &CommandError{Code: ErrCodeUnknownCommand, Input: cmd.String()}
	}
}

// StartNewGame discards the current innings, if any, and starts a fresh one.
//
// It is valid in every status. An innings that was still active is closed
// in the journal as abandoned; its progress is not carried over.
func (c *Controller) StartNewGame(ctx context.Context) (Outcome, error) {
	if c.started && c.state.IsActive {
		if err := c.endInnings(ctx, store.EndReasonAbandoned); err != nil {
			return c.outcome(Start(), false, 0), err
		}
	}

	seq := c.stamp()
	c.started = true
	c.state = match.NewInnings()
	c.inningsID = c.ids.Generate()
	c.history = nil

	c.logger.Info("innings started", "innings", c.inningsID, "seq", seq)

	out := c.outcome(Start(), true, seq)
	if c.journal != nil {
		rec := store.InningsRecord{ID: c.inningsID, StartedSeq: seq}
		if err := c.journal.WriteInnings(ctx, rec); err != nil {
			return out, fmt.Errorf("journal innings %s: %w", c.inningsID, err)
		}
	}
	return out, nil
}

// Apply bowls one ball.
//
// When no innings is active the event is ignored and Outcome.Applied is
// false. Events that are not valid are rejected with a CommandError.
// The innings completes on the ball that takes the tenth wicket.
func (c *Controller) Apply(ctx context.Context, ev match.BallEvent) (Outcome, error) {
	cmd := Ball(ev)
	if !ev.Valid() {
		if ev.Kind != match.KindRun {
			return c.outcome(cmd, false, 0), &CommandError{Code: ErrCodeUnknownCommand, Input: ev.String()}
		}
		return c.outcome(cmd, false, 0), &CommandError{
			Code:  ErrCodeInvalidRun,
			Input: fmt.Sprintf("RUN %d", ev.Runs),
		}
	}
	if !c.started || !c.state.IsActive {
		c.logger.Debug("ball ignored", "event", ev.String(), "status", c.Status().String())
		return c.outcome(cmd, false, 0), nil
	}

	seq := c.stamp()
	c.state = match.Apply(c.state, ev)
	c.history = append(c.history, ev)

	c.logger.Debug("ball applied",
		"innings", c.inningsID,
		"seq", seq,
		"event", ev.String(),
		"score", fmt.Sprintf("%d/%d", c.state.Runs, c.state.Wickets),
		"overs", match.OversDisplay(c.state),
	)

	out := c.outcome(cmd, true, seq)
	if c.journal != nil {
		rec := store.BallRecord{
			ID:        digest.BallID(c.inningsID, seq, ev.String()),
			InningsID: c.inningsID,
			Seq:       seq,
			Event:     ev.String(),
			StateHash: c.state.Digest(),
		}
		if err := c.journal.WriteBall(ctx, rec); err != nil {
			return out, fmt.Errorf("journal ball %d: %w", seq, err)
		}
	}

	if !c.state.IsActive {
		c.logger.Info("innings complete",
			"innings", c.inningsID,
			"runs", c.state.Runs,
			"overs", match.OversDisplay(c.state),
		)
		if err := c.journalEnd(ctx, seq, store.EndReasonAllOut); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Stop ends the current innings before the tenth wicket.
// It is a no-op when no innings is active.
func (c *Controller) Stop(ctx context.Context) (Outcome, error) {
	if !c.started || !c.state.IsActive {
		return c.outcome(Stop(), false, 0), nil
	}
	if err := c.endInnings(ctx, store.EndReasonStopped); err != nil {
		return c.outcome(Stop(), true, c.lastSeq), err
	}
	return c.outcome(Stop(), true, c.lastSeq), nil
}

// Abandon ends a live innings that nothing will continue, such as one left
// open when a session exits. It is a no-op when no innings is active.
func (c *Controller) Abandon(ctx context.Context) error {
	if !c.started || !c.state.IsActive {
		return nil
	}
	return c.endInnings(ctx, store.EndReasonAbandoned)
}

func (c *Controller) endInnings(ctx context.Context, reason string) error {
	seq := c.stamp()
	c.state = match.End(c.state)
	c.logger.Info("innings ended", "innings", c.inningsID, "reason", reason, "seq", seq)
	return c.journalEnd(ctx, seq, reason)
}

func (c *Controller) journalEnd(ctx context.Context, seq int64, reason string) error {
	if c.journal == nil {
		return nil
	}
	if err := c.journal.EndInnings(ctx, c.inningsID, seq, reason); err != nil {
		return fmt.Errorf("journal end of innings %s: %w", c.inningsID, err)
	}
	return nil
}

func (c *Controller) stamp() int64 {
	c.lastSeq = c.clock.Next()
	return c.lastSeq
}

func (c *Controller) outcome(cmd Command, applied bool, seq int64) Outcome {
	return Outcome{
		Command:  cmd,
		Applied:  applied,
		Seq:      seq,
		Status:   c.Status(),
		Snapshot: c.Snapshot(),
	}
}
