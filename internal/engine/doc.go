// Package engine implements the innings lifecycle controller.
//
// The Controller owns the current MatchState. It starts innings, feeds ball
// events through match.Apply one at a time, ends innings on the tenth wicket
// or an explicit stop, and records each transition in an optional journal.
//
// ARCHITECTURE:
//
// Single Owner:
// A Controller is used from one goroutine. Every command runs to completion
// before the next is accepted, so the sequence of states is exactly the left
// fold of match.Apply over the commands in the order they were issued.
// There is no locking inside the controller.
//
// Logical Clock:
// Every transition (start, ball, end) is stamped with the next value of a
// monotonic seq counter. Wall-clock time is never used for ordering, so a
// journal reads back in the order it was written.
//
// Ignored Input:
// Ball events received while no innings is active are silent no-ops. They
// are reported through Outcome.Applied and a debug log line, not as errors.
package engine
