// Package match models a single batting innings.
//
// MatchState is a plain value. Apply is the only transition function: it
// takes a state and one ball event and returns the successor state without
// touching its input. Stats are derived from a state on demand and are never
// stored alongside it.
//
// Replaying the same events from NewInnings always yields the same state,
// which is what the journal replay in internal/store relies on.
package match
