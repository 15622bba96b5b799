package harness

import "github.com/roach88/crease/internal/match"

// TraceEvent is one command as the controller saw it.
type TraceEvent struct {
	Seq     int64          `json:"seq"`
	Command string         `json:"command"`
	Applied bool           `json:"applied"`
	Error   string         `json:"error,omitempty"` // rejection code, if rejected
	State   match.Snapshot `json:"state"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass is true when every assertion held and every journaled innings
	// replayed deterministically.
	Pass bool `json:"pass"`

	// Trace has one entry per command, in order.
	Trace []TraceEvent `json:"trace"`

	// Final is the snapshot after the last command.
	Final match.Snapshot `json:"final"`

	// Errors lists failed assertions. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a trace entry.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
