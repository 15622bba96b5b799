package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/crease/internal/engine"
	"github.com/roach88/crease/internal/match"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Scenario failed, journal did not replay deterministically
	ExitCommandError = 2 // Bad arguments, unreadable journal, rejected command
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the JSON envelope for every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"` // INVALID_RUN, UNKNOWN_COMMAND, E_DETERMINISM, ...
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutcomeView is the JSON form of one controller outcome.
type OutcomeView struct {
	Command  string         `json:"command"`
	Applied  bool           `json:"applied"`
	Seq      int64          `json:"seq"`
	Status   string         `json:"status"`
	Snapshot match.Snapshot `json:"snapshot"`
}

// NewOutcomeView converts an engine outcome.
func NewOutcomeView(out engine.Outcome) OutcomeView {
	return OutcomeView{
		Command:  out.Command.String(),
		Applied:  out.Applied,
		Seq:      out.Seq,
		Status:   out.Status.String(),
		Snapshot: out.Snapshot,
	}
}

// OutputFormatter writes JSON lines or text to Writer.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Success writes data. Text mode prints it with fmt.Println.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes an error without failing the command.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return err
}

// Outcome writes one controller outcome.
func (f *OutputFormatter) Outcome(out engine.Outcome) error {
	if f.Format == "json" {
		return f.Success(NewOutcomeView(out))
	}
	if !out.Applied {
		_, err := fmt.Fprintf(f.Writer, "(ignored: innings %s) %s\n", out.Status, FormatSnapshot(out.Snapshot))
		return err
	}
	return f.Success(FormatSnapshot(out.Snapshot))
}

// FormatSnapshot renders the scoreboard line:
//
//	16/1 (1.0 ov)  RR 16.00  last: 3 Runs  wkts left: 9
//
// A finished innings ends with "[innings over]".
func FormatSnapshot(s match.Snapshot) string {
	line := fmt.Sprintf("%d/%d (%s ov)  RR %s", s.Runs, s.Wickets, s.Overs, s.RunRate)
	if s.LastEvent != "" {
		line += "  last: " + s.LastEvent
	}
	line += fmt.Sprintf("  wkts left: %d", s.WicketsRemaining)
	if !s.IsActive {
		line += "  [innings over]"
	}
	return line
}

// errorCode maps a command error to its response code.
func errorCode(err error) string {
	var ce *engine.CommandError
	if errors.As(err, &ce) {
		return string(ce.Code)
	}
	return "E_INTERNAL"
}
