package engine

import (
	"strings"

	"github.com/roach88/crease/internal/match"
)

// CommandType distinguishes controller commands.
type CommandType int

const (
	// CommandStart starts a new innings.
	CommandStart CommandType = iota + 1
	// CommandBall applies one ball event.
	CommandBall
	// CommandStop ends the current innings.
	CommandStop
)

// Command is one instruction for the controller.
type Command struct {
	Type  CommandType
	Event match.BallEvent // set for CommandBall
}

// Start returns a START command.
func Start() Command { return Command{Type: CommandStart} }

// Stop returns a STOP command.
func Stop() Command { return Command{Type: CommandStop} }

// Ball returns a command that applies ev.
func Ball(ev match.BallEvent) Command { return Command{Type: CommandBall, Event: ev} }

// String returns the textual command: "START", "STOP", "RUN 4", "WICKET".
func (c Command) String() string {
	switch c.Type {
	case CommandStart:
		return "START"
	case CommandStop:
		return "STOP"
	case CommandBall:
		return c.Event.String()
	default:
		return ""
	}
}

// ParseCommand parses a command line.
//
// START (or NEW) and STOP (or END) are lifecycle commands; anything else is
// parsed as a ball event by match.ParseEvent. Invalid run values are
// rejected here, at the boundary, and never reach the controller.
func ParseCommand(s string) (Command, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "START", "NEW":
		return Start(), nil
	case "STOP", "END":
		return Stop(), nil
	}

	ev, err := match.ParseEvent(s)
	if err != nil {
		code := ErrCodeUnknownCommand
		if match.IsInvalidRun(err) {
			code = ErrCodeInvalidRun
		}
		return Command{}, &CommandError{Code: code, Input: strings.TrimSpace(s), Err: err}
	}
	return Ball(ev), nil
}

// ParseCommands parses each line in order and stops at the first error.
func ParseCommands(lines []string) ([]Command, error) {
	cmds := make([]Command, 0, len(lines))
	for _, line := range lines {
		cmd, err := ParseCommand(line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
