package protocol

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/sweeper/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNargs          = errors.New("invalid number of arguments")
)

const (
	cmdPoll    = "g"
	cmdOpen    = "o"
	cmdFlag    = "f"
	cmdRestart = "n"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	cmdPoll:    0,
	cmdOpen:    2,
	cmdFlag:    2,
	cmdRestart: 0,
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// Parse decodes a single command line. The poll command decodes to the zero
// [mines.Command].
func Parse(line string) (mines.Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return mines.Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return mines.Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return mines.Command{}, fmt.Errorf(
			"%w: %q takes %d, got %d", ErrNargs, parts[0], nargs, len(parts)-1,
		)
	}
	switch parts[0] {
	case cmdOpen, cmdFlag:
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return mines.Command{}, err
		}
		if parts[0] == cmdOpen {
			return mines.RevealAt(x, y), nil
		}
		return mines.FlagAt(x, y), nil
	case cmdRestart:
		return mines.Restart(), nil
	}
	return mines.Command{}, nil
}

// ParseBatch decodes newline separated commands. Blank lines are skipped; a
// single bad line rejects the whole batch.
func ParseBatch(text string) ([]mines.Command, error) {
	var cmds []mines.Command
	for i, line := range iterBySep(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Format is the inverse of [Parse].
func Format(cmd mines.Command) string {
	switch cmd.Kind {
	case mines.CmdReveal:
		return fmt.Sprintf("%s %d %d", cmdOpen, cmd.X, cmd.Y)
	case mines.CmdToggleFlag:
		return fmt.Sprintf("%s %d %d", cmdFlag, cmd.X, cmd.Y)
	case mines.CmdRestart:
		return cmdRestart
	default:
		return cmdPoll
	}
}

// Execute parses text and applies every command to s in order, merging the
// outcomes.
func Execute(s *mines.Session, text string) (mines.Outcome, error) {
	cmds, err := ParseBatch(text)
	if err != nil {
		return mines.Outcome{}, err
	}
	out := s.Apply(mines.Command{})
	for _, cmd := range cmds {
		out = out.Merge(s.Apply(cmd))
	}
	return out, nil
}
