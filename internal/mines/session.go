package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

type Phase uint8

const (
	Preparing Phase = iota
	Playing
	Ended
)

func (p Phase) String() string {
	switch p {
	case Preparing:
		return "preparing"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type CommandKind uint8

const (
	CmdReveal CommandKind = iota + 1
	CmdToggleFlag
	CmdRestart
)

func (k CommandKind) String() string {
	switch k {
	case CmdReveal:
		return "reveal"
	case CmdToggleFlag:
		return "flag"
	case CmdRestart:
		return "restart"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is a player action. The zero Command changes nothing; applying
// it just reports the current phase.
type Command struct {
	Kind CommandKind
	Point
}

func RevealAt(x, y int) Command {
	return Command{Kind: CmdReveal, Point: Point{X: x, Y: y}}
}

func FlagAt(x, y int) Command {
	return Command{Kind: CmdToggleFlag, Point: Point{X: x, Y: y}}
}

func Restart() Command {
	return Command{Kind: CmdRestart}
}

func (c Command) String() string {
	if c.Kind == CmdRestart {
		return c.Kind.String()
	}
	return c.Kind.String() + " " + c.Point.String()
}

// Outcome is what a command did: the cells it changed, in the order they
// changed, and the phase the session is in afterwards.
type Outcome struct {
	Changed []Change
	Phase   Phase
	Won     bool
}

// Merge folds a later outcome into o. A cell changed by both keeps its
// first position and its last state.
func (o Outcome) Merge(next Outcome) Outcome {
	merged := Outcome{
		Changed: make([]Change, 0, len(o.Changed)+len(next.Changed)),
		Phase:   next.Phase,
		Won:     next.Won,
	}
	at := make(map[Point]int, cap(merged.Changed))
	for _, changes := range [][]Change{o.Changed, next.Changed} {
		for _, c := range changes {
			if i, ok := at[c.Point]; ok {
				merged.Changed[i].State = c.State
				continue
			}
			at[c.Point] = len(merged.Changed)
			merged.Changed = append(merged.Changed, c)
		}
	}
	return merged
}

// Session sequences boards through Preparing, Playing and Ended. It is not
// safe for concurrent use; callers serialize commands.
type Session struct {
	params GameParams
	layout Layout
	board  *Board
	phase  Phase
	won    bool
}

func NewSession(params GameParams, r *rand.Rand) (*Session, error) {
	return NewSessionWithLayout(params, RandomLayout(r))
}

func NewSessionWithLayout(params GameParams, layout Layout) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Session{params: params, layout: layout}
	s.prepare()
	return s, nil
}

func (s *Session) Params() GameParams {
	return s.params
}

func (s *Session) Phase() Phase {
	return s.phase
}

// Won is meaningful once the session has Ended.
func (s *Session) Won() bool {
	return s.won
}

func (s *Session) Board() *Board {
	return s.board
}

func (s *Session) Cell(x, y int) (CellState, error) {
	c, err := s.board.Cell(Point{X: x, Y: y})
	if err != nil {
		return 0, err
	}
	return c.State, nil
}

/*
prepare installs a fresh board. Preparing is left as soon as it is entered:
nothing is uncovered on a new board, so there is nothing to cascade.
*/
func (s *Session) prepare() []Change {
	s.phase = Preparing
	s.won = false
	s.board = s.layout(s.params)

	changes := make([]Change, 0, len(s.board.grid))
	for i, state := range s.board.grid {
		changes = append(changes, Change{Point: s.board.dims.PointAt(i), State: state})
	}

	s.phase = Playing
	Log.Debug("new board installed",
		slog.String("params", s.params.Seed()),
		slog.Int("mines", s.board.MineCount()),
	)
	return changes
}

func (s *Session) outcome(changes []Change) Outcome {
	return Outcome{Changed: changes, Phase: s.phase, Won: s.won}
}

// Apply runs one command to completion. Commands that make no sense in the
// current phase, or that point outside the board, change nothing.
func (s *Session) Apply(cmd Command) Outcome {
	switch s.phase {
	case Playing:
	case Ended:
		if cmd.Kind == CmdRestart {
			return s.outcome(s.prepare())
		}
		return s.outcome(nil)
	default:
		return s.outcome(nil)
	}

	if cmd.Kind == CmdRestart || !s.board.dims.InBounds(cmd.Point) {
		return s.outcome(nil)
	}

	e := newEngine(s.board)
	switch cmd.Kind {
	case CmdToggleFlag:
		e.toggleFlag(cmd.Point)
	case CmdReveal:
		if e.reveal(cmd.Point) {
			s.end(e, false)
		} else if len(e.changes) > 0 && s.cleared() {
			s.end(e, true)
		}
	}
	return s.outcome(e.changes)
}

func (s *Session) end(e *engine, won bool) {
	s.phase = Ended
	s.won = won
	e.disclose()
	Log.Debug("game over", slog.Bool("won", won))
}

// cleared reports whether every cell without a mine has been opened.
func (s *Session) cleared() bool {
	for _, c := range s.board.All() {
		if !c.Mine && !c.State.IsRevealed() {
			return false
		}
	}
	return true
}
