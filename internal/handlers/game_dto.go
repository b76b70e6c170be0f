package handlers

import (
	"errors"
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/sessions"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type NewGameDTO struct {
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
	Seed      string `schema:"seed"`
}

// ParseNewGameDTO fills the fields present in src over defaults.
func ParseNewGameDTO(src map[string][]string, defaults mines.GameParams) (NewGameDTO, error) {
	dto := NewGameDTO{
		Width:     defaults.Width,
		Height:    defaults.Height,
		MineCount: defaults.MineCount,
	}
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) Params() mines.GameParams {
	return mines.GameParams{Width: dto.Width, Height: dto.Height, MineCount: dto.MineCount}
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameMove string

const (
	Reveal  GameMove = "reveal"
	Flag    GameMove = "flag"
	Restart GameMove = "restart"
)

var ErrUnknownMove = errors.New("unknown move")

func ParseGameMove(s string) (GameMove, error) {
	switch m := GameMove(s); m {
	case Reveal, Flag, Restart:
		return m, nil
	case "open":
		return Reveal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMove, s)
	}
}

// Command builds the engine command for m, reading a position from src when
// the move needs one.
func (m GameMove) Command(src map[string][]string) (mines.Command, error) {
	if m == Restart {
		return mines.Restart(), nil
	}
	pos, err := ParsePosition(src)
	if err != nil {
		return mines.Command{}, err
	}
	if m == Flag {
		return mines.FlagAt(pos.X, pos.Y), nil
	}
	return mines.RevealAt(pos.X, pos.Y), nil
}

type GameSessionDTO struct {
	Handle    string      `json:"handle,omitempty"`
	Phase     mines.Phase `json:"phase"`
	Won       bool        `json:"won"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	MineCount int         `json:"mine_count"`
	Seed      string      `json:"seed,omitempty"`
	Grid      mines.Grid  `json:"grid"`
}

func NewGameSessionDTO(handle string, snap sessions.Snapshot) *GameSessionDTO {
	return &GameSessionDTO{
		Handle:    handle,
		Phase:     snap.Phase,
		Won:       snap.Won,
		Width:     snap.Params.Width,
		Height:    snap.Params.Height,
		MineCount: snap.Params.EffectiveMines(),
		Seed:      snap.Seed,
		Grid:      snap.Grid,
	}
}

type CellDTO struct {
	X        int             `json:"x"`
	Y        int             `json:"y"`
	State    mines.CellState `json:"state"`
	Category mines.Category  `json:"category"`
}

func NewCellDTO(p mines.Point, s mines.CellState) CellDTO {
	return CellDTO{X: p.X, Y: p.Y, State: s, Category: mines.CategoryOf(s)}
}

type OutcomeDTO struct {
	Phase   mines.Phase `json:"phase"`
	Won     bool        `json:"won"`
	Changed []CellDTO   `json:"changed"`
}

func NewOutcomeDTO(o mines.Outcome) *OutcomeDTO {
	dto := &OutcomeDTO{
		Phase:   o.Phase,
		Won:     o.Won,
		Changed: make([]CellDTO, 0, len(o.Changed)),
	}
	for _, c := range o.Changed {
		dto.Changed = append(dto.Changed, NewCellDTO(c.Point, c.State))
	}
	return dto
}
