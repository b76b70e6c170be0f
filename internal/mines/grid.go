package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Covered  CellState = -2
	Flagged  CellState = -1
	Exploded CellState = 65
	/*
	 * Each item in the player grid is one of the following values:
	 *
	 * 	- 0 to 8 mean the cell is open and has a surrounding mine
	 * 	  count.
	 *
	 * 	- -1 means the cell is marked as a mine.
	 *
	 * 	- -2 means the cell is still covered.
	 *
	 * 	- 65 means the cell is a mine that has been revealed, either
	 * 	  by the player or by the end-of-game disclosure.
	 */
)

// Revealed returns the state of an open cell with n mined neighbours.
func Revealed(n int) CellState {
	return CellState(n)
}

func (s CellState) IsRevealed() bool {
	return 0 <= s && s <= 8
}

// Count reports the neighbouring mine count of an open cell.
func (s CellState) Count() (int, bool) {
	if !s.IsRevealed() {
		return 0, false
	}
	return int(s), true
}

func (s CellState) Valid() bool {
	return s == Covered || s == Flagged || s == Exploded || s.IsRevealed()
}

func (s CellState) String() string {
	switch {
	case s == Covered:
		return " "
	case s == Flagged:
		return "*"
	case s.IsRevealed():
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

type Dims struct {
	Width, Height int
}

var neighbourOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (d Dims) Len() int {
	return d.Width * d.Height
}

func (d Dims) InBounds(p Point) bool {
	return 0 <= p.X && p.X < d.Width && 0 <= p.Y && p.Y < d.Height
}

// Index maps p to its row-major slot. p must be in bounds.
func (d Dims) Index(p Point) int {
	return p.Y*d.Width + p.X
}

func (d Dims) PointAt(i int) Point {
	return Point{X: i % d.Width, Y: i / d.Width}
}

// Neighbors returns the in-bounds cells of the 8-neighbourhood of p.
func (d Dims) Neighbors(p Point) []Point {
	ns := make([]Point, 0, len(neighbourOffsets))
	for _, o := range neighbourOffsets {
		q := Point{X: p.X + o[0], Y: p.Y + o[1]}
		if d.InBounds(q) {
			ns = append(ns, q)
		}
	}
	return ns
}

// appendNeighbours is the index flavour of [Dims.Neighbors] used by the
// reveal engine to avoid a round trip through Point.
func (d Dims) appendNeighbours(dst []int, i int) []int {
	x, y := i%d.Width, i/d.Width
	for _, o := range neighbourOffsets {
		xx, yy := x+o[0], y+o[1]
		if 0 <= xx && xx < d.Width && 0 <= yy && yy < d.Height {
			dst = append(dst, yy*d.Width+xx)
		}
	}
	return dst
}
