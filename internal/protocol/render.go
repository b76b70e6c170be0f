package protocol

import (
	"fmt"
	"strings"

	"github.com/vancomm/sweeper/internal/mines"
)

// Render draws the player grid with column and row numbers, the way a
// terminal client shows it. Covered cells are drawn as '-', open cells with
// no neighbouring mines as '.'.
func Render(b *mines.Board) string {
	dims := b.Dims()
	grid := b.Grid()
	w := len(fmt.Sprint(max(dims.Width, dims.Height) - 1))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%*s ", w, "")
	for x := range dims.Width {
		fmt.Fprintf(&sb, " %*d", w, x)
	}
	sb.WriteString("\n")

	for y := range dims.Height {
		fmt.Fprintf(&sb, "%*d:", w, y)
		for x := range dims.Width {
			fmt.Fprintf(&sb, " %*s", w, glyph(grid[dims.Index(mines.Point{X: x, Y: y})]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func glyph(s mines.CellState) string {
	switch {
	case s == mines.Covered:
		return "-"
	case s == mines.Flagged:
		return "F"
	case s == mines.Exploded:
		return "*"
	case s == mines.Revealed(0):
		return "."
	default:
		return s.String()
	}
}
