package mines

import "strconv"

// Category is the visual class a presentation layer paints a cell with.
type Category string

const (
	CategoryCovered Category = "covered"
	CategoryFlagged Category = "flagged"
	CategoryMine    Category = "mine"
)

func CategoryOf(s CellState) Category {
	switch {
	case s == Covered:
		return CategoryCovered
	case s == Flagged:
		return CategoryFlagged
	case s.IsRevealed():
		return Category("count" + strconv.Itoa(int(s)))
	default:
		return CategoryMine
	}
}
