package mines

import "iter"

type Cell struct {
	Point
	Mine  bool
	State CellState
}

// Board owns the real mine layout and the player grid. The layout never
// changes after construction; the player grid is only written by the reveal
// engine and the end-of-game disclosure.
type Board struct {
	dims      Dims
	mines     []bool /* real mine points */
	grid      Grid   /* player knowledge */
	mineCount int
	todo      *celltodo
}

func newBoard(dims Dims, mines []bool) *Board {
	grid := make(Grid, dims.Len())
	count := 0
	for i := range grid {
		grid[i] = Covered
		if mines[i] {
			count++
		}
	}
	return &Board{
		dims:      dims,
		mines:     mines,
		grid:      grid,
		mineCount: count,
		todo:      newCelltodo(dims.Len()),
	}
}

func (b *Board) Dims() Dims {
	return b.dims
}

func (b *Board) MineCount() int {
	return b.mineCount
}

func (b *Board) Cell(p Point) (Cell, error) {
	if !b.dims.InBounds(p) {
		return Cell{}, &OutOfBoundsError{Point: p, Dims: b.dims}
	}
	return b.cellAt(b.dims.Index(p)), nil
}

func (b *Board) cellAt(i int) Cell {
	return Cell{
		Point: b.dims.PointAt(i),
		Mine:  b.mines[i],
		State: b.grid[i],
	}
}

// All yields every cell in row-major order.
func (b *Board) All() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for i := range b.grid {
			c := b.cellAt(i)
			if !yield(c.Point, c) {
				return
			}
		}
	}
}

// Grid returns a copy of the player grid.
func (b *Board) Grid() Grid {
	g := make(Grid, len(b.grid))
	copy(g, b.grid)
	return g
}

func (b *Board) String() string {
	return b.grid.ToString(b.dims.Width)
}

func (b *Board) setState(i int, s CellState) Change {
	b.grid[i] = s
	return Change{Point: b.dims.PointAt(i), State: s}
}

func (b *Board) adjacentMines(i int, scratch []int) int {
	n := 0
	for _, j := range b.dims.appendNeighbours(scratch[:0], i) {
		if b.mines[j] {
			n++
		}
	}
	return n
}

func (b *Board) adjacentFlags(i int, scratch []int) int {
	n := 0
	for _, j := range b.dims.appendNeighbours(scratch[:0], i) {
		if b.grid[j] == Flagged {
			n++
		}
	}
	return n
}
