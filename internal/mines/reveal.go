package mines

// Change records the state a cell was moved to by a command.
type Change struct {
	Point
	State CellState
}

// engine applies one player command to a board and records every cell it
// touches. A fresh engine is used per command.
type engine struct {
	board   *Board
	changes []Change
	scratch [8]int
	nbrs    [8]int
}

func newEngine(b *Board) *engine {
	return &engine{board: b}
}

func (e *engine) set(i int, s CellState) {
	e.changes = append(e.changes, e.board.setState(i, s))
}

func (e *engine) toggleFlag(p Point) {
	i := e.board.dims.Index(p)
	switch e.board.grid[i] {
	case Covered:
		e.set(i, Flagged)
	case Flagged:
		e.set(i, Covered)
	}
}

// reveal opens the cell at p, or chords it when it is already open. It
// reports whether any mine went off.
func (e *engine) reveal(p Point) (hit bool) {
	b := e.board
	i := b.dims.Index(p)

	switch s := b.grid[i]; {
	case s == Covered:
		b.todo.add(i)

	case s.IsRevealed():
		/*
		 * Chord. The player only has to have flagged as many
		 * neighbours as there are mines around; whether the flags
		 * sit on the actual mines is not checked; a wrong flag
		 * means some other neighbour is a mine and will go off.
		 */
		if b.adjacentFlags(i, e.scratch[:]) < b.adjacentMines(i, e.scratch[:]) {
			return false
		}
		for _, j := range b.dims.appendNeighbours(e.nbrs[:0], i) {
			if b.grid[j] == Covered {
				b.todo.add(j)
			}
		}

	default:
		/* flagged cells are protected, exploded ones are final */
		return false
	}

	return e.drain()
}

/*
drain opens everything on the to-do list. Every time a cell turns out to
have no neighbouring mines, all its covered neighbours go on the list as
well. A cell that is no longer covered when it comes off the list was
reached twice; the second visit does nothing.
*/
func (e *engine) drain() (hit bool) {
	b := e.board
	for {
		i, ok := b.todo.take()
		if !ok {
			break
		}
		if b.grid[i] != Covered {
			continue
		}
		if b.mines[i] {
			e.set(i, Exploded)
			hit = true
			continue
		}
		n := b.adjacentMines(i, e.scratch[:])
		e.set(i, Revealed(n))
		if n != 0 {
			continue
		}
		for _, j := range b.dims.appendNeighbours(e.nbrs[:0], i) {
			if b.grid[j] == Covered {
				b.todo.add(j)
			}
		}
	}
	return hit
}

// disclose flips every mine the player has not opened to Exploded. Other
// cells are left as they are.
func (e *engine) disclose() {
	b := e.board
	for i, mine := range b.mines {
		if mine && (b.grid[i] == Covered || b.grid[i] == Flagged) {
			e.set(i, Exploded)
		}
	}
}
