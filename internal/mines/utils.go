package mines

/*
celltodo is a FIFO of cell indices threaded through next. A cell is let into
the list at most once for the lifetime of a board: by the time a cell is
taken out it has left the Covered state for good, so there is never a reason
to queue it again.
*/
type celltodo struct {
	next       []int
	queued     []bool
	head, tail int
}

func newCelltodo(n int) *celltodo {
	return &celltodo{
		next:   make([]int, n),
		queued: make([]bool, n),
		head:   -1, tail: -1,
	}
}

func (std *celltodo) add(i int) {
	if std.queued[i] {
		return /* already on it */
	}
	std.queued[i] = true
	if std.tail >= 0 {
		std.next[std.tail] = i
	} else {
		std.head = i
	}
	std.tail = i
	std.next[i] = -1
}

func (std *celltodo) take() (int, bool) {
	if std.head < 0 {
		return -1, false
	}
	i := std.head
	std.head = std.next[i]
	if std.head < 0 {
		std.tail = -1
	}
	return i, true
}
