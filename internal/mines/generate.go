package mines

import (
	"hash/maphash"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// NewRand returns a source seeded from the runtime's random hash seed, so
// every call yields a different sequence.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// SeededRand derives a reproducible source from a free-form phrase. Two
// games generated from the same phrase and params share a mine layout.
func SeededRand(phrase string) *rand.Rand {
	return rand.New(rand.NewChaCha8(blake2b.Sum256([]byte(phrase))))
}

// Layout produces the board installed when a session enters Preparing.
type Layout func(p GameParams) *Board

// RandomLayout places mines uniformly at random using r.
func RandomLayout(r *rand.Rand) Layout {
	if r == nil {
		r = NewRand()
	}
	return func(p GameParams) *Board {
		return Generate(p, r)
	}
}

// FixedLayout always places mines at the given points, ignoring
// p.MineCount. Points outside the board are dropped.
func FixedLayout(mines ...Point) Layout {
	return func(p GameParams) *Board {
		dims := p.Dims()
		grid := make([]bool, dims.Len())
		for _, m := range mines {
			if dims.InBounds(m) {
				grid[dims.Index(m)] = true
			}
		}
		return newBoard(dims, grid)
	}
}

func Generate(p GameParams, r *rand.Rand) *Board {
	dims := p.Dims()
	n := dims.Len()

	/*
	 * Lay the mines down at the front of the grid, then shuffle the
	 * whole grid: every placement of the mines is equally likely.
	 */
	grid := make([]bool, n)
	for i := range p.EffectiveMines() {
		grid[i] = true
	}
	r.Shuffle(n, func(i, j int) {
		grid[i], grid[j] = grid[j], grid[i]
	})

	Log.Debug("generated board", slog.String("seed", p.Seed()))

	return newBoard(dims, grid)
}
