package mines

import (
	"fmt"
	"strings"
)

// MaxCells caps the area of a board so that W·H always fits an int and the
// cell slices stay allocatable.
const MaxCells = 1 << 26

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Dims() Dims {
	return Dims{Width: p.Width, Height: p.Height}
}

func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidParams, p.Width)
	case p.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidParams, p.Height)
	case p.Width > MaxCells/p.Height:
		return fmt.Errorf("%w: board %dx%d has more than %d cells", ErrInvalidParams, p.Width, p.Height, MaxCells)
	case p.MineCount < 0:
		return fmt.Errorf("%w: mine count must not be negative, got %d", ErrInvalidParams, p.MineCount)
	}
	return nil
}

// EffectiveMines is the number of mines a generated board really holds:
// there is no room for more mines than cells.
func (p GameParams) EffectiveMines() int {
	return min(p.MineCount, p.Width*p.Height)
}

// Seed is the compact "W:H:B" form of p, parsed back by [ParseSeed].
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
