package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds   = errors.New("point out of bounds")
	ErrInvalidParams = errors.New("invalid game params")
)

type OutOfBoundsError struct {
	Point
	Dims
}

// [*OutOfBoundsError] implements [error]
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"point %s out of bounds of %dx%d board", e.Point, e.Width, e.Height,
	)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
