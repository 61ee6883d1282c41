package game

import (
	"errors"
	"fmt"
)

const (
	MinSize = 3
	MaxSize = 6
)

type InvalidSizeError struct {
	Size int
}

var ErrNoLegalMoves error = errors.New("no legal moves left")

func NewInvalidSizeError(size int) error {
	return &InvalidSizeError{Size: size}
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("board size %d is not supported, must be from %d to %d", e.Size, MinSize, MaxSize)
}
