package engine

import "github.com/pkg/errors"

var (
	ErrColOutOfRange = errors.New("column out of range")
	ErrColFull       = errors.New("column full")
	ErrBoardFull     = errors.New("board full")
	ErrBadBoard      = errors.New("invalid board")
)
