package engine

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid engine config")
	ErrLaneOutOfRange = errors.New("lane out of range")
)
