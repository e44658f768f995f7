// Package channels holds small helpers for sending on channels from
// goroutines that must never block, like audio device callbacks.
package channels

import (
	"errors"
)

var (
	ErrChannelClosed = errors.New("channel closed")
	ErrChannelFull   = errors.New("channel full")
)
