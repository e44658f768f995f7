package channels

import (
	"errors"
	"sync/atomic"
)

// SendNonBlock attempts to send a message without blocking.
// Returns error if the channel is full or closed.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// DropCounter sends without blocking and counts what it had to drop.
// Safe for use from multiple goroutines.
type DropCounter[T any] struct {
	ch      chan<- T
	dropped atomic.Int64
	closed  atomic.Bool
}

// NewDropCounter wraps ch.
func NewDropCounter[T any](ch chan<- T) *DropCounter[T] {
	return &DropCounter[T]{ch: ch}
}

// Send delivers msg if there is room. Once the channel is seen closed every
// later send is dropped without touching it.
func (d *DropCounter[T]) Send(msg T) bool {
	if d.closed.Load() {
		d.dropped.Add(1)
		return false
	}

	err := SendNonBlock(d.ch, msg)
	if err == nil {
		return true
	}

	d.dropped.Add(1)
	if errors.Is(err, ErrChannelClosed) {
		d.closed.Store(true)
	}

	return false
}

// Dropped returns the number of messages that were not delivered.
func (d *DropCounter[T]) Dropped() int64 {
	return d.dropped.Load()
}
