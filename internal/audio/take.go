package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
)

// Take reads raw PCM packets from a capture channel and keeps them in memory
// until the channel is closed. Every packet is also written to the level meter.
type Take struct {
	input <-chan DataPacket
	meter *LevelMeter

	buf     bytes.Buffer
	started bool
	mu      sync.RWMutex
	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

// NewTake creates a take over input. meter may be nil.
func NewTake(input <-chan DataPacket, meter *LevelMeter) (*Take, error) {
	if input == nil {
		return nil, errors.New("input channel cannot be nil")
	}

	return &Take{input: input, meter: meter}, nil //nolint:exhaustruct // buffers start empty
}

// Start begins consuming the input channel.
func (t *Take) Start(ctx context.Context) error {
	if t.started {
		return errors.New("take already started")
	}

	t.started = true

	t.wg.Go(func() {
		for {
			select {
			case data, ok := <-t.input:
				if !ok {
					return
				}

				t.mu.Lock()
				t.buf.Write(data)
				t.mu.Unlock()

				if t.meter != nil {
					t.meter.Write(BytesToInt16(data))
				}

			case <-ctx.Done():
				t.setError(fmt.Errorf("take context cancelled: %w", ctx.Err()))
				return
			}
		}
	})

	return nil
}

// Wait blocks until the input channel closes and returns the captured PCM.
func (t *Take) Wait() ([]byte, error) {
	t.wg.Wait()

	t.mu.RLock()
	defer t.mu.RUnlock()

	return bytes.Clone(t.buf.Bytes()), t.err
}

// BytesCaptured returns the number of PCM bytes captured so far.
// This method is safe to call concurrently from multiple goroutines.
func (t *Take) BytesCaptured() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return int64(t.buf.Len())
}

func (t *Take) setError(err error) {
	t.errOnce.Do(func() {
		t.err = err
	})
}
