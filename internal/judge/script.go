// Package judge runs the scripted "AI judging" sequence and produces the
// score payload. Nothing in here reads the recorded audio.
package judge

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultMinDelay and DefaultMaxDelay bound how long each step is shown.
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 2000 * time.Millisecond
)

var labels = []string{
	"Analyzing audio quality...",
	"Detecting rhythm and flow...",
	"Evaluating wordplay and rhymes...",
	"Assessing creativity and style...",
	"Calculating final score...",
	"Generating feedback...",
}

// Rand is the randomness the judge needs. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Labels returns the step labels in the order they are shown.
func Labels() []string {
	return append([]string(nil), labels...)
}

// Progress is the percentage shown while step i is current.
func Progress(i int) float64 {
	return float64(i+1) * 100 / float64(len(labels))
}

// Step is one scripted phase of judging.
type Step struct {
	Index    int
	Label    string
	Progress float64
	Delay    time.Duration
}

// Last reports whether this is the final step.
func (s Step) Last() bool {
	return s.Index == len(labels)-1
}

// Script is the full ordered list of steps for one judging run.
type Script []Step

// NewScript draws a delay in [minDelay, maxDelay) for every label.
func NewScript(rng Rand, minDelay, maxDelay time.Duration) Script {
	if maxDelay < minDelay {
		minDelay, maxDelay = maxDelay, minDelay
	}

	span := float64(maxDelay - minDelay)
	script := make(Script, len(labels))

	for i, label := range labels {
		script[i] = Step{
			Index:    i,
			Label:    label,
			Progress: Progress(i),
			Delay:    minDelay + time.Duration(rng.Float64()*span),
		}
	}

	return script
}

// Total is the sum of all step delays.
func (s Script) Total() time.Duration {
	var total time.Duration
	for _, step := range s {
		total += step.Delay
	}

	return total
}

// Run executes the script on the calling goroutine: each step is announced
// through onStep and then waited out before the next one. Cancelling ctx only
// abandons the pending wait; a step that was announced is never repeated.
func Run(ctx context.Context, script Script, onStep func(Step)) error {
	for _, step := range script {
		if onStep != nil {
			onStep(step)
		}

		timer := time.NewTimer(step.Delay)

		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("judging interrupted at %q: %w", step.Label, ctx.Err())
		}
	}

	return nil
}
