// Package game holds the stage state machine for one player session.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/internal/judge"
	"github.com/google/uuid"
)

// ErrWrongStage is returned when a transition is asked for from a stage that
// does not allow it. The controller is left unchanged.
var ErrWrongStage = errors.New("transition not allowed from current stage")

// Stage is the screen the player is on.
type Stage int

const (
	StageIntro Stage = iota
	StageRecording
	StageJudging
	StageResults
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageRecording:
		return "recording"
	case StageJudging:
		return "judging"
	case StageResults:
		return "results"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Controller tracks the current stage and the payload handed between stages.
// It is not safe for concurrent use; the TUI drives it from its update loop.
type Controller struct {
	stage Stage
	clip  *audio.Clip
	score *judge.Score
	round uuid.UUID
}

// NewController starts at the intro.
func NewController() *Controller {
	return &Controller{stage: StageIntro} //nolint:exhaustruct // no payload yet
}

func (c *Controller) Stage() Stage { return c.stage }

// Clip is the recording awaiting judgement, nil outside of judging.
func (c *Controller) Clip() *audio.Clip { return c.clip }

// Score is the judging result, nil outside of results.
func (c *Controller) Score() *judge.Score { return c.score }

// RoundID identifies the current attempt. It is uuid.Nil at the intro.
func (c *Controller) RoundID() uuid.UUID { return c.round }

// Start moves from the intro to recording and opens a new round.
func (c *Controller) Start() error {
	if err := c.expect("start", StageIntro); err != nil {
		return err
	}

	c.round = uuid.New()
	c.move(StageRecording)

	return nil
}

// RecordingComplete moves to judging carrying the finished clip.
func (c *Controller) RecordingComplete(clip audio.Clip) error {
	if err := c.expect("complete recording", StageRecording); err != nil {
		return err
	}

	c.clip = &clip
	c.move(StageJudging, "clipBytes", len(clip.Data), "clipDuration", clip.Duration)

	return nil
}

// JudgingComplete moves to results. The clip is dropped once it has been judged.
func (c *Controller) JudgingComplete(score judge.Score) error {
	if err := c.expect("complete judging", StageJudging); err != nil {
		return err
	}

	c.clip = nil
	c.score = &score
	c.move(StageResults, "overall", score.Overall)

	return nil
}

// PlayAgain returns to the intro and forgets the round.
func (c *Controller) PlayAgain() error {
	if err := c.expect("play again", StageResults); err != nil {
		return err
	}

	c.reset()

	return nil
}

// Back abandons a recording without judging it.
func (c *Controller) Back() error {
	if err := c.expect("go back", StageRecording); err != nil {
		return err
	}

	c.reset()

	return nil
}

func (c *Controller) reset() {
	c.clip = nil
	c.score = nil
	c.move(StageIntro)
	c.round = uuid.Nil
}

func (c *Controller) expect(action string, want Stage) error {
	if c.stage != want {
		return fmt.Errorf("cannot %s from %s: %w", action, c.stage, ErrWrongStage)
	}

	return nil
}

func (c *Controller) move(to Stage, attrs ...any) {
	from := c.stage
	c.stage = to

	slog.Info("stage transition",
		append([]any{"from", from.String(), "to", to.String(), "round", c.round.String()}, attrs...)...)
}
