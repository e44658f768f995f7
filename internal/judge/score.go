package judge

import (
	"encoding/json"
	"fmt"
)

const (
	feedback = "Your freestyle shows strong potential with solid flow and rhythm. " +
		"Your wordplay demonstrates creativity, and your delivery has confidence. " +
		"Focus on developing more complex rhyme schemes and varying your cadence to reach the next level."

	// MaxScore is the denominator every score is shown against.
	MaxScore = 10
)

var highlights = []string{
	"Consistent rhythm throughout",
	"Creative metaphors and wordplay",
	"Confident delivery style",
	"Good use of internal rhymes",
}

// Categories holds the four per-skill scores.
type Categories struct {
	Flow       int `json:"flow"`
	Wordplay   int `json:"wordplay"`
	Creativity int `json:"creativity"`
	Delivery   int `json:"delivery"`
}

// Category is one row of the breakdown.
type Category struct {
	Name  string
	Blurb string
	Score int
}

// All lists the categories in display order.
func (c Categories) All() []Category {
	return []Category{
		{Name: "Flow", Blurb: "Rhythm & Timing", Score: c.Flow},
		{Name: "Wordplay", Blurb: "Rhymes & Bars", Score: c.Wordplay},
		{Name: "Creativity", Blurb: "Originality", Score: c.Creativity},
		{Name: "Delivery", Blurb: "Style & Energy", Score: c.Delivery},
	}
}

// Score is the judging result. It is a value: copies never share highlights.
type Score struct {
	Overall    int
	Categories Categories
	Feedback   string
	highlights []string
}

// Generate rolls a new score payload.
func Generate(rng Rand) Score {
	return Score{
		Overall: 7 + rng.IntN(3),
		Categories: Categories{
			Flow:       7 + rng.IntN(3),
			Wordplay:   6 + rng.IntN(3),
			Creativity: 7 + rng.IntN(3),
			Delivery:   6 + rng.IntN(3),
		},
		Feedback:   feedback,
		highlights: append([]string(nil), highlights...),
	}
}

// Highlights returns a copy of the highlight badges in order.
func (s Score) Highlights() []string {
	return append([]string(nil), s.highlights...)
}

// Celebrate reports whether the score earns the fanfare.
func (s Score) Celebrate() bool {
	return s.Overall > 8
}

// ShareText is the one-line summary used for sharing.
func (s Score) ShareText() string {
	return fmt.Sprintf("I just scored %d/%d on FreestyleAI! %s", s.Overall, MaxScore, Rate(s.Overall).Emoji)
}

type scoreJSON struct {
	Overall    int        `json:"overallScore"`
	Categories Categories `json:"categories"`
	Feedback   string     `json:"feedback"`
	Highlights []string   `json:"highlights"`
}

// MarshalJSON includes the highlights.
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(scoreJSON{
		Overall:    s.Overall,
		Categories: s.Categories,
		Feedback:   s.Feedback,
		Highlights: s.Highlights(),
	})
}
