package judge

// Performance is the headline label for an overall score.
type Performance struct {
	Level string
	Emoji string
}

// Rate maps an overall score to its performance label.
func Rate(overall int) Performance {
	switch {
	case overall >= 9:
		return Performance{Level: "Legendary", Emoji: "🔥"}
	case overall >= 8:
		return Performance{Level: "Excellent", Emoji: "🎯"}
	case overall >= 7:
		return Performance{Level: "Great", Emoji: "👌"}
	case overall >= 6:
		return Performance{Level: "Good", Emoji: "👍"}
	default:
		return Performance{Level: "Keep Grinding", Emoji: "💪"}
	}
}

// Tier buckets a category score for coloring.
type Tier int

const (
	TierBase Tier = iota
	TierMid
	TierTop
)

// TierOf buckets a category score.
func TierOf(score int) Tier {
	switch {
	case score >= 8:
		return TierTop
	case score >= 6:
		return TierMid
	default:
		return TierBase
	}
}

func (t Tier) String() string {
	switch t {
	case TierTop:
		return "top"
	case TierMid:
		return "mid"
	default:
		return "base"
	}
}

// Emoji is the tag shown next to a category score.
func (t Tier) Emoji() string {
	switch t {
	case TierTop:
		return "🟢"
	case TierMid:
		return "🟡"
	default:
		return "🔴"
	}
}
