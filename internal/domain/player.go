package domain

// PlayerSkills holds per-skill levels. Nothing reads or writes these yet.
type PlayerSkills struct {
	Development int `json:"development"`
	Design      int `json:"design"`
	Marketing   int `json:"marketing"`
}

// PlayerState is the numeric state of one game.
// Work >= 0; Food and Energy are in [0, 100].
type PlayerState struct {
	Work   int          `json:"work"`
	Food   int          `json:"food"`
	Energy int          `json:"energy"`
	Skills PlayerSkills `json:"skills"`
}

// NewPlayerState returns the starting state for a fresh game
func NewPlayerState(work, food, energy int) PlayerState {
	return PlayerState{
		Work:   work,
		Food:   clamp(food, 0, MaxStat),
		Energy: clamp(energy, 0, MaxStat),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
