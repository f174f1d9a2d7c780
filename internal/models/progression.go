package models

import "time"

// ProgressionState is the running snapshot of a player's cumulative training
// progress. The collaborator layer persists it between runs; the generator
// mutates only its own copy for the duration of one generation call.
//
// All counters are monotonically non-decreasing within a run. Per-level maps
// are keyed by positive integer level; insertion order is irrelevant.
type ProgressionState struct {
	Phase      Phase  `json:"phase"`
	PhaseStart string `json:"phase_start,omitempty"`

	TotalOverspeed int `json:"total_overspeed"`
	PhaseOverspeed int `json:"phase_overspeed"`
	TotalLongToss  int `json:"total_long_toss"`

	GroundForce map[int]int `json:"ground_force,omitempty"`
	Sequencing  map[int]int `json:"sequencing,omitempty"`
	ExitVelo    map[int]int `json:"exit_velo,omitempty"`

	LastFullAssessment  string `json:"last_full_assessment,omitempty"`
	LastQuickAssessment string `json:"last_quick_assessment,omitempty"`

	NeedsGroundForce bool `json:"needs_ground_force"`
	NeedsSequencing  bool `json:"needs_sequencing"`
	NeedsExitVelo    bool `json:"needs_exit_velo"`
	NeedsDelivery    bool `json:"needs_delivery"`
}

// Clone returns a deep copy safe for the generator to mutate.
func (s ProgressionState) Clone() ProgressionState {
	out := s
	out.GroundForce = cloneLevels(s.GroundForce)
	out.Sequencing = cloneLevels(s.Sequencing)
	out.ExitVelo = cloneLevels(s.ExitVelo)
	return out
}

func cloneLevels(m map[int]int) map[int]int {
	if m == nil {
		return nil
	}
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// LevelTotal sums a per-level counter map across all levels.
func LevelTotal(m map[int]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// ParseDate parses a wire-format date. The zero time and false are returned
// for empty or malformed values; absent dates are a normal state, not an
// error.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
