package schedule

import (
	"time"

	"github.com/mikevelosports/velosched/internal/models"
)

// Progression thresholds. Counts are cumulative sessions unless noted.
const (
	// Long toss unlocks once this much overspeed volume exists.
	longTossUnlockSessions = 15

	// Ground force levels: unlocked by overspeed volume plus sessions at
	// the previous ground force level.
	groundForceL1Overspeed = 3
	groundForceL2Overspeed = 15
	groundForceL3Overspeed = 30
	groundForcePrevLevel   = 5

	// Sequencing levels.
	sequencingL1Overspeed = 3
	sequencingL2Overspeed = 15
	sequencingPrevLevel   = 5

	// Delivery capstone gates.
	deliveryLongToss     = 5
	deliverySequencingL2 = 5

	// Exit velocity escalation across all levels.
	exitVeloL2Total = 10
	exitVeloL3Total = 20

	// Full assessments repeat no more often than this.
	assessmentInterval = 14 * 24 * time.Hour
)

// tracker is the progression state machine: the generator's private mutable
// copy of the progression state plus the eligibility and level-selection
// queries layered on it. Advance calls update counters immediately, so later
// queries within the same day or week see the new counts.
type tracker struct {
	state *models.ProgressionState
}

func newTracker(state *models.ProgressionState) *tracker {
	return &tracker{state: state}
}

// overspeedLevel selects the overspeed level for the current phase. Level is
// fixed at 1 during the first ramp phase, volume-escalated during the rest
// of cycle 1, and shifted up a band in later cycles.
func (t *tracker) overspeedLevel() int {
	phase := t.state.Phase.Normalize()
	total := t.state.TotalOverspeed

	if phase.Cycle() == 1 {
		if phase.Type() == models.PhaseRamp {
			return 1
		}
		switch {
		case total < 10:
			return 1
		case total < 20:
			return 2
		default:
			return 3
		}
	}

	switch {
	case total < 15:
		return 2
	case total < 30:
		return 3
	case total < 45:
		return 4
	default:
		return 5
	}
}

// groundForceLevel returns the selected ground force level, or 0 when the
// modality is switched off or not yet unlocked.
func (t *tracker) groundForceLevel() int {
	if !t.state.NeedsGroundForce {
		return 0
	}
	total := t.state.TotalOverspeed
	switch {
	case total >= groundForceL3Overspeed && t.state.GroundForce[2] >= groundForcePrevLevel:
		return 3
	case total >= groundForceL2Overspeed && t.state.GroundForce[1] >= groundForcePrevLevel:
		return 2
	case total >= groundForceL1Overspeed:
		return 1
	}
	return 0
}

// sequencingLevel returns the selected sequencing level, or 0.
func (t *tracker) sequencingLevel() int {
	if !t.state.NeedsSequencing {
		return 0
	}
	total := t.state.TotalOverspeed
	switch {
	case total >= sequencingL2Overspeed && t.state.Sequencing[1] >= sequencingPrevLevel:
		return 2
	case total >= sequencingL1Overspeed:
		return 1
	}
	return 0
}

// deliveryEligible reports whether the capstone delivery modality is
// unlocked: enough long toss volume and enough level-2 sequencing sessions.
func (t *tracker) deliveryEligible() bool {
	return t.state.NeedsDelivery &&
		t.state.TotalLongToss >= deliveryLongToss &&
		t.state.Sequencing[2] >= deliverySequencingL2
}

// exitVeloLevel escalates 1 -> 2 -> 3 on cumulative exit velocity volume
// across all levels, or 0 when the modality is switched off.
func (t *tracker) exitVeloLevel() int {
	if !t.state.NeedsExitVelo {
		return 0
	}
	total := models.LevelTotal(t.state.ExitVelo)
	switch {
	case total < exitVeloL2Total:
		return 1
	case total < exitVeloL3Total:
		return 2
	default:
		return 3
	}
}

// assessmentDue reports whether an end-of-session assessment should be
// attempted on the given day: always before the first full assessment ever,
// then only once the repeat interval has elapsed since the last full one.
func (t *tracker) assessmentDue(day time.Time) bool {
	last, ok := models.ParseDate(t.state.LastFullAssessment)
	if !ok {
		return true
	}
	return day.Sub(last) >= assessmentInterval
}

func (t *tracker) recordOverspeed() {
	t.state.TotalOverspeed++
	t.state.PhaseOverspeed++
}

func (t *tracker) recordLongToss() {
	t.state.TotalLongToss++
}

func (t *tracker) recordGroundForce(level int) {
	if t.state.GroundForce == nil {
		t.state.GroundForce = make(map[int]int)
	}
	t.state.GroundForce[level]++
}

func (t *tracker) recordSequencing(level int) {
	if t.state.Sequencing == nil {
		t.state.Sequencing = make(map[int]int)
	}
	t.state.Sequencing[level]++
}

func (t *tracker) recordExitVelo(level int) {
	if t.state.ExitVelo == nil {
		t.state.ExitVelo = make(map[int]int)
	}
	t.state.ExitVelo[level]++
}

func (t *tracker) recordAssessment(full bool, day time.Time) {
	if full {
		t.state.LastFullAssessment = day.Format(models.DateLayout)
		return
	}
	t.state.LastQuickAssessment = day.Format(models.DateLayout)
}
