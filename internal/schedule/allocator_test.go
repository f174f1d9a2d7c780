package schedule

import (
	"testing"
	"time"

	"github.com/mikevelosports/velosched/internal/models"
)

var allocDate = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func kinds(blocks []models.ContentBlock) []models.BlockKind {
	out := make([]models.BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func assertKinds(t *testing.T, blocks []models.ContentBlock, want ...models.BlockKind) {
	t.Helper()
	got := kinds(blocks)
	if len(got) != len(want) {
		t.Fatalf("blocks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("blocks = %v, want %v", got, want)
		}
	}
}

// TestAllocateFirstSessionEver verifies the bootstrap sequence on a player's
// very first overspeed day: dynamic warm-up, full assessment, overspeed at
// level 1.
func TestAllocateFirstSessionEver(t *testing.T) {
	tr := trackerWith(models.ProgressionState{Phase: models.PhaseC1Ramp})
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true, isOverspeed: true}, 45, tr, false)

	assertKinds(t, blocks, models.BlockDynamicWarmup, models.BlockFullAssessment, models.BlockOverspeed)
	if blocks[2].Level != 1 {
		t.Errorf("overspeed level = %d, want 1 in the first ramp phase", blocks[2].Level)
	}
	if tr.state.LastFullAssessment != "2026-03-02" {
		t.Errorf("last full assessment = %q, want the session date", tr.state.LastFullAssessment)
	}
}

// TestAllocateBootstrapQuickFallback verifies the bootstrap assessment falls
// back to a quick check when the full one plus the stimulus would not fit.
func TestAllocateBootstrapQuickFallback(t *testing.T) {
	tr := trackerWith(models.ProgressionState{Phase: models.PhaseC1Ramp})
	// 34 minutes: warm-up leaves 24, full(15)+overspeed(15)=30 does not fit,
	// quick(5)+overspeed(15)=20 does, and the 4 left afterwards cannot fund
	// an end-of-session attempt.
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true, isOverspeed: true}, 34, tr, false)

	assertKinds(t, blocks, models.BlockDynamicWarmup, models.BlockQuickCheck, models.BlockOverspeed)
	if tr.state.LastFullAssessment != "" {
		t.Error("quick fallback must not record a full assessment")
	}
	// No full assessment was ever recorded, so the end-of-session rule would
	// fire again on the next day with budget to spare.
	if !tr.assessmentDue(allocDate.AddDate(0, 0, 2)) {
		t.Error("full assessment should still be outstanding")
	}
}

// TestAllocateGameDay verifies game days get only the warm-up pairing, no
// stimulus or modality content regardless of budget.
func TestAllocateGameDay(t *testing.T) {
	tr := trackerWith(models.ProgressionState{
		Phase:            models.PhaseC1Primary,
		TotalOverspeed:   40,
		TotalLongToss:    10,
		NeedsGroundForce: true,
		NeedsSequencing:  true,
		NeedsExitVelo:    true,
		NeedsDelivery:    true,
		GroundForce:      map[int]int{1: 9, 2: 9},
		Sequencing:       map[int]int{1: 9, 2: 9},
	})
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true, isGame: true}, 90, tr, true)

	assertKinds(t, blocks, models.BlockDynamicWarmup, models.BlockPreGameWarmup)
}

// TestAllocateBudgetTooSmall verifies a budget below the warm-up cost yields
// an empty day, silently.
func TestAllocateBudgetTooSmall(t *testing.T) {
	tr := trackerWith(models.ProgressionState{})
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true, isOverspeed: true}, 9, tr, false)
	if len(blocks) != 0 {
		t.Fatalf("blocks = %v, want none", kinds(blocks))
	}
	if tr.state.TotalOverspeed != 0 {
		t.Error("empty day must not advance any counter")
	}
}

// TestAllocateLongTossPriority verifies long toss unlocks at 15 cumulative
// overspeed sessions and is scheduled before any leveled modality block.
func TestAllocateLongTossPriority(t *testing.T) {
	tr := trackerWith(models.ProgressionState{
		Phase:            models.PhaseC1Primary,
		TotalOverspeed:   15,
		NeedsGroundForce: true,
	})
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true, isOverspeed: true}, 90, tr, false)

	assertKinds(t, blocks,
		models.BlockDynamicWarmup,
		models.BlockOverspeed,
		models.BlockLongToss,
		models.BlockGroundForce,
		models.BlockFullAssessment,
	)
	if tr.state.TotalLongToss != 1 {
		t.Errorf("long toss count = %d, want 1", tr.state.TotalLongToss)
	}
}

// TestAllocateNonOverspeedDay verifies non-stimulus training days carry only
// modality and assessment content.
func TestAllocateNonOverspeedDay(t *testing.T) {
	tr := trackerWith(models.ProgressionState{
		Phase:            models.PhaseC1Primary,
		TotalOverspeed:   20,
		NeedsGroundForce: true,
		NeedsSequencing:  true,
		LastFullAssessment: "2026-03-01",
	})
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true}, 45, tr, false)

	assertKinds(t, blocks, models.BlockDynamicWarmup, models.BlockGroundForce, models.BlockSequencing)
	if tr.state.TotalOverspeed != 20 {
		t.Error("non-overspeed day must not advance the overspeed count")
	}
}

// TestAllocateSkipsUnaffordableBlocks verifies a block that does not fit is
// skipped while later cheaper blocks are still attempted.
func TestAllocateSkipsUnaffordableBlocks(t *testing.T) {
	tr := trackerWith(models.ProgressionState{
		Phase:            models.PhaseC1Primary,
		TotalOverspeed:   20,
		TotalLongToss:    9,
		NeedsDelivery:    true,
		NeedsExitVelo:    true,
		Sequencing:       map[int]int{1: 9, 2: 9},
		ExitVelo:         map[int]int{1: 3},
		LastFullAssessment: "2026-02-01",
	})
	// 30 minutes: warm-up leaves 20, delivery(15) fits and leaves 5, so the
	// exit velocity block(10) is skipped and the due assessment falls back
	// to the quick check(5).
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true}, 30, tr, true)

	assertKinds(t, blocks, models.BlockDynamicWarmup, models.BlockDelivery, models.BlockQuickCheck)
}

// TestAllocateExitVeloNeedsLiveBall verifies the live-ball feasibility flag
// gates exit velocity work on top of the needs flag.
func TestAllocateExitVeloNeedsLiveBall(t *testing.T) {
	state := models.ProgressionState{
		Phase:              models.PhaseC1Primary,
		TotalOverspeed:     10,
		NeedsExitVelo:      true,
		LastFullAssessment: "2026-03-01",
	}

	with := allocateDay(dayInfo{date: allocDate, isTraining: true}, 45, trackerWith(state), true)
	assertKinds(t, with, models.BlockDynamicWarmup, models.BlockExitVelo)

	without := allocateDay(dayInfo{date: allocDate, isTraining: true}, 45, trackerWith(state), false)
	assertKinds(t, without, models.BlockDynamicWarmup)
}

// TestAllocateEndOfSessionAssessment verifies the 14-day repeat rule and the
// quick fallback when the full assessment does not fit.
func TestAllocateEndOfSessionAssessment(t *testing.T) {
	// 13 days since the last full assessment: not due.
	tr := trackerWith(models.ProgressionState{LastFullAssessment: "2026-02-17"})
	blocks := allocateDay(dayInfo{date: allocDate, isTraining: true}, 60, tr, false)
	assertKinds(t, blocks, models.BlockDynamicWarmup)

	// 14 days: due, and a full assessment fits.
	tr = trackerWith(models.ProgressionState{LastFullAssessment: "2026-02-16"})
	blocks = allocateDay(dayInfo{date: allocDate, isTraining: true}, 60, tr, false)
	assertKinds(t, blocks, models.BlockDynamicWarmup, models.BlockFullAssessment)
	if tr.state.LastFullAssessment != "2026-03-02" {
		t.Errorf("last full assessment = %q, want session date", tr.state.LastFullAssessment)
	}

	// Due but only the quick check fits.
	tr = trackerWith(models.ProgressionState{LastFullAssessment: "2026-02-16"})
	blocks = allocateDay(dayInfo{date: allocDate, isTraining: true}, 20, tr, false)
	assertKinds(t, blocks, models.BlockDynamicWarmup, models.BlockQuickCheck)
	if tr.state.LastQuickAssessment != "2026-03-02" {
		t.Errorf("last quick assessment = %q, want session date", tr.state.LastQuickAssessment)
	}
}
