package schedule

import (
	"github.com/mikevelosports/velosched/internal/models"
)

// allocRule is one entry in the fixed-priority modality list: an eligibility
// query, a fixed minute cost, a block builder, and the state mutation to
// apply when the block is committed. Rules are evaluated strictly in order.
type allocRule struct {
	minutes  int
	eligible func() (level int, ok bool)
	build    func(level int) models.ContentBlock
	commit   func(level int)
}

// allocateDay greedily packs eligible content into the minute budget for one
// training day, advancing the progression tracker as blocks are committed.
// A block that does not fit is skipped; it never aborts the day. If even the
// dynamic warm-up does not fit, the day yields no blocks at all.
func allocateDay(info dayInfo, budget int, tr *tracker, liveBallOK bool) []models.ContentBlock {
	if budget < minutesDynamicWarmup {
		return nil
	}
	blocks := []models.ContentBlock{dynamicWarmupBlock()}
	remaining := budget - minutesDynamicWarmup

	// Game days get a warm-up pairing only, regardless of remaining budget.
	if info.isGame {
		if remaining >= minutesPreGameWarmup {
			blocks = append(blocks, preGameWarmupBlock())
		}
		return blocks
	}

	if info.isOverspeed {
		if tr.state.TotalOverspeed == 0 {
			// First-ever overspeed session: baseline assessment comes before
			// the stimulus, but only if both still fit together.
			switch {
			case remaining >= minutesFullAssessment+minutesOverspeed:
				blocks = append(blocks, fullAssessmentBlock())
				remaining -= minutesFullAssessment
				tr.recordAssessment(true, info.date)
			case remaining >= minutesQuickCheck+minutesOverspeed:
				blocks = append(blocks, quickCheckBlock())
				remaining -= minutesQuickCheck
				tr.recordAssessment(false, info.date)
			}
		}

		if remaining >= minutesOverspeed {
			level := tr.overspeedLevel()
			blocks = append(blocks, overspeedBlock(level))
			remaining -= minutesOverspeed
			tr.recordOverspeed()
		}

		if tr.state.TotalOverspeed >= longTossUnlockSessions && remaining >= minutesLongToss {
			blocks = append(blocks, longTossBlock())
			remaining -= minutesLongToss
			tr.recordLongToss()
		}
	}

	for _, rule := range modalityRules(tr, liveBallOK) {
		if remaining < rule.minutes {
			continue
		}
		level, ok := rule.eligible()
		if !ok {
			continue
		}
		blocks = append(blocks, rule.build(level))
		remaining -= rule.minutes
		if rule.commit != nil {
			rule.commit(level)
		}
	}

	if tr.assessmentDue(info.date) {
		switch {
		case remaining >= minutesFullAssessment:
			blocks = append(blocks, fullAssessmentBlock())
			tr.recordAssessment(true, info.date)
		case remaining >= minutesQuickCheck:
			blocks = append(blocks, quickCheckBlock())
			tr.recordAssessment(false, info.date)
		}
	}

	return blocks
}

// modalityRules is the fixed priority order for optional modality blocks:
// ground force, then sequencing, then the delivery capstone, then exit
// velocity. Exit velocity additionally requires live-ball work to be
// feasible for this player.
func modalityRules(tr *tracker, liveBallOK bool) []allocRule {
	return []allocRule{
		{
			minutes:  minutesGroundForce,
			eligible: func() (int, bool) { l := tr.groundForceLevel(); return l, l > 0 },
			build:    groundForceBlock,
			commit:   tr.recordGroundForce,
		},
		{
			minutes:  minutesSequencing,
			eligible: func() (int, bool) { l := tr.sequencingLevel(); return l, l > 0 },
			build:    sequencingBlock,
			commit:   tr.recordSequencing,
		},
		{
			minutes:  minutesDelivery,
			eligible: func() (int, bool) { return 0, tr.deliveryEligible() },
			build:    func(int) models.ContentBlock { return deliveryBlock() },
		},
		{
			minutes: minutesExitVelo,
			eligible: func() (int, bool) {
				if !liveBallOK {
					return 0, false
				}
				l := tr.exitVeloLevel()
				return l, l > 0
			},
			build:  exitVeloBlock,
			commit: tr.recordExitVelo,
		},
	}
}
