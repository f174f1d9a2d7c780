package schedule

import (
	"time"
)

// maxOverspeedPerWeek is the hard weekly ceiling on overspeed days; no phase
// policy may exceed it.
const maxOverspeedPerWeek = 3

// dayInfo is one planned calendar day before content allocation.
type dayInfo struct {
	date        time.Time
	isGame      bool
	isTraining  bool
	isOverspeed bool
}

// weekPlanner selects training days and overspeed days for one calendar
// week at a time.
type weekPlanner struct {
	trainingDays    map[time.Weekday]bool
	gameDays        map[time.Weekday]bool
	inSeason        bool
	maxTrainingDays int
	overspeedCap    int // weekly cap from the current macro phase
}

// plan lays out the seven days starting at weekStart. Training days are the
// configured weekdays truncated earliest-first at the age-resolved weekly
// max; only training days that are not in-season game days may host
// overspeed work.
func (p *weekPlanner) plan(weekStart time.Time) []dayInfo {
	days := make([]dayInfo, 7)
	var eligible []int // indexes of non-game training days, date order

	trainingCount := 0
	for i := range days {
		date := weekStart.AddDate(0, 0, i)
		wd := date.Weekday()

		d := dayInfo{date: date}
		d.isGame = p.inSeason && p.gameDays[wd]
		if p.trainingDays[wd] && trainingCount < p.maxTrainingDays {
			d.isTraining = true
			trainingCount++
			if !d.isGame {
				eligible = append(eligible, i)
			}
		}
		days[i] = d
	}

	target := p.overspeedCap
	if len(eligible) < target {
		target = len(eligible)
	}
	if target > maxOverspeedPerWeek {
		target = maxOverspeedPerWeek
	}

	for _, i := range selectOverspeedDays(eligible, target) {
		days[i].isOverspeed = true
	}
	return days
}

// selectOverspeedDays picks target days from the eligible indexes. The first
// pass is spacing-aware: it takes the first eligible day and then skips any
// day adjacent to the most recently taken one. If that under-fills the
// target, a second pass takes remaining eligible days regardless of
// adjacency, so the spacing heuristic is best-effort only.
func selectOverspeedDays(eligible []int, target int) []int {
	if target <= 0 {
		return nil
	}

	taken := make(map[int]bool, target)
	var selected []int

	last := -1
	for _, i := range eligible {
		if len(selected) >= target {
			break
		}
		if last >= 0 && i <= last+1 {
			continue
		}
		taken[i] = true
		selected = append(selected, i)
		last = i
	}

	for _, i := range eligible {
		if len(selected) >= target {
			break
		}
		if !taken[i] {
			taken[i] = true
			selected = append(selected, i)
		}
	}

	return selected
}
