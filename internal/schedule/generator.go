// Package schedule implements the periodized training-schedule generator: a
// deterministic single pass that turns a player's training configuration and
// progression snapshot into a multi-week calendar of prescribed content.
//
// The generator performs no I/O, reads no clock, and mutates only its own
// deep copy of the supplied progression state, so two calls with identical
// inputs produce identical schedules. Callers that share one mutable
// snapshot across concurrent calls must serialize those calls themselves.
package schedule

import (
	"fmt"
	"time"

	"github.com/mikevelosports/velosched/internal/models"
)

// Generate is the single entry point: it produces the full training
// schedule for the configured horizon. The only caller contract violations
// treated as errors are a non-positive horizon and an unparseable start
// date; every other input is clamped or defaulted.
func Generate(cfg models.Config, initial models.ProgressionState) (*models.Schedule, error) {
	if cfg.HorizonWeeks <= 0 {
		return nil, fmt.Errorf("horizon must be at least one week, got %d", cfg.HorizonWeeks)
	}
	start, err := time.Parse(models.DateLayout, cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start date %q: %w", cfg.StartDate, err)
	}

	state := initial.Clone()
	state.Phase = state.Phase.Normalize()
	tr := newTracker(&state)

	sessionMinutes := ResolveSessionMinutes(cfg.Age, cfg.SessionMinutes)
	planner := &weekPlanner{
		trainingDays:    models.WeekdaySet(cfg.TrainingDays),
		gameDays:        models.WeekdaySet(cfg.GameDays),
		inSeason:        cfg.InSeason,
		maxTrainingDays: ResolveMaxTrainingDays(cfg.Age, cfg.SessionsPerWeek),
		overspeedCap:    state.Phase.WeeklyOverspeedCap(),
	}

	sched := &models.Schedule{
		StartDate:    start.Format(models.DateLayout),
		HorizonWeeks: cfg.HorizonWeeks,
		Weeks:        make([]models.WeekPlan, 0, cfg.HorizonWeeks),
	}

	for w := 0; w < cfg.HorizonWeeks; w++ {
		weekStart := start.AddDate(0, 0, 7*w)
		week := models.WeekPlan{
			Index:     w,
			StartDate: weekStart.Format(models.DateLayout),
			Days:      make([]models.DayPlan, 0, 7),
		}

		for _, info := range planner.plan(weekStart) {
			day := models.DayPlan{
				Date:           info.date.Format(models.DateLayout),
				Weekday:        info.date.Weekday().String(),
				IsGameDay:      info.isGame,
				IsTrainingDay:  info.isTraining,
				IsOverspeedDay: info.isOverspeed,
				Blocks:         []models.ContentBlock{},
			}
			if info.isTraining {
				if blocks := allocateDay(info, sessionMinutes, tr, cfg.LiveBallOK); blocks != nil {
					day.Blocks = blocks
				}
			}
			week.Days = append(week.Days, day)
		}

		sched.Weeks = append(sched.Weeks, week)
	}

	return sched, nil
}
