package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the API.
const DateLayout = "2006-01-02"

// Config is the immutable training configuration for one player. It is the
// persisted form used by the API and storage layers; the generator consumes
// it as-is.
type Config struct {
	Age             int      `json:"age"`
	InSeason        bool     `json:"in_season"`
	GameDays        []string `json:"game_days"`
	TrainingDays    []string `json:"training_days"`
	SessionsPerWeek int      `json:"sessions_per_week"`
	SessionMinutes  int      `json:"session_minutes"`
	StartDate       string   `json:"start_date"`
	HorizonWeeks    int      `json:"horizon_weeks"`
	LiveBallOK      bool     `json:"live_ball_ok"`
}

// ParseWeekday maps a weekday name ("mon", "Monday", ...) to a time.Weekday.
// Unknown names return ok=false; callers ignore them rather than erroring.
func ParseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sun", "sunday":
		return time.Sunday, true
	case "mon", "monday":
		return time.Monday, true
	case "tue", "tues", "tuesday":
		return time.Tuesday, true
	case "wed", "wednesday":
		return time.Wednesday, true
	case "thu", "thur", "thurs", "thursday":
		return time.Thursday, true
	case "fri", "friday":
		return time.Friday, true
	case "sat", "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}

// WeekdaySet converts a list of weekday names into a membership set,
// silently dropping names that do not parse.
func WeekdaySet(names []string) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(names))
	for _, n := range names {
		if wd, ok := ParseWeekday(n); ok {
			set[wd] = true
		}
	}
	return set
}
