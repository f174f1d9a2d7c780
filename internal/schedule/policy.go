package schedule

// Age-banded session policy. Inputs are clamped, never rejected.
const (
	minSessionMinutes      = 15
	maxMinutesYouth        = 30 // age 9 and under
	maxMinutesIntermediate = 60 // ages 10-14
	maxMinutesAdvanced     = 90 // age 15 and up

	maxTrainingDaysYouth = 3
	maxTrainingDays      = 5
)

// ResolveSessionMinutes clamps the desired session length into the age band:
// minimum 15 minutes always, maximum 30 for ages 9 and under, 90 for 15 and
// up, 60 otherwise.
func ResolveSessionMinutes(age, desiredMinutes int) int {
	max := maxMinutesIntermediate
	switch {
	case age <= 9:
		max = maxMinutesYouth
	case age >= 15:
		max = maxMinutesAdvanced
	}
	if desiredMinutes < minSessionMinutes {
		return minSessionMinutes
	}
	if desiredMinutes > max {
		return max
	}
	return desiredMinutes
}

// ResolveMaxTrainingDays clamps the desired sessions per week to at most 3
// for ages 9 and under and at most 5 otherwise.
func ResolveMaxTrainingDays(age, desiredPerWeek int) int {
	max := maxTrainingDays
	if age <= 9 {
		max = maxTrainingDaysYouth
	}
	if desiredPerWeek < 1 {
		return 1
	}
	if desiredPerWeek > max {
		return max
	}
	return desiredPerWeek
}
