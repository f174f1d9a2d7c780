package models

import "fmt"

// Phase transition commands issued by the API layer. Transitions are always
// externally commanded; the generator itself never changes phase.
const (
	PhaseCommandExtendMaintenance = "extend_maintenance"
	PhaseCommandBeginNextRamp     = "begin_next_ramp"
)

// ApplyPhaseCommand applies a transition command to the state in place. The
// command date becomes the new phase start and the phase-scoped overspeed
// count resets.
func (s *ProgressionState) ApplyPhaseCommand(command, date string) error {
	if _, ok := ParseDate(date); !ok {
		return fmt.Errorf("invalid command date %q", date)
	}

	switch command {
	case PhaseCommandExtendMaintenance:
		if s.Phase.Type() != PhaseMaintenance {
			return fmt.Errorf("cannot extend maintenance: current phase is %s", s.Phase)
		}
	case PhaseCommandBeginNextRamp:
		s.Phase = s.Phase.NextRamp()
	default:
		return fmt.Errorf("unknown phase command %q", command)
	}

	s.PhaseStart = date
	s.PhaseOverspeed = 0
	return nil
}
