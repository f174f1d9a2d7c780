package models

import (
	"fmt"
	"strings"
)

// PhaseType is the macro phase family within a training cycle.
type PhaseType string

const (
	PhaseRamp        PhaseType = "ramp"
	PhasePrimary     PhaseType = "primary"
	PhaseMaintenance PhaseType = "maintenance"
)

// Phase identifies one of the nine macro training phases, a (cycle, type)
// pair. Transitions between phases are commanded externally; the generator
// only reads the current one.
type Phase string

const (
	PhaseC1Ramp        Phase = "c1_ramp"
	PhaseC1Primary     Phase = "c1_primary"
	PhaseC1Maintenance Phase = "c1_maintenance"
	PhaseC2Ramp        Phase = "c2_ramp"
	PhaseC2Primary     Phase = "c2_primary"
	PhaseC2Maintenance Phase = "c2_maintenance"
	PhaseC3Ramp        Phase = "c3_ramp"
	PhaseC3Primary     Phase = "c3_primary"
	PhaseC3Maintenance Phase = "c3_maintenance"
)

// Normalize coerces unknown phase identifiers to the first ramp phase, the
// most conservative policy. Inputs are never rejected.
func (p Phase) Normalize() Phase {
	switch p {
	case PhaseC1Ramp, PhaseC1Primary, PhaseC1Maintenance,
		PhaseC2Ramp, PhaseC2Primary, PhaseC2Maintenance,
		PhaseC3Ramp, PhaseC3Primary, PhaseC3Maintenance:
		return p
	}
	return PhaseC1Ramp
}

// Cycle returns the training cycle number (1-3).
func (p Phase) Cycle() int {
	switch p.Normalize()[:2] {
	case "c2":
		return 2
	case "c3":
		return 3
	}
	return 1
}

// Type returns the phase family.
func (p Phase) Type() PhaseType {
	s := string(p.Normalize())
	switch {
	case strings.HasSuffix(s, string(PhasePrimary)):
		return PhasePrimary
	case strings.HasSuffix(s, string(PhaseMaintenance)):
		return PhaseMaintenance
	}
	return PhaseRamp
}

// WeeklyOverspeedCap is the maximum overspeed sessions this phase allows per
// week: 3 during ramp and primary phases, 1 during maintenance.
func (p Phase) WeeklyOverspeedCap() int {
	if p.Type() == PhaseMaintenance {
		return 1
	}
	return 3
}

// NextRamp returns the ramp phase of the following cycle, capped at cycle 3.
func (p Phase) NextRamp() Phase {
	return PhaseFor(p.Cycle()+1, PhaseRamp)
}

func (p Phase) String() string { return string(p.Normalize()) }

// PhaseFor builds a phase identifier from its parts.
func PhaseFor(cycle int, t PhaseType) Phase {
	if cycle < 1 {
		cycle = 1
	}
	if cycle > 3 {
		cycle = 3
	}
	switch t {
	case PhasePrimary, PhaseMaintenance:
		return Phase(fmt.Sprintf("c%d_%s", cycle, t))
	}
	return Phase(fmt.Sprintf("c%d_%s", cycle, PhaseRamp))
}
