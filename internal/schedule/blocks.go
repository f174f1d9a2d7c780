package schedule

import (
	"fmt"

	"github.com/mikevelosports/velosched/internal/models"
)

// Canonical minute costs per block kind. These are fixed program constants,
// not computed values.
const (
	minutesDynamicWarmup  = 10
	minutesPreGameWarmup  = 10
	minutesOverspeed      = 15
	minutesLongToss       = 15
	minutesGroundForce    = 10
	minutesSequencing     = 10
	minutesDelivery       = 15
	minutesExitVelo       = 10
	minutesFullAssessment = 15
	minutesQuickCheck     = 5
)

func dynamicWarmupBlock() models.ContentBlock {
	return models.ContentBlock{Kind: models.BlockDynamicWarmup, Minutes: minutesDynamicWarmup, Title: "Dynamic Warm-Up"}
}

func preGameWarmupBlock() models.ContentBlock {
	return models.ContentBlock{Kind: models.BlockPreGameWarmup, Minutes: minutesPreGameWarmup, Title: "Pre-Game Warm-Up"}
}

func overspeedBlock(level int) models.ContentBlock {
	return models.ContentBlock{
		Kind:    models.BlockOverspeed,
		Minutes: minutesOverspeed,
		Title:   fmt.Sprintf("Overspeed Throwing (Level %d)", level),
		Level:   level,
	}
}

func longTossBlock() models.ContentBlock {
	return models.ContentBlock{Kind: models.BlockLongToss, Minutes: minutesLongToss, Title: "Extended Long Toss"}
}

func groundForceBlock(level int) models.ContentBlock {
	return models.ContentBlock{
		Kind:    models.BlockGroundForce,
		Minutes: minutesGroundForce,
		Title:   fmt.Sprintf("Ground Force Work (Level %d)", level),
		Level:   level,
	}
}

func sequencingBlock(level int) models.ContentBlock {
	return models.ContentBlock{
		Kind:    models.BlockSequencing,
		Minutes: minutesSequencing,
		Title:   fmt.Sprintf("Kinetic Sequencing (Level %d)", level),
		Level:   level,
	}
}

func deliveryBlock() models.ContentBlock {
	return models.ContentBlock{Kind: models.BlockDelivery, Minutes: minutesDelivery, Title: "Delivery Work"}
}

func exitVeloBlock(level int) models.ContentBlock {
	return models.ContentBlock{
		Kind:    models.BlockExitVelo,
		Minutes: minutesExitVelo,
		Title:   fmt.Sprintf("Exit Velocity (Level %d)", level),
		Level:   level,
	}
}

func fullAssessmentBlock() models.ContentBlock {
	return models.ContentBlock{Kind: models.BlockFullAssessment, Minutes: minutesFullAssessment, Title: "Velocity Assessment"}
}

func quickCheckBlock() models.ContentBlock {
	return models.ContentBlock{Kind: models.BlockQuickCheck, Minutes: minutesQuickCheck, Title: "Quick Velocity Check"}
}
