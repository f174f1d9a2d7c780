package models

// BlockKind tags one scheduled unit of training content.
type BlockKind string

const (
	BlockDynamicWarmup  BlockKind = "dynamic_warmup"
	BlockPreGameWarmup  BlockKind = "pregame_warmup"
	BlockOverspeed      BlockKind = "overspeed"
	BlockLongToss       BlockKind = "long_toss"
	BlockGroundForce    BlockKind = "ground_force"
	BlockSequencing     BlockKind = "sequencing"
	BlockDelivery       BlockKind = "delivery"
	BlockExitVelo       BlockKind = "exit_velo"
	BlockFullAssessment BlockKind = "velo_assessment"
	BlockQuickCheck     BlockKind = "quick_velo_check"
)

// ContentBlock is one scheduled unit of training with a fixed minute cost.
// Level is set only for leveled modalities and overspeed work.
type ContentBlock struct {
	Kind    BlockKind `json:"kind"`
	Minutes int       `json:"minutes"`
	Title   string    `json:"title"`
	Level   int       `json:"level,omitempty"`
}

// DayPlan is one calendar day of the schedule. Blocks are ordered by
// allocation order, which is meaningful for display.
type DayPlan struct {
	Date           string         `json:"date"`
	Weekday        string         `json:"weekday"`
	IsGameDay      bool           `json:"isGameDay"`
	IsTrainingDay  bool           `json:"isTrainingDay"`
	IsOverspeedDay bool           `json:"isOverspeedDay"`
	Blocks         []ContentBlock `json:"blocks"`
}

// WeekPlan holds exactly seven day plans.
type WeekPlan struct {
	Index     int       `json:"index"`
	StartDate string    `json:"startDate"`
	Days      []DayPlan `json:"days"`
}

// Schedule is the generator's output: a bounded-horizon calendar of
// prescribed training content. It is a pure value with no references back
// into the configuration or progression state.
type Schedule struct {
	StartDate    string     `json:"startDate"`
	HorizonWeeks int        `json:"horizonWeeks"`
	Weeks        []WeekPlan `json:"weeks"`
}
