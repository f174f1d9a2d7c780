package mcp

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mikevelosports/velosched/internal/models"
)

// --- Tool definitions ---

var toolListPlayers = mcp.NewTool("list_players",
	mcp.WithDescription("List all registered players with their IDs, names, and ages."),
)

var toolGetProgression = mcp.NewTool("get_progression",
	mcp.WithDescription("Get a player's progression state: current phase, overspeed session counts, modality levels (ground force, sequencing, exit velocity), long toss totals, and assessment history."),
	mcp.WithString("player", mcp.Required(), mcp.Description("Player UUID")),
)

var toolGetLatestSchedule = mcp.NewTool("get_latest_schedule",
	mcp.WithDescription("Get the most recently generated schedule for a player, including its full week-by-week day plans."),
	mcp.WithString("player", mcp.Required(), mcp.Description("Player UUID")),
)

var toolGenerateSchedule = mcp.NewTool("generate_schedule",
	mcp.WithDescription("Generate a periodized training schedule from the player's current progression state and persist it. Session length and weekly training days are clamped to age-appropriate limits."),
	mcp.WithString("player", mcp.Required(), mcp.Description("Player UUID")),
	mcp.WithString("start_date", mcp.Required(), mcp.Description("Schedule start date (YYYY-MM-DD)")),
	mcp.WithNumber("horizon_weeks", mcp.Required(), mcp.Description("Number of weeks to plan")),
	mcp.WithNumber("age", mcp.Description("Player age; drives session length and day limits")),
	mcp.WithString("training_days", mcp.Description("Comma-separated weekdays available for training (e.g. 'mon,wed,fri')")),
	mcp.WithString("game_days", mcp.Description("Comma-separated weekdays with games")),
	mcp.WithNumber("sessions_per_week", mcp.Description("Desired training sessions per week; defaults to the number of training days, clamped by age")),
	mcp.WithBoolean("in_season", mcp.Description("Whether the player is in a competitive season")),
	mcp.WithNumber("session_minutes", mcp.Description("Requested session length in minutes; clamped by age")),
	mcp.WithBoolean("live_ball_ok", mcp.Description("Whether live-ball hitting work (exit velocity) is permitted")),
)

var toolTransitionPhase = mcp.NewTool("transition_phase",
	mcp.WithDescription("Apply a phase command to a player's progression state. 'extend_maintenance' restarts the current maintenance phase; 'begin_next_ramp' moves to the next cycle's ramp phase."),
	mcp.WithString("player", mcp.Required(), mcp.Description("Player UUID")),
	mcp.WithString("command", mcp.Required(), mcp.Description("Phase command"), mcp.Enum("extend_maintenance", "begin_next_ramp")),
	mcp.WithString("date", mcp.Required(), mcp.Description("Effective date (YYYY-MM-DD)")),
)

// playerParam extracts and parses the required player UUID argument.
func playerParam(req mcp.CallToolRequest) (uuid.UUID, *mcp.CallToolResult) {
	idStr, err := req.RequireString("player")
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("player parameter is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("invalid player UUID: " + err.Error())
	}
	return id, nil
}

// splitDays turns a comma-separated weekday list into a slice, dropping
// empty entries.
func splitDays(s string) []string {
	if s == "" {
		return nil
	}
	var days []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return days
}

// --- Tool handlers ---

func (h *handlers) listPlayers(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	players, err := h.ds.ListPlayers(ctx)
	if err != nil {
		h.log.Error("mcp list_players", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(players)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playerID, errResult := playerParam(req)
	if errResult != nil {
		return errResult, nil
	}

	state, err := h.ds.GetProgression(ctx, playerID)
	if err != nil {
		h.log.Error("mcp get_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(state)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLatestSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playerID, errResult := playerParam(req)
	if errResult != nil {
		return errResult, nil
	}

	sched, err := h.ds.LatestSchedule(ctx, playerID)
	if err != nil {
		h.log.Error("mcp get_latest_schedule", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sched)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) generateSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playerID, errResult := playerParam(req)
	if errResult != nil {
		return errResult, nil
	}

	startDate, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError("start_date parameter is required"), nil
	}
	horizon, err := req.RequireInt("horizon_weeks")
	if err != nil {
		return mcp.NewToolResultError("horizon_weeks parameter is required"), nil
	}

	trainingDays := splitDays(req.GetString("training_days", ""))

	// An unset sessions count means "use every configured day"; the age
	// policy still clamps it.
	sessions := req.GetInt("sessions_per_week", 0)
	if sessions == 0 {
		sessions = len(trainingDays)
	}

	cfg := models.Config{
		Age:             req.GetInt("age", 0),
		InSeason:        req.GetBool("in_season", false),
		TrainingDays:    trainingDays,
		GameDays:        splitDays(req.GetString("game_days", "")),
		SessionsPerWeek: sessions,
		SessionMinutes:  req.GetInt("session_minutes", 0),
		StartDate:       startDate,
		HorizonWeeks:    horizon,
		LiveBallOK:      req.GetBool("live_ball_ok", false),
	}

	sched, err := h.ds.GenerateSchedule(ctx, playerID, cfg)
	if err != nil {
		h.log.Error("mcp generate_schedule", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sched)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) transitionPhase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playerID, errResult := playerParam(req)
	if errResult != nil {
		return errResult, nil
	}

	command, err := req.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError("command parameter is required"), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}

	state, err := h.ds.TransitionPhase(ctx, playerID, command, date)
	if err != nil {
		h.log.Error("mcp transition_phase", "error", err)
		return mcp.NewToolResultError("transition failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(state)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
