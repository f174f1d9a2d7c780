package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
	"github.com/mikevelosports/velosched/internal/schedule"
	"github.com/mikevelosports/velosched/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. LocalSource (direct
// database access) and HTTPClient (remote via REST API) both satisfy this
// interface.
type DataSource interface {
	ListPlayers(ctx context.Context) ([]storage.Player, error)
	GetProgression(ctx context.Context, playerID uuid.UUID) (models.ProgressionState, error)
	LatestSchedule(ctx context.Context, playerID uuid.UUID) (*storage.StoredSchedule, error)
	GenerateSchedule(ctx context.Context, playerID uuid.UUID, cfg models.Config) (*models.Schedule, error)
	TransitionPhase(ctx context.Context, playerID uuid.UUID, command, date string) (models.ProgressionState, error)
}

// LocalSource serves MCP tools straight from the database, running the
// generator in process.
type LocalSource struct {
	DB *storage.DB
}

// Compile-time check: *LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

func (s *LocalSource) ListPlayers(ctx context.Context) ([]storage.Player, error) {
	return s.DB.ListPlayers(ctx)
}

func (s *LocalSource) GetProgression(ctx context.Context, playerID uuid.UUID) (models.ProgressionState, error) {
	return s.DB.GetProgression(ctx, playerID)
}

func (s *LocalSource) LatestSchedule(ctx context.Context, playerID uuid.UUID) (*storage.StoredSchedule, error) {
	return s.DB.LatestSchedule(ctx, playerID)
}

// GenerateSchedule runs the generator against the player's stored
// progression state and persists the result. The stored state itself is
// left untouched.
func (s *LocalSource) GenerateSchedule(ctx context.Context, playerID uuid.UUID, cfg models.Config) (*models.Schedule, error) {
	state, err := s.DB.GetProgression(ctx, playerID)
	if err != nil {
		return nil, err
	}

	sched, err := schedule.Generate(cfg, state)
	if err != nil {
		return nil, err
	}

	if _, err := s.DB.InsertSchedule(ctx, playerID, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *LocalSource) TransitionPhase(ctx context.Context, playerID uuid.UUID, command, date string) (models.ProgressionState, error) {
	return s.DB.TransitionPhase(ctx, playerID, command, date)
}
