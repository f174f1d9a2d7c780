package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mikevelosports/velosched/internal/models"
)

// GetProgression loads a player's progression state. A player with no saved
// state gets a fresh zero state; absence is not an error.
func (db *DB) GetProgression(ctx context.Context, playerID uuid.UUID) (models.ProgressionState, error) {
	var (
		st          models.ProgressionState
		phase       string
		groundForce []byte
		sequencing  []byte
		exitVelo    []byte
	)
	err := db.Pool.QueryRow(ctx, `
		SELECT phase, phase_start, total_overspeed, phase_overspeed, total_long_toss,
		       ground_force, sequencing, exit_velo,
		       last_full_assessment, last_quick_assessment,
		       needs_ground_force, needs_sequencing, needs_exit_velo, needs_delivery
		FROM progression_states WHERE player_id = $1
	`, playerID).Scan(
		&phase, &st.PhaseStart, &st.TotalOverspeed, &st.PhaseOverspeed, &st.TotalLongToss,
		&groundForce, &sequencing, &exitVelo,
		&st.LastFullAssessment, &st.LastQuickAssessment,
		&st.NeedsGroundForce, &st.NeedsSequencing, &st.NeedsExitVelo, &st.NeedsDelivery,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ProgressionState{Phase: models.PhaseC1Ramp}, nil
	}
	if err != nil {
		return models.ProgressionState{}, fmt.Errorf("querying progression state: %w", err)
	}

	st.Phase = models.Phase(phase).Normalize()
	if st.GroundForce, err = decodeLevels(groundForce); err != nil {
		return models.ProgressionState{}, fmt.Errorf("decoding ground force levels: %w", err)
	}
	if st.Sequencing, err = decodeLevels(sequencing); err != nil {
		return models.ProgressionState{}, fmt.Errorf("decoding sequencing levels: %w", err)
	}
	if st.ExitVelo, err = decodeLevels(exitVelo); err != nil {
		return models.ProgressionState{}, fmt.Errorf("decoding exit velocity levels: %w", err)
	}
	return st, nil
}

// SaveProgression upserts a player's progression state.
func (db *DB) SaveProgression(ctx context.Context, playerID uuid.UUID, st models.ProgressionState) error {
	groundForce, err := encodeLevels(st.GroundForce)
	if err != nil {
		return fmt.Errorf("encoding ground force levels: %w", err)
	}
	sequencing, err := encodeLevels(st.Sequencing)
	if err != nil {
		return fmt.Errorf("encoding sequencing levels: %w", err)
	}
	exitVelo, err := encodeLevels(st.ExitVelo)
	if err != nil {
		return fmt.Errorf("encoding exit velocity levels: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO progression_states (
			player_id, phase, phase_start, total_overspeed, phase_overspeed, total_long_toss,
			ground_force, sequencing, exit_velo,
			last_full_assessment, last_quick_assessment,
			needs_ground_force, needs_sequencing, needs_exit_velo, needs_delivery, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,NOW())
		ON CONFLICT (player_id) DO UPDATE SET
			phase = EXCLUDED.phase,
			phase_start = EXCLUDED.phase_start,
			total_overspeed = EXCLUDED.total_overspeed,
			phase_overspeed = EXCLUDED.phase_overspeed,
			total_long_toss = EXCLUDED.total_long_toss,
			ground_force = EXCLUDED.ground_force,
			sequencing = EXCLUDED.sequencing,
			exit_velo = EXCLUDED.exit_velo,
			last_full_assessment = EXCLUDED.last_full_assessment,
			last_quick_assessment = EXCLUDED.last_quick_assessment,
			needs_ground_force = EXCLUDED.needs_ground_force,
			needs_sequencing = EXCLUDED.needs_sequencing,
			needs_exit_velo = EXCLUDED.needs_exit_velo,
			needs_delivery = EXCLUDED.needs_delivery,
			updated_at = NOW()
	`, playerID, st.Phase.Normalize().String(), st.PhaseStart,
		st.TotalOverspeed, st.PhaseOverspeed, st.TotalLongToss,
		groundForce, sequencing, exitVelo,
		st.LastFullAssessment, st.LastQuickAssessment,
		st.NeedsGroundForce, st.NeedsSequencing, st.NeedsExitVelo, st.NeedsDelivery)
	if err != nil {
		return fmt.Errorf("upserting progression state: %w", err)
	}
	return nil
}

// TransitionPhase applies a phase command to a player's stored state and
// returns the updated state.
func (db *DB) TransitionPhase(ctx context.Context, playerID uuid.UUID, command, date string) (models.ProgressionState, error) {
	st, err := db.GetProgression(ctx, playerID)
	if err != nil {
		return models.ProgressionState{}, err
	}
	if err := st.ApplyPhaseCommand(command, date); err != nil {
		return models.ProgressionState{}, err
	}
	if err := db.SaveProgression(ctx, playerID, st); err != nil {
		return models.ProgressionState{}, err
	}
	return st, nil
}

func encodeLevels(m map[int]int) ([]byte, error) {
	if m == nil {
		m = map[int]int{}
	}
	return json.Marshal(m)
}

func decodeLevels(data []byte) (map[int]int, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var m map[int]int
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
