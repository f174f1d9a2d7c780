package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
	"github.com/mikevelosports/velosched/internal/schedule"
)

type createPlayerRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}

	player, err := s.db.GetOrCreatePlayer(r.Context(), req.Name, req.Age)
	if err != nil {
		s.log.Error("create player", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.db.ListPlayers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	player, err := s.db.GetPlayer(r.Context(), playerID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "player not found"})
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleGetProgression(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	state, err := s.db.GetProgression(r.Context(), playerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePutProgression(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	var state models.ProgressionState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	state.Phase = state.Phase.Normalize()

	if err := s.db.SaveProgression(r.Context(), playerID, state); err != nil {
		s.log.Error("save progression", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type phaseCommandRequest struct {
	Command string `json:"command"`
	Date    string `json:"date"`
}

func (s *Server) handlePhaseCommand(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	var req phaseCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	state, err := s.db.TransitionPhase(r.Context(), playerID, req.Command, req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type generateRequest struct {
	Config models.Config `json:"config"`
}

type generateResponse struct {
	ScheduleID uuid.UUID        `json:"scheduleId"`
	Schedule   *models.Schedule `json:"schedule"`
}

// handleGenerateSchedule runs the generator against the player's stored
// progression state and persists the resulting schedule. The stored state
// is not advanced: it reflects completed work, and generation only
// projects forward.
func (s *Server) handleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	state, err := s.db.GetProgression(r.Context(), playerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	sched, err := schedule.Generate(req.Config, state)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	id, err := s.db.InsertSchedule(r.Context(), playerID, sched)
	if err != nil {
		s.log.Error("insert schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{ScheduleID: id, Schedule: sched})
}

type previewRequest struct {
	Config models.Config           `json:"config"`
	State  models.ProgressionState `json:"state"`
}

// handlePreviewSchedule generates a schedule from caller-supplied state
// without reading or writing storage.
func (s *Server) handlePreviewSchedule(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sched, err := schedule.Generate(req.Config, req.State)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	scheds, err := s.db.QuerySchedules(r.Context(), playerID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scheds)
}

func (s *Server) handleLatestSchedule(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	sched, err := s.db.LatestSchedule(r.Context(), playerID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no schedule found"})
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid schedule ID"})
		return
	}

	sched, err := s.db.GetSchedule(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule not found"})
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func playerIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid player ID"})
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
