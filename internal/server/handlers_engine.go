package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/aurelienperez/grease-the-groove/internal/progression"
	"github.com/aurelienperez/grease-the-groove/internal/storage"
	"github.com/go-chi/chi/v5"
)

const defaultStatsWindowDays = 90

func (s *Server) handleNextTarget(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid at parameter: " + err.Error()})
		return
	}

	ex, err := s.db.GetExercise(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	progression.Normalize(ex)

	logs, err := s.db.ListLogs(r.Context(), ex.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	profile, err := s.resolvedProfile(r, ex)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, progression.ComputeNextTarget(ex, logs, at, profile))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid at parameter: " + err.Error()})
		return
	}

	window := defaultStatsWindowDays
	if ws := r.URL.Query().Get("window"); ws != "" {
		parsed, err := strconv.Atoi(ws)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "window must be a positive integer"})
			return
		}
		window = parsed
	}

	ex, err := s.db.GetExercise(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	progression.Normalize(ex)

	logs, err := s.db.ListLogs(r.Context(), ex.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, progression.ComputeStats(ex, logs, at, window))
}

// ResolvedTarget pairs a template item's exercise with its produced
// target, fixed or engine-computed.
type ResolvedTarget struct {
	ExerciseID string                 `json:"exerciseId"`
	TargetMode models.TargetMode      `json:"targetMode"`
	Target     progression.NextTarget `json:"target"`
}

func (s *Server) handleTemplateTargets(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid at parameter: " + err.Error()})
		return
	}

	tpl, err := s.db.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	targets := make([]ResolvedTarget, 0, len(tpl.Items))
	for _, item := range tpl.Items {
		ex, err := s.db.GetExercise(r.Context(), item.ExerciseID)
		if errors.Is(err, storage.ErrNotFound) {
			// Exercise deleted after the template referenced it; skip.
			continue
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		progression.Normalize(ex)

		if item.TargetMode == models.TargetFixed && item.Fixed != nil {
			targets = append(targets, ResolvedTarget{
				ExerciseID: item.ExerciseID,
				TargetMode: item.TargetMode,
				Target:     fixedTarget(ex, item.Fixed),
			})
			continue
		}

		logs, err := s.db.ListLogs(r.Context(), ex.ID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		profile, err := s.resolvedProfile(r, ex)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		targets = append(targets, ResolvedTarget{
			ExerciseID: item.ExerciseID,
			TargetMode: models.TargetAuto,
			Target:     progression.ComputeNextTarget(ex, logs, at, profile),
		})
	}

	writeJSON(w, http.StatusOK, targets)
}

// fixedTarget wraps a pre-set target in the engine's output shape so
// templates resolve to one uniform type.
func fixedTarget(ex *models.Exercise, f *models.FixedTarget) progression.NextTarget {
	t := progression.NextTarget{
		Reps:        f.Reps,
		LoadKg:      f.LoadKg,
		DurationSec: f.DurationSec,
	}
	switch ex.Kind {
	case models.KindWeighted:
		t.MetricType = progression.MetricWeightedReps
	case models.KindIsometric:
		t.MetricType = progression.MetricDuration
	default:
		t.MetricType = progression.MetricReps
	}
	return t
}
