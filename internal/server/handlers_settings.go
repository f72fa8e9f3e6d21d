package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aurelienperez/grease-the-groove/internal/backup"
	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/aurelienperez/grease-the-groove/internal/storage"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.db.GlobalProfile(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.ProgressionProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if problems := profile.Validate(); len(problems) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": problems})
		return
	}

	if err := s.db.PutSettings(r.Context(), models.Settings{Profile: profile}); err != nil {
		s.log.Error("update profile", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	state, err := s.db.ExportState(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var b models.Backup
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.ImportState(r.Context(), &b); err != nil {
		s.log.Error("import state", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.log.Info("state imported",
		"exercises", len(b.Exercises),
		"logs", len(b.Logs),
		"templates", len(b.Templates),
	)
	writeJSON(w, http.StatusOK, map[string]int{
		"exercises": len(b.Exercises),
		"logs":      len(b.Logs),
		"templates": len(b.Templates),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	logs, err := s.db.ListAllLogs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.writeCSV(w, logs)
}

func (s *Server) handleExportExerciseCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.db.GetExercise(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	logs, err := s.db.ListLogs(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	// ListLogs is newest first; CSV reads better chronological.
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	s.writeCSV(w, logs)
}

func (s *Server) writeCSV(w http.ResponseWriter, logs []models.LogEntry) {
	w.Header().Set("Content-Type", "text/csv")
	if err := backup.WriteLogsCSV(w, logs); err != nil {
		s.log.Error("write csv", "error", err)
	}
}
