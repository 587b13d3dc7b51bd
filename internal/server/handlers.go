package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/debemdeboas/palette-drafts/internal/config"
	"github.com/debemdeboas/palette-drafts/internal/model"
)

// draftsRequest is the body of every mutating endpoint. Drafts must be
// present and must be a JSON array.
type draftsRequest struct {
	Drafts []model.Draft `json:"drafts"`
}

func (s *Server) handleDrafts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getDrafts(w, r)
	case http.MethodPost, http.MethodPut:
		s.saveDrafts(w, r)
	case http.MethodDelete:
		s.clearDrafts(w, r)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func (s *Server) getDrafts(w http.ResponseWriter, r *http.Request) {
	env, err := s.file.Read()
	if err != nil {
		s.log.Error().Err(err).Msg("Error reading drafts")
		MetricRequestsTotal.WithLabelValues("get_drafts", "error").Inc()
		s.writeError(w, http.StatusInternalServerError, "failed to read drafts")
		return
	}

	MetricRequestsTotal.WithLabelValues("get_drafts", "ok").Inc()
	s.writeJSON(w, http.StatusOK, env)
}

// decodeDrafts parses and validates a mutating request body without touching
// the file. A missing or non-list drafts field is a caller error.
func (s *Server) decodeDrafts(w http.ResponseWriter, r *http.Request, endpoint string) ([]model.Draft, bool) {
	var req draftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Drafts == nil {
		MetricRequestsTotal.WithLabelValues(endpoint, "bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, "invalid draft data")
		return nil, false
	}

	// The list is capped by truncation on input order, not by id.
	if len(req.Drafts) > model.MaxDrafts {
		req.Drafts = req.Drafts[:model.MaxDrafts]
	}
	return req.Drafts, true
}

func (s *Server) saveDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, ok := s.decodeDrafts(w, r, "save_drafts")
	if !ok {
		return
	}

	env := model.DraftsEnvelope{
		Drafts:      drafts,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.file.Write(env); err != nil {
		s.log.Error().Err(err).Msg("Error saving drafts")
		MetricRequestsTotal.WithLabelValues("save_drafts", "error").Inc()
		s.writeError(w, http.StatusInternalServerError, "failed to save drafts")
		return
	}

	s.notifyChanged(len(drafts))
	MetricRequestsTotal.WithLabelValues("save_drafts", "ok").Inc()
	s.writeJSON(w, http.StatusOK, model.SaveResponse{
		Success: true,
		Message: fmt.Sprintf("saved %d drafts", len(drafts)),
		Count:   len(drafts),
	})
}

// handleRestore behaves exactly like saveDrafts apart from the envelope
// stamp; it exists as a distinct verb for client-intent clarity.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	drafts, ok := s.decodeDrafts(w, r, "restore_drafts")
	if !ok {
		return
	}

	env := model.DraftsEnvelope{
		Drafts:     drafts,
		RestoredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.file.Write(env); err != nil {
		s.log.Error().Err(err).Msg("Error restoring drafts")
		MetricRequestsTotal.WithLabelValues("restore_drafts", "error").Inc()
		s.writeError(w, http.StatusInternalServerError, "failed to restore drafts")
		return
	}

	s.notifyChanged(len(drafts))
	MetricRequestsTotal.WithLabelValues("restore_drafts", "ok").Inc()
	s.writeJSON(w, http.StatusOK, model.SaveResponse{
		Success: true,
		Message: fmt.Sprintf("restored %d drafts", len(drafts)),
		Count:   len(drafts),
	})
}

func (s *Server) clearDrafts(w http.ResponseWriter, r *http.Request) {
	env := model.DraftsEnvelope{
		Drafts:    []model.Draft{},
		ClearedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.file.Write(env); err != nil {
		s.log.Error().Err(err).Msg("Error clearing drafts")
		MetricRequestsTotal.WithLabelValues("clear_drafts", "error").Inc()
		s.writeError(w, http.StatusInternalServerError, "failed to clear drafts")
		return
	}

	s.notifyChanged(0)
	MetricRequestsTotal.WithLabelValues("clear_drafts", "ok").Inc()
	s.writeJSON(w, http.StatusOK, model.SaveResponse{
		Success: true,
		Message: "all drafts cleared",
	})
}

// handleBackup snapshots the current file into a uniquely named side file
// and streams it back as a download. The side file is removed shortly after;
// cleanup failure is non-fatal and not reported to the caller.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	data, err := s.file.Raw()
	if err != nil {
		s.log.Error().Err(err).Msg("Error reading drafts for backup")
		MetricRequestsTotal.WithLabelValues("backup_drafts", "error").Inc()
		s.writeError(w, http.StatusInternalServerError, "failed to back up drafts")
		return
	}

	name := fmt.Sprintf("drafts-backup-%s.json", uuid.New().String())
	path := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.log.Error().Err(err).Msg("Error writing backup file")
		MetricRequestsTotal.WithLabelValues("backup_drafts", "error").Inc()
		s.writeError(w, http.StatusInternalServerError, "failed to back up drafts")
		return
	}

	w.Header().Set(config.HCDisposition, fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	MetricRequestsTotal.WithLabelValues("backup_drafts", "ok").Inc()

	time.AfterFunc(time.Second, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("Error removing backup file")
		}
	})
}
