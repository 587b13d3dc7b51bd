// Package server implements the remote draft service: a file-backed store of
// up to six palette drafts behind a small JSON API.
//
// Known limitation: the service assumes a single client. Writes are
// last-writer-wins with no merge or versioning; a process-local mutex keeps
// individual file writes intact but nothing coordinates concurrent clients.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/palette-drafts/internal/config"
	"github.com/debemdeboas/palette-drafts/internal/model"
	"github.com/debemdeboas/palette-drafts/internal/sse"
)

// Archiver receives a snapshot of the drafts file after successful writes.
type Archiver interface {
	Archive(data []byte) error
}

type Server struct {
	file    *DraftFile
	clients *sse.Clients

	backupDir string
	archiver  Archiver // optional

	log zerolog.Logger
}

func New(file *DraftFile, backupDir string, log zerolog.Logger) *Server {
	return &Server{
		file:      file,
		clients:   sse.NewClients(),
		backupDir: backupDir,
		log:       log,
	}
}

// SetArchiver installs an optional post-write archiver.
func (s *Server) SetArchiver(a Archiver) {
	s.archiver = a
}

// RegisterRoutes attaches all API routes to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux, cfg *config.Config) {
	mux.HandleFunc(config.APIDraftsPath, s.handleDrafts)
	mux.HandleFunc(config.APIRestorePath, s.handleRestore)
	mux.HandleFunc(config.APIBackupPath, s.handleBackup)
	mux.HandleFunc(config.APIHealthPath, s.handleHealth)

	if cfg.Features.Events.Enabled {
		mux.HandleFunc(config.EventsPath, s.handleEvents)
	}
	if cfg.Features.Metrics.Enabled {
		mux.Handle(config.MetricsPath, promhttp.Handler())
	}
}

// SecureHeaders is the outer middleware applied by main.
func SecureHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		h.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Error encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// notifyChanged fans out a change event and snapshots the file to the
// archiver, both best-effort.
func (s *Server) notifyChanged(count int) {
	MetricStoredDrafts.Set(float64(count))
	go s.clients.Broadcast(sse.TopicDrafts, "drafts-updated")

	if s.archiver != nil {
		go func() {
			data, err := s.file.Raw()
			if err != nil {
				s.log.Error().Err(err).Msg("Error reading drafts file for archive")
				return
			}
			if err := s.archiver.Archive(data); err != nil {
				s.log.Error().Err(err).Msg("Error archiving drafts file")
			}
		}()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:    "ok",
		Service:   config.ServiceName,
		Version:   config.ServiceVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := &sse.Client{
		Msg:   make(chan string),
		Topic: sse.TopicDrafts,
	}
	s.clients.Add(client)
	MetricEventClients.Inc()
	s.log.Info().Msg("New event stream client connected")

	defer func() {
		s.clients.Delete(client)
		MetricEventClients.Dec()
		s.log.Info().Msg("Event stream client disconnected")
	}()

	writeEvent(w, flusher, "connected")

	notify := r.Context().Done()
	for {
		select {
		case msg := <-client.Msg:
			writeEvent(w, flusher, msg)
		case <-notify:
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, msg string) {
	w.Write([]byte("data: " + msg + "\n\n"))
	flusher.Flush()
}
