package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/palette-drafts/internal/config"
	"github.com/debemdeboas/palette-drafts/internal/model"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	file := NewDraftFile(filepath.Join(dir, "drafts.json"))
	return New(file, dir, zerolog.Nop()), filepath.Join(dir, "drafts.json")
}

func testDrafts(n int) []model.Draft {
	drafts := make([]model.Draft, n)
	for i := range drafts {
		drafts[i] = model.Draft{
			ID:        i + 1,
			Name:      fmt.Sprintf("Palette %d", i+1),
			Colors:    model.DefaultColors(),
			Timestamp: int64(1700000000000 + i),
		}
	}
	return drafts
}

func postDrafts(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	if path == config.APIRestorePath {
		srv.handleRestore(rec, req)
	} else {
		srv.handleDrafts(rec, req)
	}
	return rec
}

func TestGetDraftsInitializesFile(t *testing.T) {
	srv, path := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, config.APIDraftsPath, nil)
	rec := httptest.NewRecorder()
	srv.handleDrafts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var env model.DraftsEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if len(env.Drafts) != 0 {
		t.Errorf("Expected empty draft list, got %d", len(env.Drafts))
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Drafts file not created on first GET: %v", err)
	}
}

func TestSaveDrafts(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postDrafts(t, srv, config.APIDraftsPath, map[string]any{"drafts": testDrafts(3)})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp model.SaveResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Count != 3 {
		t.Errorf("Unexpected response: %+v", resp)
	}

	env, err := srv.file.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(env.Drafts) != 3 || env.LastUpdated == "" {
		t.Errorf("Unexpected stored envelope: %+v", env)
	}
}

func TestSaveDraftsTruncatesToMax(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postDrafts(t, srv, config.APIDraftsPath, map[string]any{"drafts": testDrafts(9)})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp model.SaveResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Count != model.MaxDrafts {
		t.Errorf("Count = %d, want %d", resp.Count, model.MaxDrafts)
	}

	env, _ := srv.file.Read()
	if len(env.Drafts) != model.MaxDrafts {
		t.Fatalf("Stored %d drafts, want %d", len(env.Drafts), model.MaxDrafts)
	}
	// Truncation keeps input order, not ids.
	for i, d := range env.Drafts {
		if d.ID != i+1 {
			t.Errorf("Position %d holds id %d after truncation", i, d.ID)
		}
	}
}

func TestSaveDraftsRejectsInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	// Seed known content first.
	postDrafts(t, srv, config.APIDraftsPath, map[string]any{"drafts": testDrafts(2)})
	before, err := srv.file.Raw()
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		body any
	}{
		{name: "drafts is a string", body: map[string]any{"drafts": "not-a-list"}},
		{name: "drafts missing", body: map[string]any{}},
		{name: "drafts null", body: map[string]any{"drafts": nil}},
		{name: "drafts is an object", body: map[string]any{"drafts": map[string]int{"id": 1}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postDrafts(t, srv, config.APIDraftsPath, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}

			var apiErr model.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
				t.Errorf("Expected an error payload, got %s", rec.Body.String())
			}

			after, err := srv.file.Raw()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(before, after) {
				t.Error("Invalid request modified the drafts file")
			}
		})
	}
}

func TestRestoreDrafts(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postDrafts(t, srv, config.APIRestorePath, map[string]any{"drafts": testDrafts(2)})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	env, _ := srv.file.Read()
	if env.RestoredAt == "" || env.LastUpdated != "" {
		t.Errorf("Restore stamped wrong field: %+v", env)
	}

	t.Run("rejects invalid body", func(t *testing.T) {
		rec := postDrafts(t, srv, config.APIRestorePath, map[string]any{"drafts": 12})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, config.APIRestorePath, nil)
		rec := httptest.NewRecorder()
		srv.handleRestore(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", rec.Code)
		}
	})
}

func TestClearDrafts(t *testing.T) {
	srv, _ := newTestServer(t)

	postDrafts(t, srv, config.APIDraftsPath, map[string]any{"drafts": testDrafts(4)})

	req := httptest.NewRequest(http.MethodDelete, config.APIDraftsPath, nil)
	rec := httptest.NewRecorder()
	srv.handleDrafts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	env, _ := srv.file.Read()
	if len(env.Drafts) != 0 || env.ClearedAt == "" {
		t.Errorf("Unexpected envelope after clear: %+v", env)
	}
}

func TestBackupDownload(t *testing.T) {
	srv, _ := newTestServer(t)

	postDrafts(t, srv, config.APIDraftsPath, map[string]any{"drafts": testDrafts(2)})

	req := httptest.NewRequest(http.MethodGet, config.APIBackupPath, nil)
	rec := httptest.NewRecorder()
	srv.handleBackup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	disposition := rec.Header().Get(config.HCDisposition)
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "drafts-backup-") {
		t.Errorf("Unexpected disposition: %q", disposition)
	}

	var env model.DraftsEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if len(env.Drafts) != 2 {
		t.Errorf("Backup contains %d drafts, want 2", len(env.Drafts))
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, config.APIHealthPath, nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var health model.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Service != config.ServiceName {
		t.Errorf("Unexpected health payload: %+v", health)
	}
}

func TestDraftsMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPatch, config.APIDraftsPath, nil)
	rec := httptest.NewRecorder()
	srv.handleDrafts(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}
