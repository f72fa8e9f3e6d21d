package backup

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

func testBackupServer(t *testing.T, state *models.Backup, imported *[]byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/export", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	})
	mux.HandleFunc("POST /api/v1/import", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var b models.Backup
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := json.Marshal(b)
		*imported = data
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logs":0}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testState() *models.Backup {
	return &models.Backup{
		Exercises: []models.Exercise{{ID: "ex-1", Name: "Pull-up", Kind: models.KindReps}},
		Logs: []models.LogEntry{{
			ID:         "l-1",
			ExerciseID: "ex-1",
			Timestamp:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			Status:     models.StatusComplete,
			Reps:       intPtr(10),
		}},
		Templates: []models.Template{},
		Settings:  models.Settings{Profile: models.DefaultProfile()},
	}
}

// TestSnapshotterRun verifies a snapshot writes JSON and CSV files and
// that a second run against unchanged state is skipped.
func TestSnapshotterRun(t *testing.T) {
	var imported []byte
	srv := testBackupServer(t, testState(), &imported)

	dir := t.TempDir()
	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	snap := NewSnapshotter(NewClient(srv.URL, "test-key"), state, dir, false, slog.Default())

	stats, err := snap.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Skipped {
		t.Fatal("first run skipped")
	}
	if stats.Exercises != 1 || stats.Logs != 1 {
		t.Errorf("stats = %+v, want 1 exercise and 1 log", stats)
	}

	data, err := os.ReadFile(stats.JSONPath)
	if err != nil {
		t.Fatalf("reading json snapshot: %v", err)
	}
	var b models.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("parsing json snapshot: %v", err)
	}
	if len(b.Exercises) != 1 || b.Exercises[0].Name != "Pull-up" {
		t.Errorf("snapshot exercises = %+v", b.Exercises)
	}
	if _, err := os.Stat(stats.CSVPath); err != nil {
		t.Errorf("csv snapshot missing: %v", err)
	}

	again, err := snap.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !again.Skipped {
		t.Error("second run against unchanged state not skipped")
	}
}

// TestSnapshotterDryRun verifies dry run fetches but writes nothing.
func TestSnapshotterDryRun(t *testing.T) {
	var imported []byte
	srv := testBackupServer(t, testState(), &imported)

	dir := t.TempDir()
	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	snap := NewSnapshotter(NewClient(srv.URL, "test-key"), state, dir, true, slog.Default())
	stats, err := snap.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(stats.JSONPath); err == nil {
		t.Error("dry run wrote a json snapshot")
	}
}

// TestSnapshotterRestore verifies restore uploads the file contents and
// rejects files that are not backup documents.
func TestSnapshotterRestore(t *testing.T) {
	var imported []byte
	srv := testBackupServer(t, testState(), &imported)

	dir := t.TempDir()
	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()
	snap := NewSnapshotter(NewClient(srv.URL, "test-key"), state, dir, false, slog.Default())

	data, _ := json.Marshal(testState())
	path := filepath.Join(dir, "backup.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing backup file: %v", err)
	}
	if err := snap.Restore(path); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(imported) == 0 {
		t.Fatal("server received no import")
	}

	bad := filepath.Join(dir, "notes.json")
	if err := os.WriteFile(bad, []byte(`{"hello":"world"}`), 0o644); err != nil {
		t.Fatalf("writing bad file: %v", err)
	}
	if err := snap.Restore(bad); err == nil {
		t.Error("Restore accepted a non-backup file")
	}
}
