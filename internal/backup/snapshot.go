package backup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Stats reports what a snapshot run did.
type Stats struct {
	Skipped   bool
	Exercises int
	Logs      int
	Templates int
	JSONPath  string
	CSVPath   string
}

// Snapshotter pulls the server's full state and writes timestamped JSON
// and CSV snapshot files into a directory, skipping the write when the
// state has not changed since the last run.
type Snapshotter struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
}

// NewSnapshotter creates a new Snapshotter.
func NewSnapshotter(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Snapshotter {
	return &Snapshotter{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run fetches the current state and writes it out if it changed.
func (s *Snapshotter) Run() (*Stats, error) {
	b, err := s.client.FetchState()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Exercises: len(b.Exercises),
		Logs:      len(b.Logs),
		Templates: len(b.Templates),
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}

	hash := HashBytes(data)
	size := int64(len(data))
	current, err := s.state.IsCurrent("backup", size, hash)
	if err != nil {
		return nil, fmt.Errorf("checking snapshot state: %w", err)
	}
	if current {
		s.log.Info("state unchanged since last snapshot, skipping")
		stats.Skipped = true
		return stats, nil
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	stats.JSONPath = filepath.Join(s.dir, "backup-"+stamp+".json")
	stats.CSVPath = filepath.Join(s.dir, "logs-"+stamp+".csv")

	if s.dryRun {
		s.log.Info("dry run, would write snapshot",
			"json", stats.JSONPath,
			"csv", stats.CSVPath,
			"exercises", stats.Exercises,
			"logs", stats.Logs,
		)
		return stats, nil
	}

	if err := os.WriteFile(stats.JSONPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", stats.JSONPath, err)
	}

	csvFile, err := os.Create(stats.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", stats.CSVPath, err)
	}
	if err := WriteLogsCSV(csvFile, b.Logs); err != nil {
		csvFile.Close()
		return nil, fmt.Errorf("writing %s: %w", stats.CSVPath, err)
	}
	if err := csvFile.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", stats.CSVPath, err)
	}

	if err := s.state.MarkWritten("backup", size, hash); err != nil {
		return nil, fmt.Errorf("recording snapshot state: %w", err)
	}

	s.log.Info("snapshot written",
		"json", stats.JSONPath,
		"csv", stats.CSVPath,
		"exercises", stats.Exercises,
		"logs", stats.Logs,
		"templates", stats.Templates,
	)
	return stats, nil
}

// Restore reads a backup JSON file and uploads it to the server.
func (s *Snapshotter) Restore(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	// Reject files that are not backup documents before touching the server.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, ok := probe["exercises"]; !ok {
		return fmt.Errorf("%s does not look like a backup file (no exercises key)", path)
	}

	if s.dryRun {
		s.log.Info("dry run, would restore", "file", path, "bytes", len(data))
		return nil
	}
	return s.client.Restore(data)
}
