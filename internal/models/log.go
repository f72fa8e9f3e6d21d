package models

import "time"

// LogStatus marks whether a logged set was carried out as planned.
type LogStatus string

const (
	StatusComplete LogStatus = "complete"
	StatusSkipped  LogStatus = "skipped"
)

// LogEntry is one logged set. Entries are immutable once saved: they are
// only ever appended or deleted, never updated. Exactly the metric fields
// relevant to the exercise's kind are populated; the rest stay nil.
type LogEntry struct {
	ID         string    `json:"id"`
	ExerciseID string    `json:"exerciseId"`
	Timestamp  time.Time `json:"timestamp"`
	Status     LogStatus `json:"status"`

	Reps        *int     `json:"reps,omitempty"`
	LoadKg      *float64 `json:"loadKg,omitempty"`
	DurationSec *int     `json:"durationSec,omitempty"`

	// Subjective signals, both 0-10. Lower RIR = harder effort.
	RIR       *int `json:"rir,omitempty"`
	Pain0to10 *int `json:"pain0to10,omitempty"`
}

// Complete reports whether the entry has complete status.
func (l *LogEntry) Complete() bool {
	return l.Status == StatusComplete
}
