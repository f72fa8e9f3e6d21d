package backup

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

var csvHeader = []string{"timestamp", "exerciseId", "reps", "loadKg", "durationSec", "rir", "pain0to10", "status"}

// WriteLogsCSV writes log entries as CSV in the order given. Metrics the
// entry does not carry become empty fields.
func WriteLogsCSV(w io.Writer, logs []models.LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, l := range logs {
		if err := cw.Write(logRecord(l)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func logRecord(l models.LogEntry) []string {
	return []string{
		l.Timestamp.UTC().Format(time.RFC3339),
		l.ExerciseID,
		intField(l.Reps),
		floatField(l.LoadKg),
		intField(l.DurationSec),
		intField(l.RIR),
		intField(l.Pain0to10),
		string(l.Status),
	}
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
