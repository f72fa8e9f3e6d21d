package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/aurelienperez/grease-the-groove/internal/progression"
	"github.com/mark3labs/mcp-go/mcp"
)

// weekEntry is one exercise's slice of the training-week rollup.
type weekEntry struct {
	ExerciseID     string                  `json:"exerciseId"`
	Name           string                  `json:"name"`
	SetsThisWeek   int                     `json:"setsThisWeek"`
	VolumeThisWeek float64                 `json:"volumeThisWeek"`
	VolumePrevWeek float64                 `json:"volumePrevWeek"`
	PainSummary    progression.PainSummary `json:"painSummary"`
}

type trainingWeek struct {
	GeneratedAt       time.Time   `json:"generatedAt"`
	Exercises         []weekEntry `json:"exercises"`
	TotalSetsThisWeek int         `json:"totalSetsThisWeek"`
}

// buildTrainingWeek aggregates rolling-week volume and pain flags across
// every exercise. Pain flags cover the last 28 days, matching the
// 4-week normalization the summary assumes.
func (h *handlers) buildTrainingWeek(ctx context.Context, now time.Time) (*trainingWeek, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	week := &trainingWeek{GeneratedAt: now, Exercises: []weekEntry{}}
	weekAgo := now.Add(-7 * 24 * time.Hour)
	fourWeeksAgo := now.Add(-28 * 24 * time.Hour)

	for i := range exercises {
		ex := &exercises[i]
		progression.Normalize(ex)

		logs, err := h.ds.ListLogs(ctx, ex.ID)
		if err != nil {
			return nil, err
		}

		entry := weekEntry{ExerciseID: ex.ID, Name: ex.Name}
		entry.VolumeThisWeek, entry.VolumePrevWeek = progression.WeeklyVolumeFor(ex, logs, now)

		var recent []models.LogEntry
		for _, l := range logs {
			if !l.Timestamp.Before(fourWeeksAgo) && l.Timestamp.Before(now) {
				recent = append(recent, l)
			}
			if !l.Timestamp.Before(weekAgo) && l.Timestamp.Before(now) {
				entry.SetsThisWeek++
			}
		}
		entry.PainSummary = progression.SummarizePainFlags(recent)

		week.TotalSetsThisWeek += entry.SetsThisWeek
		week.Exercises = append(week.Exercises, entry)
	}

	return week, nil
}

func (h *handlers) exercisesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(exercises)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) weeklySummaryResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	week, err := h.buildTrainingWeek(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(week)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
