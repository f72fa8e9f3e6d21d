package mcp

import (
	"context"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/aurelienperez/grease-the-groove/internal/progression"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// optInt reads an optional integer argument, nil when absent.
func optInt(args map[string]any, key string) *int {
	if v, ok := args[key].(float64); ok {
		i := int(v)
		return &i
	}
	return nil
}

// optFloat reads an optional float argument, nil when absent.
func optFloat(args map[string]any, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		return &v
	}
	return nil
}

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all configured exercises with their kind, progression mode, and settings."),
)

var toolGetLogs = mcp.NewTool("get_logs",
	mcp.WithDescription("Retrieve logged sets for one exercise, newest first."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to the full history.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Log one performed (or skipped) set for an exercise. Populate exactly the metrics the exercise's kind uses: reps for rep-based, reps+load_kg for weighted, duration_sec for isometric holds."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	mcp.WithString("status", mcp.Description("'complete' or 'skipped'. Defaults to 'complete'."), mcp.Enum("complete", "skipped")),
	mcp.WithNumber("reps", mcp.Description("Repetitions performed")),
	mcp.WithNumber("load_kg", mcp.Description("Added load in kilograms")),
	mcp.WithNumber("duration_sec", mcp.Description("Hold duration in seconds")),
	mcp.WithNumber("rir", mcp.Description("Reps in reserve, 0-10. Lower = harder.")),
	mcp.WithNumber("pain", mcp.Description("Pain during the set, 0-10")),
	mcp.WithString("timestamp", mcp.Description("When the set happened (ISO 8601). Defaults to now.")),
)

var toolGetNextTarget = mcp.NewTool("get_next_target",
	mcp.WithDescription("Compute the recommended next set for an exercise from its history, effort, and pain signals."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	mcp.WithString("at", mcp.Description("Evaluate as of this time (ISO 8601). Defaults to now.")),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Per-exercise analytics: PRs, estimated 1RM, average RIR and pain, weekly volumes."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	mcp.WithNumber("window", mcp.Description("Window in days for PRs and averages. Defaults to 90.")),
)

var toolGetTrainingWeek = mcp.NewTool("get_training_week",
	mcp.WithDescription("Rolling-week rollup across all exercises: volume this week vs last, pain flags, total sets."),
	mcp.WithString("at", mcp.Description("Evaluate as of this time (ISO 8601). Defaults to now.")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	var logs []models.LogEntry
	if req.GetString("start", "") != "" || req.GetString("end", "") != "" {
		start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		logs, err = h.ds.QueryLogs(ctx, exerciseID, start, end)
		if err != nil {
			h.log.Error("mcp get_logs", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
	} else {
		logs, err = h.ds.ListLogs(ctx, exerciseID)
		if err != nil {
			h.log.Error("mcp get_logs", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
	}

	result, err := mcp.NewToolResultJSON(logs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	ex, err := h.ds.GetExercise(ctx, exerciseID)
	if err != nil {
		return mcp.NewToolResultError("unknown exercise: " + exerciseID), nil
	}
	progression.Normalize(ex)

	args := req.GetArguments()
	l := models.LogEntry{
		ID:          uuid.NewString(),
		ExerciseID:  exerciseID,
		Timestamp:   time.Now().UTC(),
		Status:      models.LogStatus(req.GetString("status", string(models.StatusComplete))),
		Reps:        optInt(args, "reps"),
		LoadKg:      optFloat(args, "load_kg"),
		DurationSec: optInt(args, "duration_sec"),
		RIR:         optInt(args, "rir"),
		Pain0to10:   optInt(args, "pain"),
	}
	if ts := req.GetString("timestamp", ""); ts != "" {
		parsed, err := parseFlexTime(ts)
		if err != nil {
			return mcp.NewToolResultError("invalid timestamp: " + err.Error()), nil
		}
		l.Timestamp = parsed
	}

	if problems := progression.ValidateLog(ex, &l); len(problems) > 0 {
		result, err := mcp.NewToolResultJSON(map[string]any{"errors": problems})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil
	}

	if err := h.ds.InsertLog(ctx, l); err != nil {
		h.log.Error("mcp log_set", "error", err)
		return mcp.NewToolResultError("insert failed: " + err.Error()), nil
	}

	if ex.Mode == models.ModeGTG && l.Complete() {
		profile, err := h.resolvedProfile(ctx, ex)
		if err != nil {
			return mcp.NewToolResultError("loading profile: " + err.Error()), nil
		}
		now := time.Now().UTC()
		err = h.ds.UpdateGTGState(ctx, ex.ID, func(state models.GTGState) models.GTGState {
			return progression.AdvanceGTG(state, l, profile, now)
		})
		if err != nil {
			h.log.Error("mcp log_set gtg", "exercise", ex.ID, "error", err)
			return mcp.NewToolResultError("advancing state: " + err.Error()), nil
		}
	}

	result, err := mcp.NewToolResultJSON(l)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getNextTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	at := time.Now().UTC()
	if atStr := req.GetString("at", ""); atStr != "" {
		at, err = parseFlexTime(atStr)
		if err != nil {
			return mcp.NewToolResultError("invalid at: " + err.Error()), nil
		}
	}

	ex, err := h.ds.GetExercise(ctx, exerciseID)
	if err != nil {
		return mcp.NewToolResultError("unknown exercise: " + exerciseID), nil
	}
	progression.Normalize(ex)

	logs, err := h.ds.ListLogs(ctx, exerciseID)
	if err != nil {
		h.log.Error("mcp get_next_target", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	profile, err := h.resolvedProfile(ctx, ex)
	if err != nil {
		return mcp.NewToolResultError("loading profile: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(progression.ComputeNextTarget(ex, logs, at, profile))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	window := 90
	if w := optInt(req.GetArguments(), "window"); w != nil && *w > 0 {
		window = *w
	}

	ex, err := h.ds.GetExercise(ctx, exerciseID)
	if err != nil {
		return mcp.NewToolResultError("unknown exercise: " + exerciseID), nil
	}
	progression.Normalize(ex)

	logs, err := h.ds.ListLogs(ctx, exerciseID)
	if err != nil {
		h.log.Error("mcp get_exercise_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(progression.ComputeStats(ex, logs, time.Now().UTC(), window))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	at := time.Now().UTC()
	if atStr := req.GetString("at", ""); atStr != "" {
		parsed, err := parseFlexTime(atStr)
		if err != nil {
			return mcp.NewToolResultError("invalid at: " + err.Error()), nil
		}
		at = parsed
	}

	week, err := h.buildTrainingWeek(ctx, at)
	if err != nil {
		h.log.Error("mcp get_training_week", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(week)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) resolvedProfile(ctx context.Context, ex *models.Exercise) (models.ProgressionProfile, error) {
	global, err := h.ds.GlobalProfile(ctx)
	if err != nil {
		return models.ProgressionProfile{}, err
	}
	return ex.Resolve(global), nil
}
