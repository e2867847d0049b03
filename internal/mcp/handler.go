package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const dateLayout = "2006-01-02"

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
	loc     *time.Location
}

func NewHandler(service contextService, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		service: service,
		loc:     loc,
	}
}

// NoInput is the input of tools that take no arguments.
type NoInput struct{}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// TimeRangeInput is the input for get_workouts_for_time_range.
type TimeRangeInput struct {
	FromDate string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate   string `json:"to_date" jsonschema:"End date (YYYY-MM-DD), inclusive"`
}

func (h *Handler) GetWorkoutsForTimeRangeTool() func(context.Context, *mcp.CallToolRequest, TimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TimeRangeInput) (*mcp.CallToolResult, any, error) {
		from, err := time.ParseInLocation(dateLayout, in.FromDate, h.loc)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := time.ParseInLocation(dateLayout, in.ToDate, h.loc)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}
		if to.Before(from) {
			return errorResult("to_date is before from_date"), nil, nil
		}
		to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, h.loc)

		list, err := h.service.WorkoutsInRange(ctx, from, to)
		if err != nil {
			return errorResult("Error listing workouts: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// RecordsInput is the input for get_personal_records.
type RecordsInput struct {
	Exercise string `json:"exercise,omitempty" jsonschema:"Only records of exercises whose name contains this text"`
}

func (h *Handler) GetPersonalRecordsTool() func(context.Context, *mcp.CallToolRequest, RecordsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecordsInput) (*mcp.CallToolResult, any, error) {
		records, err := h.service.PersonalRecords(ctx, in.Exercise)
		if err != nil {
			return errorResult("Error fetching personal records: " + err.Error()), nil, nil
		}
		return jsonResult(records), nil, nil
	}
}

func (h *Handler) GetStreakTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		streak, err := h.service.Streak(ctx)
		if err != nil {
			return errorResult("Error computing streak: " + err.Error()), nil, nil
		}
		return jsonResult(StreakResult{Streak: streak}), nil, nil
	}
}

func (h *Handler) GetExerciseLibraryTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		lib, err := h.service.ExerciseLibrary(ctx)
		if err != nil {
			return errorResult("Error fetching exercise library: " + err.Error()), nil, nil
		}
		return jsonResult(lib), nil, nil
	}
}

func (h *Handler) GetGoalsProgressTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		progress, err := h.service.GoalsProgress(ctx)
		if err != nil {
			return errorResult("Error fetching goals progress: " + err.Error()), nil, nil
		}
		return jsonResult(progress), nil, nil
	}
}
