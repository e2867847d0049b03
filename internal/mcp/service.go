package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/goals"
	"github.com/2beens/vibefit/internal/library"
)

type WorkoutsReader interface {
	ListRange(ctx context.Context, from, to time.Time) ([]fitness.Workout, error)
	PersonalRecords(ctx context.Context) ([]fitness.PersonalRecord, error)
}

type StreakReader interface {
	Streak(ctx context.Context) (int, error)
}

type LibraryReader interface {
	Custom(ctx context.Context) ([]library.CustomExercise, error)
	Available(ctx context.Context) ([]string, error)
}

type GoalsReader interface {
	ListProgress(ctx context.Context) ([]goals.GoalProgress, error)
}

// contextService provides the data behind the MCP tools. Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	WorkoutsInRange(ctx context.Context, from, to time.Time) ([]fitness.Workout, error)
	PersonalRecords(ctx context.Context, exercise string) ([]fitness.PersonalRecord, error)
	Streak(ctx context.Context) (int, error)
	ExerciseLibrary(ctx context.Context) (*ExerciseLibrary, error)
	GoalsProgress(ctx context.Context) ([]goals.GoalProgress, error)
}

type ExerciseLibrary struct {
	Preloaded []library.PreloadedExercise `json:"preloaded"`
	Custom    []library.CustomExercise    `json:"custom"`
	Available []string                    `json:"available"`
}

type StreakResult struct {
	Streak int `json:"streak"`
}

type Deps struct {
	Schema   SchemaRepo
	Workouts WorkoutsReader
	Streak   StreakReader
	Library  LibraryReader
	Goals    GoalsReader
}

// ContextService holds dependencies and implements the vibefit context lookups.
type ContextService struct {
	deps Deps
}

func NewContextService(deps Deps) *ContextService {
	return &ContextService{deps: deps}
}

func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.deps.Schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# VibeFit DB Schema\n\nNo vibefit tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# VibeFit DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(vibefitTables, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) WorkoutsInRange(ctx context.Context, from, to time.Time) ([]fitness.Workout, error) {
	return s.deps.Workouts.ListRange(ctx, from, to)
}

// PersonalRecords returns the best lift per exercise; a non-empty exercise
// keeps only names containing it, ignoring case.
func (s *ContextService) PersonalRecords(ctx context.Context, exercise string) ([]fitness.PersonalRecord, error) {
	records, err := s.deps.Workouts.PersonalRecords(ctx)
	if err != nil {
		return nil, err
	}
	exercise = strings.ToLower(strings.TrimSpace(exercise))
	if exercise == "" {
		return records, nil
	}
	filtered := make([]fitness.PersonalRecord, 0, len(records))
	for _, pr := range records {
		if strings.Contains(strings.ToLower(pr.ExerciseName), exercise) {
			filtered = append(filtered, pr)
		}
	}
	return filtered, nil
}

func (s *ContextService) Streak(ctx context.Context) (int, error) {
	return s.deps.Streak.Streak(ctx)
}

func (s *ContextService) ExerciseLibrary(ctx context.Context) (*ExerciseLibrary, error) {
	custom, err := s.deps.Library.Custom(ctx)
	if err != nil {
		return nil, fmt.Errorf("custom exercises: %w", err)
	}
	available, err := s.deps.Library.Available(ctx)
	if err != nil {
		return nil, fmt.Errorf("available exercises: %w", err)
	}
	return &ExerciseLibrary{
		Preloaded: library.Preloaded,
		Custom:    custom,
		Available: available,
	}, nil
}

func (s *ContextService) GoalsProgress(ctx context.Context) ([]goals.GoalProgress, error) {
	return s.deps.Goals.ListProgress(ctx)
}
