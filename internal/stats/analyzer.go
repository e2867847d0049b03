package stats

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/library"
	"github.com/2beens/vibefit/internal/profile"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=stats_mocks_test.go -package=stats_test

type workoutsSource interface {
	ListAll(ctx context.Context) ([]fitness.Workout, error)
}

type profileSource interface {
	Get(ctx context.Context) (profile.Profile, error)
}

type librarySource interface {
	List(ctx context.Context) ([]library.CustomExercise, error)
}

const DefaultHeatmapDays = 7

type Trend struct {
	Exercise  string               `json:"exercise"`
	Exercises []string             `json:"exercises"`
	Points    []fitness.TrendPoint `json:"points"`
}

type Dashboard struct {
	UserName string                   `json:"userName"`
	Records  []fitness.PersonalRecord `json:"records"`
	Streak   int                      `json:"streak"`
	Quick    fitness.QuickStats       `json:"quick"`
	Weekly   fitness.WeeklyOverview   `json:"weekly"`
	Calories fitness.CalorieBurn      `json:"calories"`
	Progress fitness.WeeklyProgress   `json:"progress"`
	Trend    Trend                    `json:"trend"`
	Today    fitness.TodaySummary     `json:"today"`
	Heatmap  []fitness.MuscleLoad     `json:"heatmap"`
}

type history struct {
	workouts []fitness.Workout
	profile  profile.Profile
	custom   []library.CustomExercise
}

type Analyzer struct {
	workouts workoutsSource
	profiles profileSource
	library  librarySource
	loc      *time.Location
	now      func() time.Time
}

func NewAnalyzer(
	workouts workoutsSource,
	profiles profileSource,
	library librarySource,
	loc *time.Location,
) *Analyzer {
	if loc == nil {
		loc = time.UTC
	}
	return &Analyzer{
		workouts: workouts,
		profiles: profiles,
		library:  library,
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the analyzer clock.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

func (a *Analyzer) load(ctx context.Context) (_ *history, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.analyzer.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	h := &history{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		workouts, err := a.workouts.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("workouts: %w", err)
		}
		h.workouts = workouts
		return nil
	})
	g.Go(func() error {
		p, err := a.profiles.Get(gCtx)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		h.profile = p
		return nil
	})
	g.Go(func() error {
		custom, err := a.library.List(gCtx)
		if err != nil {
			return fmt.Errorf("custom exercises: %w", err)
		}
		h.custom = custom
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return h, nil
}

func (a *Analyzer) Workouts(ctx context.Context) ([]fitness.Workout, error) {
	return a.workouts.ListAll(ctx)
}

// Records returns personal records, most recent first. limit <= 0 returns all.
func (a *Analyzer) Records(ctx context.Context, limit int) ([]fitness.PersonalRecord, error) {
	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	records := fitness.PersonalRecords(workouts)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (a *Analyzer) Streak(ctx context.Context) (int, error) {
	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return fitness.Streak(workouts, a.now(), a.loc), nil
}

func (a *Analyzer) Quick(ctx context.Context) (fitness.QuickStats, error) {
	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return fitness.QuickStats{}, err
	}
	return fitness.Stats(workouts), nil
}

func (a *Analyzer) Weekly(ctx context.Context) (fitness.WeeklyOverview, error) {
	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return fitness.WeeklyOverview{}, err
	}
	return fitness.Weekly(workouts, a.now(), a.loc), nil
}

func (a *Analyzer) Calories(ctx context.Context) (fitness.CalorieBurn, error) {
	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return fitness.CalorieBurn{}, err
	}
	return fitness.Calories(workouts, a.now(), a.loc), nil
}

func (a *Analyzer) Progress(ctx context.Context) (fitness.WeeklyProgress, error) {
	h, err := a.load(ctx)
	if err != nil {
		return fitness.WeeklyProgress{}, err
	}
	return fitness.Progress(h.workouts, h.profile.Goals.WeeklyWorkoutTarget, a.now(), a.loc), nil
}

// Trend returns the weight trend of exercise. An empty exercise picks the
// first one with any weight logged.
func (a *Analyzer) Trend(ctx context.Context, exercise string) (Trend, error) {
	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return Trend{}, err
	}
	return trend(workouts, exercise), nil
}

func (a *Analyzer) Today(ctx context.Context) (fitness.TodaySummary, error) {
	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return fitness.TodaySummary{}, err
	}
	return fitness.Today(workouts, a.now(), a.loc), nil
}

func (a *Analyzer) Heatmap(ctx context.Context, days int) ([]fitness.MuscleLoad, error) {
	h, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return fitness.Heatmap(h.workouts, library.MuscleGroupIndex(h.custom), days, a.now(), a.loc), nil
}

func (a *Analyzer) Dashboard(ctx context.Context, recordsLimit int) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.analyzer.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	h, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	now := a.now()
	records := fitness.PersonalRecords(h.workouts)
	if recordsLimit > 0 && len(records) > recordsLimit {
		records = records[:recordsLimit]
	}

	return &Dashboard{
		UserName: h.profile.Name,
		Records:  records,
		Streak:   fitness.Streak(h.workouts, now, a.loc),
		Quick:    fitness.Stats(h.workouts),
		Weekly:   fitness.Weekly(h.workouts, now, a.loc),
		Calories: fitness.Calories(h.workouts, now, a.loc),
		Progress: fitness.Progress(h.workouts, h.profile.Goals.WeeklyWorkoutTarget, now, a.loc),
		Trend:    trend(h.workouts, ""),
		Today:    fitness.Today(h.workouts, now, a.loc),
		Heatmap:  fitness.Heatmap(h.workouts, library.MuscleGroupIndex(h.custom), DefaultHeatmapDays, now, a.loc),
	}, nil
}

func trend(workouts []fitness.Workout, exercise string) Trend {
	t := Trend{
		Exercise:  exercise,
		Exercises: fitness.TrendExercises(workouts),
	}
	if t.Exercise == "" && len(t.Exercises) > 0 {
		t.Exercise = t.Exercises[0]
	}
	t.Points = fitness.Trend(workouts, t.Exercise)
	return t
}
