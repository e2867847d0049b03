package coach

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/telemetry/metrics"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
)

const (
	SuggestedExercisesCount = 8
	SuggestedSets           = 4

	DefaultFitnessGoals = "Build muscle and increase strength"
	DefaultWorkoutSplit = "Full Body"

	NoWorkoutsTip = "Log a workout to get your first personalized tip!"
	FallbackTip   = "Couldn't get a tip right now. Keep up the great work!"

	motivationHistorySize = 3
	suggestionAttempts    = 3

	flowMotivation = "motivation"
	flowSuggestion = "suggestion"
)

var WorkoutSplits = []string{"Full Body", "Upper/Lower", "Push/Pull/Legs", "Bro Split"}

var ErrInvalidSuggestion = errors.New("invalid workout suggestion")

//go:generate mockgen -source=$GOFILE -destination=coach_mocks_test.go -package=coach_test

type generator interface {
	Generate(ctx context.Context, system, prompt string, schema *genai.Schema) (string, error)
}

type SuggestedExercise struct {
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
	Tip    string `json:"tip,omitempty"`
}

type Suggestion struct {
	SuggestionTitle    string              `json:"suggestionTitle"`
	WorkoutRationale   string              `json:"workoutRationale"`
	Duration           string              `json:"duration"`
	Intensity          string              `json:"intensity"`
	SuggestedExercises []SuggestedExercise `json:"suggestedExercises"`
}

func (s Suggestion) Validate() error {
	if len(s.SuggestedExercises) != SuggestedExercisesCount {
		return fmt.Errorf("%w: got %d exercises, want %d", ErrInvalidSuggestion, len(s.SuggestedExercises), SuggestedExercisesCount)
	}
	for i, e := range s.SuggestedExercises {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: exercise %d has no name", ErrInvalidSuggestion, i+1)
		}
		if e.Sets != SuggestedSets {
			return fmt.Errorf("%w: %s has %d sets, want %d", ErrInvalidSuggestion, e.Name, e.Sets, SuggestedSets)
		}
	}
	return nil
}

type SuggestionInput struct {
	Workouts           []fitness.Workout
	Records            []fitness.PersonalRecord
	AvailableExercises []string
	FitnessGoals       string
	WorkoutSplit       string
}

type Params struct {
	Cache          *freecache.Cache
	TipTTL         time.Duration
	MetricsManager *metrics.Manager
	// RetryInterval is the first wait between suggestion attempts.
	RetryInterval time.Duration
}

type Coach struct {
	gen            generator
	cache          *freecache.Cache
	tipTTL         time.Duration
	metricsManager *metrics.Manager
	retryInterval  time.Duration
}

func New(gen generator, params Params) *Coach {
	if params.RetryInterval <= 0 {
		params.RetryInterval = 500 * time.Millisecond
	}
	return &Coach{
		gen:            gen,
		cache:          params.Cache,
		tipTTL:         params.TipTTL,
		metricsManager: params.MetricsManager,
		retryInterval:  params.RetryInterval,
	}
}

// Motivation returns a personalized tip for the most recent workouts. It
// never fails: problems end up as the fallback tip.
func (c *Coach) Motivation(ctx context.Context, workouts []fitness.Workout, goals string) string {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.motivation")
	defer span.End()

	if len(workouts) == 0 {
		return NoWorkoutsTip
	}
	if len(workouts) > motivationHistorySize {
		workouts = workouts[:motivationHistorySize]
	}
	if strings.TrimSpace(goals) == "" {
		goals = DefaultFitnessGoals
	}

	history := SummarizeHistory(workouts)
	key := cacheKey(flowMotivation, history, goals)
	if c.cache != nil {
		if cached, err := c.cache.Get(key); err == nil {
			log.Tracef("motivation tip served from cache")
			return string(cached)
		}
	}

	start := time.Now()
	prompt := fmt.Sprintf("Workout History: %s\nFitness Goals: %s\n\nTip and Message:", history, goals)
	raw, err := c.gen.Generate(ctx, motivationSystemPrompt, prompt, motivationSchema)
	if err != nil {
		c.observe(flowMotivation, "error", start)
		log.Errorf("failed to get motivation tip: %s", err)
		return FallbackTip
	}

	var out struct {
		MotivationMessage string `json:"motivationMessage"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || strings.TrimSpace(out.MotivationMessage) == "" {
		c.observe(flowMotivation, "invalid", start)
		log.Errorf("invalid motivation response [%s]: %v", raw, err)
		return FallbackTip
	}
	c.observe(flowMotivation, "ok", start)

	if c.cache != nil && c.tipTTL > 0 {
		if err := c.cache.Set(key, []byte(out.MotivationMessage), int(c.tipTTL.Seconds())); err != nil {
			log.Warnf("failed to cache motivation tip: %s", err)
		}
	}
	return out.MotivationMessage
}

// Suggest asks for a workout of exactly 8 exercises with 4 sets each. Answers
// breaking that shape are retried, 3 attempts in total.
func (c *Coach) Suggest(ctx context.Context, in SuggestionInput) (_ *Suggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.suggest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if strings.TrimSpace(in.FitnessGoals) == "" {
		in.FitnessGoals = DefaultFitnessGoals
	}
	if strings.TrimSpace(in.WorkoutSplit) == "" {
		in.WorkoutSplit = DefaultWorkoutSplit
	}

	available, err := json.Marshal(in.AvailableExercises)
	if err != nil {
		return nil, fmt.Errorf("marshal available exercises: %w", err)
	}
	prompt := fmt.Sprintf(
		"Analyze the following user data:\n"+
			"- Fitness Goals: %s\n"+
			"- Workout History: %s\n"+
			"- Personal Records (PRs): %s\n"+
			"- Available Exercises: %s\n"+
			"- Desired Workout Split: %s",
		in.FitnessGoals,
		SummarizeHistory(in.Workouts),
		SummarizeRecords(in.Records),
		available,
		in.WorkoutSplit,
	)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	var suggestion *Suggestion
	attempt := 0
	start := time.Now()
	op := func() error {
		attempt++
		raw, err := c.gen.Generate(ctx, suggestionSystemPrompt, prompt, suggestionSchema)
		if err != nil {
			if errors.Is(err, ErrCoachDisabled) {
				return backoff.Permanent(err)
			}
			log.Warnf("suggestion attempt %d failed: %s", attempt, err)
			return err
		}

		var s Suggestion
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			log.Warnf("suggestion attempt %d, unmarshal: %s", attempt, err)
			return fmt.Errorf("%w: %w", ErrInvalidSuggestion, err)
		}
		if err := s.Validate(); err != nil {
			log.Warnf("suggestion attempt %d: %s", attempt, err)
			return err
		}
		suggestion = &s
		return nil
	}

	err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, suggestionAttempts-1), ctx))
	if err != nil {
		c.observe(flowSuggestion, "error", start)
		return nil, fmt.Errorf("suggest workout after %d attempts: %w", attempt, err)
	}
	c.observe(flowSuggestion, "ok", start)

	return suggestion, nil
}

func (c *Coach) observe(flow, status string, start time.Time) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterCoachRequests.WithLabelValues(flow, status).Inc()
	c.metricsManager.HistogramCoachDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())
}

func cacheKey(parts ...string) []byte {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return sum[:]
}
