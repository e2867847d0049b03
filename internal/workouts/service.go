package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/telemetry/metrics"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, workout fitness.Workout) error
	Get(ctx context.Context, id string) (*fitness.Workout, error)
	List(ctx context.Context, page, size int) (_ []fitness.Workout, total int, err error)
	ListAll(ctx context.Context) ([]fitness.Workout, error)
	ListRange(ctx context.Context, from, to time.Time) ([]fitness.Workout, error)
	Delete(ctx context.Context, id string) error
	PersonalRecords(ctx context.Context) ([]fitness.PersonalRecord, error)
}

var ErrInvalidQuickWorkout = errors.New("invalid quick workout")

type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AddWorkoutResult struct {
	Workout       fitness.Workout          `json:"workout"`
	NewRecords    []fitness.PersonalRecord `json:"newRecords"`
	Notifications []Notification           `json:"notifications"`
}

// QuickExercise is the shape of the quick logger form: sets x reps at one weight.
type QuickExercise struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type QuickWorkout struct {
	Date      *time.Time      `json:"date,omitempty"`
	Exercises []QuickExercise `json:"exercises"`
}

// Expand turns the quick form into a workout of completed sets.
func (q QuickWorkout) Expand() (fitness.Workout, error) {
	if len(q.Exercises) == 0 {
		return fitness.Workout{}, fmt.Errorf("%w: no exercises", ErrInvalidQuickWorkout)
	}

	var w fitness.Workout
	if q.Date != nil {
		w.Date = *q.Date
	}
	for i, qe := range q.Exercises {
		name := strings.TrimSpace(qe.Name)
		switch {
		case name == "":
			return fitness.Workout{}, fmt.Errorf("%w: exercise %d has no name", ErrInvalidQuickWorkout, i+1)
		case qe.Sets < 1 || qe.Reps < 1:
			return fitness.Workout{}, fmt.Errorf("%w: %s needs at least one set and one rep", ErrInvalidQuickWorkout, name)
		case qe.Weight < 0:
			return fitness.Workout{}, fmt.Errorf("%w: %s has negative weight", ErrInvalidQuickWorkout, name)
		}

		e := fitness.Exercise{Name: name}
		for s := 0; s < qe.Sets; s++ {
			e.Sets = append(e.Sets, fitness.ExerciseSet{
				Weight:    qe.Weight,
				Reps:      qe.Reps,
				Completed: true,
			})
		}
		w.Exercises = append(w.Exercises, e)
	}
	return w, nil
}

type Service struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
	now            func() time.Time

	// serializes record detection with the insert
	mutex sync.Mutex
}

func NewService(repo workoutsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// Add validates and stores the workout, and reports the personal records it unlocks.
func (s *Service) Add(ctx context.Context, workout fitness.Workout) (_ *AddWorkoutResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workout.Normalize()
	if err := workout.Validate(); err != nil {
		return nil, err
	}
	RenewIDs(&workout)
	if workout.Date.IsZero() {
		workout.Date = s.now()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	existing, err := s.repo.PersonalRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("get personal records: %w", err)
	}
	newRecords := fitness.NewRecords(existing, workout)

	if err := s.repo.Add(ctx, workout); err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}
	span.SetAttributes(attribute.Int("new.records", len(newRecords)))

	result := &AddWorkoutResult{
		Workout:       workout,
		NewRecords:    newRecords,
		Notifications: []Notification{},
	}
	for _, pr := range newRecords {
		n := Notification{
			Title:       "🎉 New PR Unlocked!",
			Description: fmt.Sprintf("%s: %vkg for %d reps", pr.ExerciseName, pr.Weight, pr.Reps),
		}
		log.Infof("%s %s", n.Title, n.Description)
		result.Notifications = append(result.Notifications, n)
	}
	saved := Notification{
		Title:       "✅ Workout Saved!",
		Description: "Your session has been logged.",
	}
	log.Infof("%s workout %s with %d exercises", saved.Title, workout.ID, len(workout.Exercises))
	result.Notifications = append(result.Notifications, saved)

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsLogged.Inc()
		s.metricsManager.CounterPersonalRecords.Add(float64(len(newRecords)))
	}

	return result, nil
}

func (s *Service) QuickAdd(ctx context.Context, quick QuickWorkout) (*AddWorkoutResult, error) {
	workout, err := quick.Expand()
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, workout)
}

func (s *Service) Get(ctx context.Context, id string) (*fitness.Workout, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, page, size int) ([]fitness.Workout, int, error) {
	return s.repo.List(ctx, page, size)
}

func (s *Service) ListAll(ctx context.Context) ([]fitness.Workout, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListRange(ctx context.Context, from, to time.Time) ([]fitness.Workout, error) {
	return s.repo.ListRange(ctx, from, to)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) PersonalRecords(ctx context.Context) ([]fitness.PersonalRecord, error) {
	return s.repo.PersonalRecords(ctx)
}

// RenewIDs replaces every workout, exercise and set id with a fresh one.
// Client ids are discarded.
func RenewIDs(w *fitness.Workout) {
	w.ID = uuid.NewString()
	for i := range w.Exercises {
		e := &w.Exercises[i]
		e.ID = uuid.NewString()
		for j := range e.Sets {
			e.Sets[j].ID = uuid.NewString()
		}
	}
}
