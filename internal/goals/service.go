package goals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/fitness"
)

//go:generate mockgen -source=$GOFILE -destination=goals_mocks_test.go -package=goals_test

type goalsRepo interface {
	Add(ctx context.Context, goal Goal) error
	Update(ctx context.Context, goal Goal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Goal, error)
}

type recordsSource interface {
	PersonalRecords(ctx context.Context) ([]fitness.PersonalRecord, error)
}

type Service struct {
	repo    goalsRepo
	records recordsSource
	now     func() time.Time
}

func NewService(repo goalsRepo, records recordsSource) *Service {
	return &Service{
		repo:    repo,
		records: records,
		now:     time.Now,
	}
}

func (s *Service) Add(ctx context.Context, goal Goal) (*Goal, error) {
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	goal.ID = uuid.NewString()
	if err := s.repo.Add(ctx, goal); err != nil {
		return nil, fmt.Errorf("add goal: %w", err)
	}
	log.Infof("🎯 Goal Set! New goal for %s added", goal.ExerciseName)
	return &goal, nil
}

func (s *Service) Update(ctx context.Context, goal Goal) error {
	if goal.ID == "" {
		return fmt.Errorf("%w: id empty", ErrInvalidGoal)
	}
	if err := goal.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, goal); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// ListProgress returns every goal measured against the current records.
func (s *Service) ListProgress(ctx context.Context) ([]GoalProgress, error) {
	goals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	records, err := s.records.PersonalRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("personal records: %w", err)
	}

	byExercise := fitness.RecordsByExercise(records)
	now := s.now()
	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, Progress(g, byExercise, now))
	}
	return progress, nil
}
