package library

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/fitness"
)

//go:generate mockgen -source=$GOFILE -destination=library_mocks_test.go -package=library_test

type libraryRepo interface {
	Add(ctx context.Context, exercise CustomExercise) (*CustomExercise, error)
	Update(ctx context.Context, exercise CustomExercise) error
	Delete(ctx context.Context, id string) (*CustomExercise, error)
	List(ctx context.Context) ([]CustomExercise, error)
}

type Service struct {
	repo libraryRepo
}

func NewService(repo libraryRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Add(ctx context.Context, exercise CustomExercise) (*CustomExercise, error) {
	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	exercise.ID = uuid.NewString()

	added, err := s.repo.Add(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("add custom exercise: %w", err)
	}
	log.Infof("✅ Exercise added! %q has been added to the library", added.Name)
	return added, nil
}

func (s *Service) Update(ctx context.Context, exercise CustomExercise) error {
	if exercise.ID == "" {
		return fmt.Errorf("%w: id empty", ErrInvalidExercise)
	}
	if err := exercise.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, exercise); err != nil {
		return fmt.Errorf("update custom exercise: %w", err)
	}
	log.Infof("✅ Exercise updated! %q has been updated", exercise.Name)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete custom exercise: %w", err)
	}
	log.Infof("🗑️ Exercise deleted, %q has been removed", deleted.Name)
	return nil
}

func (s *Service) Custom(ctx context.Context) ([]CustomExercise, error) {
	return s.repo.List(ctx)
}

func (s *Service) Available(ctx context.Context) ([]string, error) {
	custom, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return AvailableNames(custom), nil
}

func (s *Service) MuscleGroupIndex(ctx context.Context) (fitness.MuscleGroupIndex, error) {
	custom, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return MuscleGroupIndex(custom), nil
}
