package appdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/vibefit/internal/db"
	"github.com/2beens/vibefit/internal/goals"
	"github.com/2beens/vibefit/internal/library"
	"github.com/2beens/vibefit/internal/profile"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/internal/workouts"
)

type Store struct {
	db db.Conn
}

func NewStore(db db.Conn) *Store {
	return &Store{
		db: db,
	}
}

// Export reads every part of the document concurrently.
func (s *Store) Export(ctx context.Context) (_ *AppData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "appdata.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc := &AppData{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := workouts.NewRepo(s.db).ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("workouts: %w", err)
		}
		doc.Workouts = list
		return nil
	})
	g.Go(func() error {
		p, err := profile.NewRepo(s.db).Get(gCtx)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		doc.User = p
		return nil
	})
	g.Go(func() error {
		list, err := library.NewRepo(s.db).List(gCtx)
		if err != nil {
			return fmt.Errorf("custom exercises: %w", err)
		}
		doc.CustomExercises = list
		return nil
	})
	g.Go(func() error {
		list, err := goals.NewRepo(s.db).List(gCtx)
		if err != nil {
			return fmt.Errorf("goals: %w", err)
		}
		doc.PersonalGoals = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Import replaces everything stored with the document, in one transaction.
func (s *Store) Import(ctx context.Context, doc AppData) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "appdata.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc.Patch()
	if err := doc.Validate(); err != nil {
		return err
	}
	doc.RekeyDuplicates()

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		workoutsRepo := workouts.NewRepo(tx)
		libraryRepo := library.NewRepo(tx)
		goalsRepo := goals.NewRepo(tx)

		if err := workoutsRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear workouts: %w", err)
		}
		if err := libraryRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear custom exercises: %w", err)
		}
		if err := goalsRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear goals: %w", err)
		}

		for _, w := range doc.Workouts {
			if err := workoutsRepo.Add(ctx, w); err != nil {
				return fmt.Errorf("add workout %s: %w", w.ID, err)
			}
		}
		for _, e := range doc.CustomExercises {
			if _, err := libraryRepo.Add(ctx, e); err != nil {
				if errors.Is(err, library.ErrDuplicateExercise) {
					return fmt.Errorf("%w: custom exercise %q: %w", ErrInvalidDocument, e.Name, err)
				}
				return fmt.Errorf("add custom exercise %s: %w", e.Name, err)
			}
		}
		for _, g := range doc.PersonalGoals {
			if err := goalsRepo.Add(ctx, g); err != nil {
				return fmt.Errorf("add goal %s: %w", g.ExerciseName, err)
			}
		}
		if err := profile.NewRepo(tx).Save(ctx, doc.User); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Infof("imported app data: %d workouts, %d custom exercises, %d goals",
		len(doc.Workouts), len(doc.CustomExercises), len(doc.PersonalGoals))
	return nil
}

// SeedIfEmpty imports the demo document when no workout was logged yet.
func (s *Store) SeedIfEmpty(ctx context.Context, now time.Time) (seeded bool, err error) {
	count, err := workouts.NewRepo(s.db).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count workouts: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := s.Import(ctx, Demo(now)); err != nil {
		return false, fmt.Errorf("import demo data: %w", err)
	}
	log.Infoln("empty database seeded with demo data")
	return true, nil
}
