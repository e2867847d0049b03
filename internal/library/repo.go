package library

import (
	"context"
	"fmt"

	"github.com/2beens/vibefit/internal/db"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"

	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db db.Conn
}

func NewRepo(db db.Conn) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise CustomExercise) (_ *CustomExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.library.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exercise.Name))

	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO custom_exercise (id, name, muscle_group) VALUES ($1, $2, $3) RETURNING created_at;`,
		exercise.ID, exercise.Name, exercise.MuscleGroup,
	).Scan(&exercise.CreatedAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrDuplicateExercise
		}
		return nil, err
	}

	return &exercise, nil
}

func (r *Repo) Update(ctx context.Context, exercise CustomExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.library.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exercise.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE custom_exercise SET name = $1, muscle_group = $2 WHERE id = $3;`,
		exercise.Name, exercise.MuscleGroup, exercise.ID,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrDuplicateExercise
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomExerciseNotFound
	}
	return nil
}

// Delete removes the exercise and returns it.
func (r *Repo) Delete(ctx context.Context, id string) (_ *CustomExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.library.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id))

	rows, err := r.db.Query(
		ctx,
		`DELETE FROM custom_exercise WHERE id = $1 RETURNING id, name, muscle_group, created_at;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises, err := scanExercises(rows)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrCustomExerciseNotFound
	}
	return &exercises[0], nil
}

func (r *Repo) DeleteAll(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.library.deleteAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `DELETE FROM custom_exercise;`)
	return err
}

func (r *Repo) List(ctx context.Context) (_ []CustomExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.library.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, muscle_group, created_at FROM custom_exercise ORDER BY created_at, id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExercises(rows)
}

type scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanExercises(rows scanner) ([]CustomExercise, error) {
	exercises := []CustomExercise{}
	for rows.Next() {
		var e CustomExercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
