package workouts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/vibefit/internal/db"
	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db db.Conn
}

func NewRepo(db db.Conn) *Repo {
	return &Repo{
		db: db,
	}
}

// Add inserts the workout with its exercises and sets in one transaction.
// All ids must already be set.
func (r *Repo) Add(ctx context.Context, workout fitness.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workout.ID))
	span.SetAttributes(attribute.Int("workout.exercises", len(workout.Exercises)))

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO workout (id, performed_at) VALUES ($1, $2);`,
			workout.ID, workout.Date,
		); err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}

		for i, e := range workout.Exercises {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO workout_exercise (id, workout_id, position, name) VALUES ($1, $2, $3, $4);`,
				e.ID, workout.ID, i, e.Name,
			); err != nil {
				return fmt.Errorf("insert exercise %s: %w", e.Name, err)
			}

			for j, s := range e.Sets {
				if _, err := tx.Exec(
					ctx,
					`INSERT INTO exercise_set (id, exercise_id, position, weight, reps, completed)
						VALUES ($1, $2, $3, $4, $5, $6);`,
					s.ID, e.ID, j, s.Weight, s.Reps, s.Completed,
				); err != nil {
					return fmt.Errorf("insert set %d of %s: %w", j, e.Name, err)
				}
			}
		}

		return nil
	})
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// DeleteAll wipes the workout log. Exercises and sets go with it.
func (r *Repo) DeleteAll(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `DELETE FROM workout;`)
	return err
}

func (r *Repo) Get(ctx context.Context, id string) (_ *fitness.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	workouts, err := r.load(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, ErrWorkoutNotFound
	}
	return &workouts[0], nil
}

// ListAll returns the whole history, newest first.
func (r *Repo) ListAll(ctx context.Context) (_ []fitness.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.load(ctx, "")
}

// ListRange returns workouts performed in [from, to], newest first.
func (r *Repo) ListRange(ctx context.Context, from, to time.Time) (_ []fitness.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.load(ctx, `WHERE performed_at >= $1 AND performed_at <= $2`, from, to)
}

func (r *Repo) List(ctx context.Context, page, size int) (_ []fitness.Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", page))
	span.SetAttributes(attribute.Int("size", size))

	total, err = r.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	limit := size
	offset := (page - 1) * size
	workouts, err := r.load(ctx, `LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// PersonalRecords picks the best completed set per exercise name in SQL:
// heaviest, then most reps, then most recent.
func (r *Repo) PersonalRecords(ctx context.Context) (_ []fitness.PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.personalRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT DISTINCT ON (we.name)
				we.name, es.weight, es.reps, w.performed_at
			FROM exercise_set es
			JOIN workout_exercise we ON es.exercise_id = we.id
			JOIN workout w ON we.workout_id = w.id
			WHERE es.completed
			ORDER BY we.name, es.weight DESC, es.reps DESC, w.performed_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []fitness.PersonalRecord{}
	for rows.Next() {
		var pr fitness.PersonalRecord
		if err := rows.Scan(&pr.ExerciseName, &pr.Weight, &pr.Reps, &pr.Date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		records = append(records, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ExerciseName < records[j].ExerciseName
	})
	span.SetAttributes(attribute.Int("records", len(records)))

	return records, nil
}

// load fetches workout headers matching the clause, then their exercises and
// sets in a second query, and assembles them.
func (r *Repo) load(ctx context.Context, clause string, args ...any) ([]fitness.Workout, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, performed_at FROM workout `+orderedClause(clause)+`;`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}

	workouts := []fitness.Workout{}
	index := make(map[string]int)
	var ids []string
	for rows.Next() {
		var w fitness.Workout
		if err := rows.Scan(&w.ID, &w.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Exercises = []fitness.Exercise{}
		index[w.ID] = len(workouts)
		ids = append(ids, w.ID)
		workouts = append(workouts, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return workouts, nil
	}

	setRows, err := r.db.Query(
		ctx,
		`
			SELECT we.workout_id, we.id, we.name, es.id, es.weight, es.reps, es.completed
			FROM workout_exercise we
			JOIN exercise_set es ON es.exercise_id = we.id
			WHERE we.workout_id = ANY($1)
			ORDER BY we.workout_id, we.position, es.position;`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			workoutID, exerciseID, name string
			s                           fitness.ExerciseSet
		)
		if err := setRows.Scan(&workoutID, &exerciseID, &name, &s.ID, &s.Weight, &s.Reps, &s.Completed); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		w := &workouts[index[workoutID]]
		last := len(w.Exercises) - 1
		if last < 0 || w.Exercises[last].ID != exerciseID {
			w.Exercises = append(w.Exercises, fitness.Exercise{ID: exerciseID, Name: name})
			last++
		}
		w.Exercises[last].Sets = append(w.Exercises[last].Sets, s)
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

// orderedClause puts the newest first ordering between a WHERE clause and a
// LIMIT clause.
func orderedClause(clause string) string {
	const order = `ORDER BY performed_at DESC, id`
	switch {
	case clause == "":
		return order
	case len(clause) >= 5 && clause[:5] == "LIMIT":
		return order + " " + clause
	default:
		return clause + " " + order
	}
}
