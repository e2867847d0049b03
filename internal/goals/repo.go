package goals

import (
	"context"
	"fmt"

	"github.com/2beens/vibefit/internal/db"
	"github.com/2beens/vibefit/internal/telemetry/tracing"

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

func (r *Repo) Add(ctx context.Context, goal Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.exercise", goal.ExerciseName))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO personal_goal (id, exercise_name, target_weight, target_reps, deadline)
			VALUES ($1, $2, $3, $4, $5);`,
		goal.ID, goal.ExerciseName, goal.TargetWeight, goal.TargetReps, goal.Deadline,
	)
	return err
}

func (r *Repo) Update(ctx context.Context, goal Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", goal.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE personal_goal
			SET exercise_name = $1, target_weight = $2, target_reps = $3, deadline = $4
			WHERE id = $5;`,
		goal.ExerciseName, goal.TargetWeight, goal.TargetReps, goal.Deadline, goal.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM personal_goal WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) DeleteAll(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.deleteAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `DELETE FROM personal_goal;`)
	return err
}

func (r *Repo) List(ctx context.Context) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, exercise_name, target_weight, target_reps, deadline
			FROM personal_goal
			ORDER BY created_at, id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []Goal{}
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.ExerciseName, &g.TargetWeight, &g.TargetReps, &g.Deadline); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}
