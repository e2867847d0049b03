package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/2beens/vibefit/internal/db"
	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
)

const DefaultName = "Alex"

var ErrInvalidProfile = errors.New("invalid profile")

type Goals struct {
	WeeklyWorkoutTarget int `json:"weeklyWorkoutTarget"`
}

type Profile struct {
	Name  string `json:"name"`
	Goals Goals  `json:"goals"`
}

func Default() Profile {
	return Profile{
		Name:  DefaultName,
		Goals: Goals{WeeklyWorkoutTarget: fitness.DefaultWeeklyTarget},
	}
}

// Patch fills missing fields with defaults.
func (p *Profile) Patch() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.Goals.WeeklyWorkoutTarget <= 0 {
		p.Goals.WeeklyWorkoutTarget = fitness.DefaultWeeklyTarget
	}
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name empty", ErrInvalidProfile)
	}
	if p.Goals.WeeklyWorkoutTarget < 1 || p.Goals.WeeklyWorkoutTarget > 7 {
		return fmt.Errorf("%w: weekly workout target must be between 1 and 7", ErrInvalidProfile)
	}
	return nil
}

type Repo struct {
	db db.Conn
}

func NewRepo(db db.Conn) *Repo {
	return &Repo{
		db: db,
	}
}

// Get returns the stored profile, or the default one when none was saved yet.
func (r *Repo) Get(ctx context.Context) (_ Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var p Profile
	err = r.db.QueryRow(
		ctx,
		`SELECT name, weekly_workout_target FROM user_profile WHERE id = 1;`,
	).Scan(&p.Name, &p.Goals.WeeklyWorkoutTarget)
	if errors.Is(err, pgx.ErrNoRows) {
		return Default(), nil
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *Repo) Save(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_profile (id, name, weekly_workout_target) VALUES (1, $1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, weekly_workout_target = EXCLUDED.weekly_workout_target;`,
		p.Name, p.Goals.WeeklyWorkoutTarget,
	)
	return err
}
