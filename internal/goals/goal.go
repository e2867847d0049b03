package goals

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/2beens/vibefit/internal/fitness"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrInvalidGoal  = errors.New("invalid goal")
)

type Goal struct {
	ID           string     `json:"id"`
	ExerciseName string     `json:"exerciseName"`
	TargetWeight float64    `json:"targetWeight"`
	TargetReps   int        `json:"targetReps"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

func (g *Goal) Validate() error {
	g.ExerciseName = strings.TrimSpace(g.ExerciseName)
	switch {
	case g.ExerciseName == "":
		return fmt.Errorf("%w: please select an exercise", ErrInvalidGoal)
	case g.TargetWeight < 0:
		return fmt.Errorf("%w: target weight must be positive", ErrInvalidGoal)
	case g.TargetReps < 1:
		return fmt.Errorf("%w: target reps must be at least 1", ErrInvalidGoal)
	}
	return nil
}

type GoalProgress struct {
	Goal
	CurrentWeight float64 `json:"currentWeight"`
	CurrentReps   int     `json:"currentReps"`
	// Progress is the current weight relative to the target, in [0, 100].
	Progress float64 `json:"progress"`
	Achieved bool    `json:"achieved"`
	Due      string  `json:"due,omitempty"`
}

// Progress measures the goal against the personal record of its exercise.
func Progress(goal Goal, records map[string]fitness.PersonalRecord, now time.Time) GoalProgress {
	gp := GoalProgress{Goal: goal}
	if pr, ok := records[goal.ExerciseName]; ok {
		gp.CurrentWeight = pr.Weight
		gp.CurrentReps = pr.Reps
	}

	if goal.TargetWeight <= 0 {
		gp.Progress = 100
	} else {
		gp.Progress = math.Min(gp.CurrentWeight/goal.TargetWeight*100, 100)
	}
	gp.Achieved = gp.CurrentWeight >= goal.TargetWeight && gp.CurrentReps >= goal.TargetReps

	if goal.Deadline != nil {
		gp.Due = humanize.RelTime(*goal.Deadline, now, "ago", "from now")
	}
	return gp
}
