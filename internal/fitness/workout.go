// Package fitness holds the workout model and the pure computations over a
// workout history: personal records, streaks, volume, calories, weekly
// progress, trends and the muscle heatmap.
//
// Every computation counts completed sets only. Calendar days are evaluated
// in the location passed by the caller.
package fitness

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidWorkout = errors.New("invalid workout")

type ExerciseSet struct {
	ID        string  `json:"id"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

// Volume is weight times reps.
func (s ExerciseSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

type Exercise struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Sets []ExerciseSet `json:"sets"`
}

func (e Exercise) Volume() float64 {
	var v float64
	for _, s := range e.Sets {
		if s.Completed {
			v += s.Volume()
		}
	}
	return v
}

func (e Exercise) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed {
			n++
		}
	}
	return n
}

type Workout struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	Exercises []Exercise `json:"exercises"`
}

func (w Workout) Volume() float64 {
	var v float64
	for _, e := range w.Exercises {
		v += e.Volume()
	}
	return v
}

// Normalize trims exercise names in place.
func (w *Workout) Normalize() {
	for i := range w.Exercises {
		w.Exercises[i].Name = strings.TrimSpace(w.Exercises[i].Name)
	}
}

func (w Workout) Validate() error {
	if len(w.Exercises) == 0 {
		return fmt.Errorf("%w: no exercises", ErrInvalidWorkout)
	}
	for i, e := range w.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: exercise %d has no name", ErrInvalidWorkout, i+1)
		}
		if len(e.Sets) == 0 {
			return fmt.Errorf("%w: exercise %q has no sets", ErrInvalidWorkout, e.Name)
		}
		for j, s := range e.Sets {
			if s.Weight < 0 || s.Reps < 0 {
				return fmt.Errorf("%w: exercise %q set %d has negative weight or reps", ErrInvalidWorkout, e.Name, j+1)
			}
		}
	}
	return nil
}
