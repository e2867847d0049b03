// Package appdata moves the whole fitness document in and out of the store:
// export, import with shape patching, and demo seeding.
package appdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/goals"
	"github.com/2beens/vibefit/internal/library"
	"github.com/2beens/vibefit/internal/profile"
)

var ErrInvalidDocument = errors.New("invalid app data document")

type AppData struct {
	Workouts        []fitness.Workout        `json:"workouts"`
	User            profile.Profile          `json:"user"`
	CustomExercises []library.CustomExercise `json:"customExercises"`
	PersonalGoals   []goals.Goal             `json:"personalGoals"`
}

// Patch fixes up documents written by older versions: missing lists become
// empty and a missing user gets the default profile.
func (d *AppData) Patch() {
	if d.Workouts == nil {
		d.Workouts = []fitness.Workout{}
	}
	if d.CustomExercises == nil {
		d.CustomExercises = []library.CustomExercise{}
	}
	if d.PersonalGoals == nil {
		d.PersonalGoals = []goals.Goal{}
	}
	d.User.Patch()
	for i := range d.Workouts {
		d.Workouts[i].Normalize()
	}
}

func (d *AppData) Validate() error {
	for i, w := range d.Workouts {
		if w.Date.IsZero() {
			return fmt.Errorf("%w: workout %d has no date", ErrInvalidDocument, i+1)
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("%w: workout %d: %w", ErrInvalidDocument, i+1, err)
		}
	}
	seen := make(map[string]bool)
	for i := range d.CustomExercises {
		e := &d.CustomExercises[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: custom exercise %d: %w", ErrInvalidDocument, i+1, err)
		}
		// same key as the custom_exercise unique index
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if seen[key] {
			return fmt.Errorf("%w: custom exercise %q listed twice", ErrInvalidDocument, e.Name)
		}
		seen[key] = true
	}
	for i := range d.PersonalGoals {
		if err := d.PersonalGoals[i].Validate(); err != nil {
			return fmt.Errorf("%w: goal %d: %w", ErrInvalidDocument, i+1, err)
		}
	}
	if err := d.User.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// RekeyDuplicates keeps every id that is unique within the document and gives
// a fresh one to ids that are missing or already taken.
func (d *AppData) RekeyDuplicates() {
	seen := make(map[string]bool)
	rekey := func(id *string) {
		if *id == "" || seen[*id] {
			*id = uuid.NewString()
		}
		seen[*id] = true
	}

	for i := range d.Workouts {
		w := &d.Workouts[i]
		rekey(&w.ID)
		for j := range w.Exercises {
			e := &w.Exercises[j]
			rekey(&e.ID)
			for k := range e.Sets {
				rekey(&e.Sets[k].ID)
			}
		}
	}
	for i := range d.CustomExercises {
		rekey(&d.CustomExercises[i].ID)
	}
	for i := range d.PersonalGoals {
		rekey(&d.PersonalGoals[i].ID)
	}
}
