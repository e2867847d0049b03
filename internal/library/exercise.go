package library

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/2beens/vibefit/internal/fitness"
)

var (
	ErrCustomExerciseNotFound = errors.New("custom exercise not found")
	ErrDuplicateExercise      = errors.New("exercise with that name already exists")
	ErrInvalidExercise        = errors.New("invalid exercise")
)

const minNameLength = 2

var MuscleGroups = []string{"Chest", "Back", "Legs", "Shoulders", "Arms", "Core", "Other"}

type PreloadedExercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}

var Preloaded = []PreloadedExercise{
	{Name: "Bench Press", MuscleGroup: "Chest"},
	{Name: "Incline Dumbbell Press", MuscleGroup: "Chest"},
	{Name: "Tricep Pushdown", MuscleGroup: "Arms"},
	{Name: "Squat", MuscleGroup: "Legs"},
	{Name: "Leg Press", MuscleGroup: "Legs"},
	{Name: "Leg Curl", MuscleGroup: "Legs"},
	{Name: "Deadlift", MuscleGroup: "Back"},
	{Name: "Pull Ups", MuscleGroup: "Back"},
	{Name: "Barbell Row", MuscleGroup: "Back"},
	{Name: "Overhead Press", MuscleGroup: "Shoulders"},
	{Name: "Lateral Raises", MuscleGroup: "Shoulders"},
}

type CustomExercise struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

func (e *CustomExercise) Validate() error {
	e.Name = strings.TrimSpace(e.Name)
	e.MuscleGroup = strings.TrimSpace(e.MuscleGroup)
	if len([]rune(e.Name)) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidExercise, minNameLength)
	}
	if e.MuscleGroup == "" {
		return fmt.Errorf("%w: please select a muscle group", ErrInvalidExercise)
	}
	return nil
}

// AvailableNames merges custom and preloaded names, drops
// duplicates and sorts the rest the way a human would read them.
func AvailableNames(custom []CustomExercise) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, e := range custom {
		add(e.Name)
	}
	for _, e := range Preloaded {
		add(e.Name)
	}

	collate.New(language.English, collate.IgnoreCase).SortStrings(names)
	return names
}

// MuscleGroupIndex maps every known exercise to its muscle group. Custom
// exercises override the preloaded ones.
func MuscleGroupIndex(custom []CustomExercise) fitness.MuscleGroupIndex {
	idx := make(fitness.MuscleGroupIndex)
	for _, e := range Preloaded {
		idx.Add(e.Name, e.MuscleGroup)
	}
	for _, e := range custom {
		idx.Add(e.Name, e.MuscleGroup)
	}
	return idx
}
