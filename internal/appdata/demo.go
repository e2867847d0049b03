package appdata

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/goals"
	"github.com/2beens/vibefit/internal/library"
	"github.com/2beens/vibefit/internal/profile"
)

type demoExercise struct {
	name   string
	weight float64
	reps   []int
}

type demoWorkout struct {
	daysAgo   int
	exercises []demoExercise
}

var demoWorkouts = []demoWorkout{
	{1, []demoExercise{
		{"Bench Press", 100, []int{8, 8, 7, 6}},
		{"Incline Dumbbell Press", 30, []int{10, 10, 9}},
		{"Tricep Pushdown", 25, []int{12, 12, 11}},
	}},
	{3, []demoExercise{
		{"Squat", 120, []int{5, 5, 5, 5, 5}},
		{"Leg Press", 200, []int{10, 10, 10}},
		{"Leg Curl", 50, []int{12, 12, 12}},
	}},
	{5, []demoExercise{
		{"Deadlift", 150, []int{5, 4, 4}},
		{"Pull Ups", 0, []int{8, 8, 7, 6}},
		{"Barbell Row", 70, []int{8, 8, 8}},
	}},
	{7, []demoExercise{
		{"Bench Press", 95, []int{8, 8, 8, 8}},
		{"Overhead Press", 50, []int{8, 8, 7, 6}},
		{"Lateral Raises", 10, []int{15, 15, 14}},
	}},
	{10, []demoExercise{
		{"Squat", 115, []int{5, 5, 5}},
	}},
	{12, []demoExercise{
		{"Bench Press", 90, []int{10, 10, 9}},
	}},
}

// Demo returns the demo document with workouts dated relative to now.
func Demo(now time.Time) AppData {
	doc := AppData{
		User: profile.Profile{
			Name:  profile.DefaultName,
			Goals: profile.Goals{WeeklyWorkoutTarget: 4},
		},
		CustomExercises: []library.CustomExercise{
			{ID: uuid.NewString(), Name: "Cable Crossover", MuscleGroup: "Chest"},
			{ID: uuid.NewString(), Name: "Hammer Curls", MuscleGroup: "Arms"},
		},
	}

	for _, dw := range demoWorkouts {
		w := fitness.Workout{
			ID:   uuid.NewString(),
			Date: now.AddDate(0, 0, -dw.daysAgo),
		}
		for _, de := range dw.exercises {
			e := fitness.Exercise{ID: uuid.NewString(), Name: de.name}
			for _, reps := range de.reps {
				e.Sets = append(e.Sets, fitness.ExerciseSet{
					ID:        uuid.NewString(),
					Weight:    de.weight,
					Reps:      reps,
					Completed: true,
				})
			}
			w.Exercises = append(w.Exercises, e)
		}
		doc.Workouts = append(doc.Workouts, w)
	}

	deadline := now.AddDate(0, 1, 0)
	doc.PersonalGoals = []goals.Goal{
		{ID: uuid.NewString(), ExerciseName: "Bench Press", TargetWeight: 110, TargetReps: 5, Deadline: &deadline},
		{ID: uuid.NewString(), ExerciseName: "Squat", TargetWeight: 130, TargetReps: 5},
		{ID: uuid.NewString(), ExerciseName: "Pull Ups", TargetWeight: 0, TargetReps: 12},
	}

	return doc
}

// FakeHistory generates a plausible history of the given number of workouts,
// one every other day going back from now. The same seed gives the same
// exercises, sets and weights.
func FakeHistory(seed int64, count int, now time.Time) []fitness.Workout {
	faker := gofakeit.New(seed)

	names := make([]string, 0, len(library.Preloaded))
	for _, e := range library.Preloaded {
		names = append(names, e.Name)
	}

	workouts := make([]fitness.Workout, 0, count)
	for i := 0; i < count; i++ {
		w := fitness.Workout{
			ID:   uuid.NewString(),
			Date: now.AddDate(0, 0, -2*(i+1)),
		}

		exercisesCount := faker.Number(2, 4)
		used := make(map[string]bool)
		for len(w.Exercises) < exercisesCount {
			name := faker.RandomString(names)
			if used[name] {
				continue
			}
			used[name] = true

			weight := float64(faker.Number(4, 30) * 5)
			e := fitness.Exercise{ID: uuid.NewString(), Name: name}
			for s := faker.Number(3, 5); s > 0; s-- {
				e.Sets = append(e.Sets, fitness.ExerciseSet{
					ID:        uuid.NewString(),
					Weight:    weight,
					Reps:      faker.Number(5, 12),
					Completed: faker.Number(1, 10) > 1,
				})
			}
			w.Exercises = append(w.Exercises, e)
		}
		workouts = append(workouts, w)
	}
	return workouts
}
