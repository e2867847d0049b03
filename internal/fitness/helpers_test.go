package fitness

import "time"

// 2025-06-11 is a Wednesday
var testNow = time.Date(2025, time.June, 11, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func set(weight float64, reps int) ExerciseSet {
	return ExerciseSet{Weight: weight, Reps: reps, Completed: true}
}

func skipped(weight float64, reps int) ExerciseSet {
	return ExerciseSet{Weight: weight, Reps: reps}
}

func ex(name string, sets ...ExerciseSet) Exercise {
	return Exercise{Name: name, Sets: sets}
}

func workout(id string, date time.Time, exercises ...Exercise) Workout {
	return Workout{ID: id, Date: date, Exercises: exercises}
}
