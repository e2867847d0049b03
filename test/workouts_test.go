package test

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/vibefit/internal/coach"
	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/goals"
	"github.com/2beens/vibefit/internal/stats"
	"github.com/2beens/vibefit/internal/workouts"
)

func benchWorkout(date time.Time, weight float64, reps int) fitness.Workout {
	return fitness.Workout{
		Date: date,
		Exercises: []fitness.Exercise{
			{
				Name: "Barbell Bench Press",
				Sets: []fitness.ExerciseSet{
					{Weight: weight, Reps: reps, Completed: true},
					{Weight: weight + 20, Reps: reps, Completed: false},
				},
			},
		},
	}
}

func (s *IntegrationTestSuite) TestWorkoutsAndStats() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.resetData(ctx)
	token := s.login(ctx)

	now := time.Now().UTC()

	var first workouts.AddWorkoutResult
	s.doJSON(ctx, "POST", "/workouts", token, benchWorkout(now, 100, 5), http.StatusCreated, &first)
	s.NotEmpty(first.Workout.ID)
	s.Require().Len(first.NewRecords, 1)
	s.Equal(100.0, first.NewRecords[0].Weight)
	// one PR notification, one saved notification
	s.Len(first.Notifications, 2)

	var second workouts.AddWorkoutResult
	s.doJSON(ctx, "POST", "/workouts", token, benchWorkout(now.AddDate(0, 0, -1), 90, 8), http.StatusCreated, &second)
	s.Empty(second.NewRecords)

	var quick workouts.AddWorkoutResult
	s.doJSON(ctx, "POST", "/workouts/quick", token, workouts.QuickWorkout{
		Exercises: []workouts.QuickExercise{{Name: "Barbell Squat", Sets: 3, Reps: 5, Weight: 120}},
	}, http.StatusCreated, &quick)
	s.Len(quick.Workout.Exercises[0].Sets, 3)

	s.Run("invalid workout", func() {
		status, _ := s.doRequest(ctx, "POST", "/workouts", token, fitness.Workout{Date: now})
		s.Equal(http.StatusBadRequest, status)
	})

	s.Run("list and get", func() {
		var list workouts.ListResponse
		s.doJSON(ctx, "GET", "/workouts/list/page/1/size/10", token, nil, http.StatusOK, &list)
		s.Equal(3, list.Total)
		s.Len(list.Workouts, 3)

		var got fitness.Workout
		s.doJSON(ctx, "GET", workoutPath(first.Workout.ID), token, nil, http.StatusOK, &got)
		s.Equal(first.Workout.ID, got.ID)
		s.Len(got.Exercises[0].Sets, 2)
	})

	s.Run("stats", func() {
		var records []fitness.PersonalRecord
		s.doJSON(ctx, "GET", "/stats/records?limit=3", token, nil, http.StatusOK, &records)
		s.Require().Len(records, 2)

		var streak stats.StreakResponse
		s.doJSON(ctx, "GET", "/stats/streak", token, nil, http.StatusOK, &streak)
		s.Equal(2, streak.Streak)

		var quickStats fitness.QuickStats
		s.doJSON(ctx, "GET", "/stats/quick", token, nil, http.StatusOK, &quickStats)
		s.Equal(3, quickStats.TotalWorkouts)
		// 100*5 + 90*8 + 3*120*5, uncompleted sets excluded
		s.Equal(3020.0, quickStats.TotalVolume)

		var dashboard stats.Dashboard
		s.doJSON(ctx, "GET", "/stats/dashboard", token, nil, http.StatusOK, &dashboard)
		s.Equal(2, dashboard.Streak)
		s.Equal("Alex", dashboard.UserName)
	})

	s.Run("goals progress", func() {
		var added goals.Goal
		s.doJSON(ctx, "POST", "/goals", token, goals.Goal{
			ExerciseName: "Barbell Bench Press",
			TargetWeight: 200,
			TargetReps:   1,
		}, http.StatusCreated, &added)
		s.NotEmpty(added.ID)

		var progress []goals.GoalProgress
		s.doJSON(ctx, "GET", "/goals", token, nil, http.StatusOK, &progress)
		s.Require().Len(progress, 1)
		s.Equal(100.0, progress[0].CurrentWeight)
		s.Equal(50.0, progress[0].Progress)
		s.False(progress[0].Achieved)
	})

	s.Run("coach without a model", func() {
		var tip coach.TipResponse
		s.doJSON(ctx, "GET", "/coach/tip", token, nil, http.StatusOK, &tip)
		s.Equal(coach.FallbackTip, tip.MotivationMessage)

		status, _ := s.doRequest(ctx, "POST", "/coach/suggestion", token, coach.SuggestionRequest{})
		s.Equal(http.StatusServiceUnavailable, status)
	})

	s.Run("delete", func() {
		var deleted workouts.DeleteWorkoutResponse
		s.doJSON(ctx, "DELETE", workoutPath(first.Workout.ID), token, nil, http.StatusOK, &deleted)
		s.Equal(first.Workout.ID, deleted.DeletedID)

		status, _ := s.doRequest(ctx, "GET", workoutPath(first.Workout.ID), token, nil)
		s.Equal(http.StatusNotFound, status)
		status, _ = s.doRequest(ctx, "DELETE", workoutPath(first.Workout.ID), token, nil)
		s.Equal(http.StatusNotFound, status)
	})
}
