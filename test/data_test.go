package test

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/2beens/vibefit/internal/appdata"
	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/library"
	"github.com/2beens/vibefit/internal/profile"
	"github.com/2beens/vibefit/internal/templates"
	"github.com/2beens/vibefit/internal/workouts"
)

func (s *IntegrationTestSuite) TestLibraryAndProfile() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.resetData(ctx)
	token := s.login(ctx)

	var added library.CustomExercise
	s.doJSON(ctx, "POST", "/library/exercises", token, library.CustomExercise{
		Name:        "  Cable Fly ",
		MuscleGroup: "Chest",
	}, http.StatusCreated, &added)
	s.Equal("Cable Fly", added.Name)

	status, _ := s.doRequest(ctx, "POST", "/library/exercises", token, library.CustomExercise{
		Name:        "Cable Fly",
		MuscleGroup: "Chest",
	})
	s.Equal(http.StatusConflict, status)

	var available []string
	s.doJSON(ctx, "GET", "/library/available", token, nil, http.StatusOK, &available)
	s.Contains(available, "Cable Fly")
	s.Contains(available, "Bench Press")

	status, _ = s.doRequest(ctx, "DELETE", "/library/exercises/does-not-exist", token, nil)
	s.Equal(http.StatusNotFound, status)

	var p profile.Profile
	s.doJSON(ctx, "GET", "/profile", token, nil, http.StatusOK, &p)
	s.Equal(profile.Default(), p)

	p.Name = "Sam"
	p.Goals.WeeklyWorkoutTarget = 3
	s.doJSON(ctx, "PUT", "/profile", token, p, http.StatusOK, nil)
	s.doJSON(ctx, "GET", "/profile", token, nil, http.StatusOK, &p)
	s.Equal("Sam", p.Name)
	s.Equal(3, p.Goals.WeeklyWorkoutTarget)

	p.Goals.WeeklyWorkoutTarget = 9
	status, _ = s.doRequest(ctx, "PUT", "/profile", token, p)
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestTemplates() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.resetData(ctx)
	token := s.login(ctx)

	var names []string
	s.doJSON(ctx, "GET", "/templates", token, nil, http.StatusOK, &names)
	s.Require().NotEmpty(names)

	var draft templates.DraftResponse
	s.doJSON(ctx, "GET", "/templates/"+url.PathEscape(names[0])+"/draft", token, nil, http.StatusOK, &draft)
	s.Require().NotEmpty(draft.Workout.Exercises)

	status, _ := s.doRequest(ctx, "POST", "/templates/"+url.PathEscape(names[0])+"/log", token, draft.Workout)
	s.Equal(http.StatusBadRequest, status, "nothing completed")

	draft.Workout.Exercises[0].Sets[0].Completed = true
	var logged workouts.AddWorkoutResult
	s.doJSON(ctx, "POST", "/templates/"+url.PathEscape(names[0])+"/log", token, draft.Workout, http.StatusCreated, &logged)
	s.Require().Len(logged.Workout.Exercises, 1)
	s.Len(logged.Workout.Exercises[0].Sets, 1)

	// the same draft logged again gets its own ids
	var again workouts.AddWorkoutResult
	s.doJSON(ctx, "POST", "/templates/"+url.PathEscape(names[0])+"/log", token, draft.Workout, http.StatusCreated, &again)
	s.NotEqual(logged.Workout.ID, again.Workout.ID)
	s.NotEqual(logged.Workout.Exercises[0].Sets[0].ID, again.Workout.Exercises[0].Sets[0].ID)

	status, _ = s.doRequest(ctx, "GET", "/templates/no-such-template", token, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestExportImport() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.resetData(ctx)
	token := s.login(ctx)

	doc := appdata.Demo(time.Now().UTC())
	s.doJSON(ctx, "POST", "/data/import", token, doc, http.StatusOK, nil)

	var exported appdata.AppData
	s.doJSON(ctx, "GET", "/data", token, nil, http.StatusOK, &exported)
	s.Len(exported.Workouts, len(doc.Workouts))
	s.Len(exported.CustomExercises, len(doc.CustomExercises))
	s.Len(exported.PersonalGoals, len(doc.PersonalGoals))
	s.Equal(doc.User.Name, exported.User.Name)

	s.Run("import replaces everything", func() {
		s.doJSON(ctx, "POST", "/data/import", token, appdata.AppData{
			Workouts: []fitness.Workout{benchWorkout(time.Now().UTC(), 60, 10)},
		}, http.StatusOK, nil)

		var list workouts.ListResponse
		s.doJSON(ctx, "GET", "/workouts/list/page/1/size/50", token, nil, http.StatusOK, &list)
		s.Equal(1, list.Total)

		var custom []library.CustomExercise
		s.doJSON(ctx, "GET", "/library/exercises", token, nil, http.StatusOK, &custom)
		s.Empty(custom)
	})

	s.Run("shared ids are rekeyed", func() {
		shared := benchWorkout(time.Now().UTC(), 60, 10)
		shared.ID = "w-1"
		shared.Exercises[0].ID = "ex-1"
		shared.Exercises[0].Sets[0].ID = "s-1"
		shared.Exercises[0].Sets[1].ID = "s-2"
		s.doJSON(ctx, "POST", "/data/import", token, appdata.AppData{
			Workouts: []fitness.Workout{shared, shared},
		}, http.StatusOK, nil)

		var list workouts.ListResponse
		s.doJSON(ctx, "GET", "/workouts/list/page/1/size/50", token, nil, http.StatusOK, &list)
		s.Equal(2, list.Total)
	})

	s.Run("case variant custom names are rejected", func() {
		status, _ := s.doRequest(ctx, "POST", "/data/import", token, appdata.AppData{
			CustomExercises: []library.CustomExercise{
				{Name: "Hammer Curls", MuscleGroup: "Arms"},
				{Name: "hammer curls", MuscleGroup: "Arms"},
			},
		})
		s.Equal(http.StatusBadRequest, status)
	})

	s.Run("invalid document keeps data", func() {
		status, _ := s.doRequest(ctx, "POST", "/data/import", token, appdata.AppData{
			Workouts: []fitness.Workout{{Exercises: []fitness.Exercise{{Name: "x"}}}},
		})
		s.Equal(http.StatusBadRequest, status)

		var list workouts.ListResponse
		s.doJSON(ctx, "GET", "/workouts/list/page/1/size/50", token, nil, http.StatusOK, &list)
		s.Equal(2, list.Total)
	})
}
