package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"
)

const suggestionHistorySize = 5

type historySource interface {
	ListAll(ctx context.Context) ([]fitness.Workout, error)
	PersonalRecords(ctx context.Context) ([]fitness.PersonalRecord, error)
}

type exercisesSource interface {
	Available(ctx context.Context) ([]string, error)
}

type TipResponse struct {
	MotivationMessage string `json:"motivationMessage"`
}

type SuggestionRequest struct {
	FitnessGoals string `json:"fitnessGoals"`
	WorkoutSplit string `json:"workoutSplit"`
}

type Handler struct {
	coach     *Coach
	history   historySource
	exercises exercisesSource
}

func NewHandler(coach *Coach, history historySource, exercises exercisesSource) *Handler {
	return &Handler{
		coach:     coach,
		history:   history,
		exercises: exercises,
	}
}

func (handler *Handler) HandleTip(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.tip")
	defer span.End()

	workouts, err := handler.history.ListAll(ctx)
	if err != nil {
		log.Errorf("coach tip, list workouts: %s", err)
		pkg.WriteJSON(w, TipResponse{MotivationMessage: FallbackTip}, http.StatusOK)
		return
	}

	tip := handler.coach.Motivation(ctx, workouts, r.URL.Query().Get("goals"))
	pkg.WriteJSON(w, TipResponse{MotivationMessage: tip}, http.StatusOK)
}

func (handler *Handler) HandleSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.suggestion")
	defer span.End()

	var req SuggestionRequest
	if r.ContentLength != 0 {
		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid content type", http.StatusBadRequest)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Tracef("suggestion, unmarshal json params: %s", err)
			http.Error(w, "invalid suggestion request", http.StatusBadRequest)
			return
		}
	}

	in := SuggestionInput{
		FitnessGoals: req.FitnessGoals,
		WorkoutSplit: req.WorkoutSplit,
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		workouts, err := handler.history.ListAll(gCtx)
		if err != nil {
			return err
		}
		if len(workouts) > suggestionHistorySize {
			workouts = workouts[:suggestionHistorySize]
		}
		in.Workouts = workouts
		return nil
	})
	g.Go(func() error {
		records, err := handler.history.PersonalRecords(gCtx)
		in.Records = records
		return err
	})
	g.Go(func() error {
		available, err := handler.exercises.Available(gCtx)
		in.AvailableExercises = available
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorf("suggestion, load user data: %s", err)
		http.Error(w, "failed to load workout data", http.StatusInternalServerError)
		return
	}

	suggestion, err := handler.coach.Suggest(ctx, in)
	if err != nil {
		if errors.Is(err, ErrCoachDisabled) {
			http.Error(w, "coach not available", http.StatusServiceUnavailable)
			return
		}
		log.Errorf("failed to suggest workout: %s", err)
		http.Error(w, "failed to suggest workout, try again", http.StatusBadGateway)
		return
	}

	pkg.WriteJSON(w, suggestion, http.StatusOK)
}
