package library

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"
)

type DeleteExerciseResponse struct {
	DeletedID string `json:"deletedId"`
}

type UpdateExerciseResponse struct {
	UpdatedID string `json:"updatedId"`
}

type MuscleGroupsResponse struct {
	Groups    []string            `json:"groups"`
	Exercises []PreloadedExercise `json:"exercises"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.library.list")
	defer span.End()

	exercises, err := handler.service.Custom(ctx)
	if err != nil {
		log.Errorf("failed to list custom exercises: %s", err)
		http.Error(w, "failed to list custom exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.library.add")
	defer span.End()

	exercise, ok := decodeExercise(w, r)
	if !ok {
		return
	}

	added, err := handler.service.Add(ctx, exercise)
	if err != nil {
		writeError(w, "add", err)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.library.update")
	defer span.End()

	exercise, ok := decodeExercise(w, r)
	if !ok {
		return
	}

	if err := handler.service.Update(ctx, exercise); err != nil {
		writeError(w, "update", err)
		return
	}
	pkg.WriteJSON(w, UpdateExerciseResponse{UpdatedID: exercise.ID}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.library.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		writeError(w, "delete", err)
		return
	}
	pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.library.available")
	defer span.End()

	names, err := handler.service.Available(ctx)
	if err != nil {
		log.Errorf("failed to get available exercises: %s", err)
		http.Error(w, "failed to get available exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, names, http.StatusOK)
}

func (handler *Handler) HandleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.library.muscleGroups")
	defer span.End()

	custom, err := handler.service.Custom(ctx)
	if err != nil {
		log.Errorf("failed to list custom exercises: %s", err)
		http.Error(w, "failed to get muscle groups", http.StatusInternalServerError)
		return
	}

	resp := MuscleGroupsResponse{
		Groups:    MuscleGroups,
		Exercises: append([]PreloadedExercise{}, Preloaded...),
	}
	for _, e := range custom {
		resp.Exercises = append(resp.Exercises, PreloadedExercise{Name: e.Name, MuscleGroup: e.MuscleGroup})
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func decodeExercise(w http.ResponseWriter, r *http.Request) (CustomExercise, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return CustomExercise{}, false
	}

	var exercise CustomExercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("custom exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid exercise", http.StatusBadRequest)
		return CustomExercise{}, false
	}
	return exercise, true
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidExercise):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrCustomExerciseNotFound):
		http.Error(w, "custom exercise not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicateExercise):
		http.Error(w, ErrDuplicateExercise.Error(), http.StatusConflict)
	default:
		log.Errorf("failed to %s custom exercise: %s", op, err)
		http.Error(w, "failed to "+op+" custom exercise", http.StatusInternalServerError)
	}
}
