package workouts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"
)

const (
	maxPageSize = 100
	// keeps (page-1)*size far from overflowing the OFFSET
	maxPage = 1_000_000
)

type DeleteWorkoutResponse struct {
	DeletedID string `json:"deletedId"`
}

type ListResponse struct {
	Workouts []fitness.Workout `json:"workouts"`
	Total    int               `json:"total"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout fitness.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("add workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Add(ctx, workout)
	if err != nil {
		handler.writeAddError(w, err)
		return
	}

	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) HandleQuickAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.quickAdd")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var quick QuickWorkout
	if err := json.NewDecoder(r.Body).Decode(&quick); err != nil {
		log.Tracef("quick add workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	result, err := handler.service.QuickAdd(ctx, quick)
	if err != nil {
		handler.writeAddError(w, err)
		return
	}

	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) writeAddError(w http.ResponseWriter, err error) {
	if errors.Is(err, fitness.ErrInvalidWorkout) || errors.Is(err, ErrInvalidQuickWorkout) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Errorf("failed to add workout: %s", err)
	http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout %s: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %s: %s", id, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteWorkoutResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, "error, size NaN", http.StatusBadRequest)
		return
	}
	if page < 1 || page > maxPage || size < 1 || size > maxPageSize {
		http.Error(w, "error, invalid page or size", http.StatusBadRequest)
		return
	}

	workouts, total, err := handler.service.List(ctx, page, size)
	if err != nil {
		log.Errorf("failed to list workouts, page %d size %d: %s", page, size, err)
		http.Error(w, "failed to list workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{Workouts: workouts, Total: total}, http.StatusOK)
}
