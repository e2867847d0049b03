package goals

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	progress, err := handler.service.ListProgress(ctx)
	if err != nil {
		log.Errorf("failed to list goals: %s", err)
		http.Error(w, "failed to list goals", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.add")
	defer span.End()

	goal, ok := decodeGoal(w, r)
	if !ok {
		return
	}

	added, err := handler.service.Add(ctx, goal)
	if err != nil {
		writeError(w, "add", err)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.update")
	defer span.End()

	goal, ok := decodeGoal(w, r)
	if !ok {
		return
	}

	if err := handler.service.Update(ctx, goal); err != nil {
		writeError(w, "update", err)
		return
	}
	pkg.WriteJSON(w, map[string]string{"updatedId": goal.ID}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
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
	pkg.WriteJSON(w, map[string]string{"deletedId": id}, http.StatusOK)
}

func decodeGoal(w http.ResponseWriter, r *http.Request) (Goal, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return Goal{}, false
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("goal, unmarshal json params: %s", err)
		http.Error(w, "invalid goal", http.StatusBadRequest)
		return Goal{}, false
	}
	return goal, true
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidGoal):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	default:
		log.Errorf("failed to %s goal: %s", op, err)
		http.Error(w, "failed to "+op+" goal", http.StatusInternalServerError)
	}
}
