package templates

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"
)

type DraftResponse struct {
	Template string          `json:"template"`
	Workout  fitness.Workout `json:"workout"`
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
	pkg.WriteJSON(w, handler.service.catalog.Names(), http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, ok := handler.template(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, t, http.StatusOK)
}

func (handler *Handler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	t, ok := handler.template(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, DraftResponse{Template: t.Name, Workout: t.Draft()}, http.StatusOK)
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.log")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var submission fitness.Workout
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		log.Tracef("template log, unmarshal json params: %s", err)
		http.Error(w, "invalid workout", http.StatusBadRequest)
		return
	}

	name := mux.Vars(r)["name"]
	result, err := handler.service.Log(ctx, name, submission)
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		http.Error(w, "template not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrNothingCompleted), errors.Is(err, fitness.ErrInvalidWorkout):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("failed to log %s template workout: %s", name, err)
		http.Error(w, "failed to log workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("%s template logged, %.0f%% of sets completed", name, Completion(submission))
	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) template(w http.ResponseWriter, r *http.Request) (*Template, bool) {
	t, err := handler.service.catalog.Get(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return nil, false
	}
	return t, true
}
