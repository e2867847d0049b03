package appdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=appdata_mocks_test.go -package=appdata_test

type dataStore interface {
	Export(ctx context.Context) (*AppData, error)
	Import(ctx context.Context, doc AppData) error
}

type ImportResponse struct {
	Workouts        int `json:"workouts"`
	CustomExercises int `json:"customExercises"`
	PersonalGoals   int `json:"personalGoals"`
}

type Handler struct {
	store dataStore
}

func NewHandler(store dataStore) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.appdata.export")
	defer span.End()

	doc, err := handler.store.Export(ctx)
	if err != nil {
		log.Errorf("failed to export app data: %s", err)
		http.Error(w, "failed to export app data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="vibefit_data.json"`)
	pkg.WriteJSON(w, doc, http.StatusOK)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.appdata.import")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var doc AppData
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Tracef("import, unmarshal json params: %s", err)
		http.Error(w, "invalid app data document", http.StatusBadRequest)
		return
	}

	if err := handler.store.Import(ctx, doc); err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to import app data: %s", err)
		http.Error(w, "failed to import app data", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ImportResponse{
		Workouts:        len(doc.Workouts),
		CustomExercises: len(doc.CustomExercises),
		PersonalGoals:   len(doc.PersonalGoals),
	}, http.StatusOK)
}
