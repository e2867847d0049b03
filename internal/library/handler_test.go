package library_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/vibefit/internal/library"
)

func newTestRouter(t *testing.T) (*mux.Router, *MocklibraryRepo) {
	ctrl := gomock.NewController(t)
	repoMock := NewMocklibraryRepo(ctrl)
	h := library.NewHandler(library.NewService(repoMock))

	r := mux.NewRouter()
	r.HandleFunc("/library/exercises", h.HandleList).Methods("GET")
	r.HandleFunc("/library/exercises", h.HandleAdd).Methods("POST")
	r.HandleFunc("/library/exercises", h.HandleUpdate).Methods("PUT")
	r.HandleFunc("/library/exercises/{id}", h.HandleDelete).Methods("DELETE")
	r.HandleFunc("/library/available", h.HandleAvailable).Methods("GET")
	r.HandleFunc("/library/muscle-groups", h.HandleMuscleGroups).Methods("GET")
	return r, repoMock
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Add(t *testing.T) {
	r, repoMock := newTestRouter(t)

	repoMock.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil, library.ErrDuplicateExercise)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/library/exercises", `{"name":"Squat","muscleGroup":"Legs"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/library/exercises", `{"name":"S","muscleGroup":"Legs"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 2 characters")
}

func TestHandler_UpdateDelete(t *testing.T) {
	r, repoMock := newTestRouter(t)

	repoMock.EXPECT().Update(gomock.Any(), library.CustomExercise{ID: "e1", Name: "Dips", MuscleGroup: "Arms"}).Return(nil)
	repoMock.EXPECT().Delete(gomock.Any(), "e1").Return(&library.CustomExercise{ID: "e1", Name: "Dips"}, nil)
	repoMock.EXPECT().Delete(gomock.Any(), "e2").Return(nil, library.ErrCustomExerciseNotFound)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPut, "/library/exercises", `{"id":"e1","name":"Dips","muscleGroup":"Arms"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updatedId":"e1"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/library/exercises/e1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deletedId":"e1"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/library/exercises/e2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_MuscleGroups(t *testing.T) {
	r, repoMock := newTestRouter(t)

	repoMock.EXPECT().List(gomock.Any()).Return([]library.CustomExercise{
		{ID: "e1", Name: "Hammer Curls", MuscleGroup: "Arms"},
	}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/muscle-groups", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp library.MuscleGroupsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, library.MuscleGroups, resp.Groups)
	require.Len(t, resp.Exercises, len(library.Preloaded)+1)
	assert.Equal(t, "Hammer Curls", resp.Exercises[len(resp.Exercises)-1].Name)
}

func TestHandler_Available(t *testing.T) {
	r, repoMock := newTestRouter(t)

	repoMock.EXPECT().List(gomock.Any()).Return([]library.CustomExercise{}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/available", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, "Barbell Row", names[0])
	assert.Equal(t, "Tricep Pushdown", names[len(names)-1])
}
