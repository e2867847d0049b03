package mcp

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

const SecretHeader = "X-MCP-Secret"

// NewServer builds an MCP server with read-only vibefit tools. It is served
// over stdio by cmd/vibefit_mcp and mounted at /mcp by the main backend.
func NewServer(deps Deps, loc *time.Location) *mcp.Server {
	h := NewHandler(NewContextService(deps), loc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "vibefit-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_vibefit_schema",
		Description: "Returns the DB schema of the vibefit tables (workout, workout_exercise, exercise_set, custom_exercise, personal_goal, user_profile): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workouts_for_time_range",
		Description: "Returns workouts (exercises and sets) performed within the given date range. Args: from_date, to_date (YYYY-MM-DD, inclusive).",
	}, h.GetWorkoutsForTimeRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_personal_records",
		Description: "Returns the heaviest completed set per exercise. Optional arg: exercise (substring of the exercise name).",
	}, h.GetPersonalRecordsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_streak",
		Description: "Returns the number of consecutive days with a workout, counting back from today (or yesterday when today has none yet).",
	}, h.GetStreakTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_library",
		Description: "Returns the preloaded exercises, the user's custom exercises and the combined sorted list of available names.",
	}, h.GetExerciseLibraryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_goals_progress",
		Description: "Returns every personal goal with the current best lift, progress percent and whether it is achieved.",
	}, h.GetGoalsProgressTool())

	return s
}

// NewHTTPHandler serves the server over streamable HTTP. Requests must carry
// the shared secret in the X-MCP-Secret header.
func NewHTTPHandler(s *mcp.Server, secret string) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s
	}, nil)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(SecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			log.Tracef("mcp: rejected request from %s", r.RemoteAddr)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		streamable.ServeHTTP(w, r)
	})
}
