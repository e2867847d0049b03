package internal

import (
	"time"

	"github.com/2beens/vibefit/internal/appdata"
	"github.com/2beens/vibefit/internal/db"
	"github.com/2beens/vibefit/internal/goals"
	"github.com/2beens/vibefit/internal/library"
	"github.com/2beens/vibefit/internal/mcp"
	"github.com/2beens/vibefit/internal/profile"
	"github.com/2beens/vibefit/internal/stats"
	"github.com/2beens/vibefit/internal/telemetry/metrics"
	"github.com/2beens/vibefit/internal/workouts"
)

// domain holds the services sharing one db connection.
type domain struct {
	conn        db.Conn
	workouts    *workouts.Service
	library     *library.Service
	libraryRepo *library.Repo
	goals       *goals.Service
	profiles    *profile.Repo
	analyzer    *stats.Analyzer
	store       *appdata.Store
}

func newDomain(conn db.Conn, metricsManager *metrics.Manager, loc *time.Location) *domain {
	workoutsService := workouts.NewService(workouts.NewRepo(conn), metricsManager)
	libraryRepo := library.NewRepo(conn)
	profiles := profile.NewRepo(conn)

	return &domain{
		conn:        conn,
		workouts:    workoutsService,
		library:     library.NewService(libraryRepo),
		libraryRepo: libraryRepo,
		goals:       goals.NewService(goals.NewRepo(conn), workoutsService),
		profiles:    profiles,
		analyzer:    stats.NewAnalyzer(workoutsService, profiles, libraryRepo, loc),
		store:       appdata.NewStore(conn),
	}
}

func (d *domain) mcpDeps() mcp.Deps {
	return mcp.Deps{
		Schema:   mcp.NewSchemaRepo(d.conn),
		Workouts: d.workouts,
		Streak:   d.analyzer,
		Library:  d.library,
		Goals:    d.goals,
	}
}

// NewMCPDeps wires the MCP tools straight to the database, for the stdio binary.
func NewMCPDeps(conn db.Conn, loc *time.Location) mcp.Deps {
	return newDomain(conn, nil, loc).mcpDeps()
}
