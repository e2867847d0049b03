package stats

import (
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/pkg"
)

const dashboardRecords = 3

type StreakResponse struct {
	Streak int `json:"streak"`
}

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.records")
	defer span.End()

	limit, ok := intQueryParam(w, r, "limit", 0)
	if !ok {
		return
	}

	records, err := handler.analyzer.Records(ctx, limit)
	if err != nil {
		writeError(w, "records", err)
		return
	}
	pkg.WriteJSON(w, records, http.StatusOK)
}

func (handler *Handler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.streak")
	defer span.End()

	streak, err := handler.analyzer.Streak(ctx)
	if err != nil {
		writeError(w, "streak", err)
		return
	}
	pkg.WriteJSON(w, StreakResponse{Streak: streak}, http.StatusOK)
}

func (handler *Handler) HandleQuick(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.quick")
	defer span.End()

	quick, err := handler.analyzer.Quick(ctx)
	if err != nil {
		writeError(w, "quick stats", err)
		return
	}
	pkg.WriteJSON(w, quick, http.StatusOK)
}

func (handler *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weekly")
	defer span.End()

	weekly, err := handler.analyzer.Weekly(ctx)
	if err != nil {
		writeError(w, "weekly overview", err)
		return
	}
	pkg.WriteJSON(w, weekly, http.StatusOK)
}

func (handler *Handler) HandleCalories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.calories")
	defer span.End()

	calories, err := handler.analyzer.Calories(ctx)
	if err != nil {
		writeError(w, "calorie burn", err)
		return
	}
	pkg.WriteJSON(w, calories, http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.progress")
	defer span.End()

	progress, err := handler.analyzer.Progress(ctx)
	if err != nil {
		writeError(w, "weekly progress", err)
		return
	}
	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (handler *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.trend")
	defer span.End()

	trend, err := handler.analyzer.Trend(ctx, r.URL.Query().Get("exercise"))
	if err != nil {
		writeError(w, "trend", err)
		return
	}
	pkg.WriteJSON(w, trend, http.StatusOK)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.today")
	defer span.End()

	today, err := handler.analyzer.Today(ctx)
	if err != nil {
		writeError(w, "today summary", err)
		return
	}
	pkg.WriteJSON(w, today, http.StatusOK)
}

func (handler *Handler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.heatmap")
	defer span.End()

	days, ok := intQueryParam(w, r, "days", DefaultHeatmapDays)
	if !ok {
		return
	}
	if days < 1 || days > 365 {
		http.Error(w, "error, days must be between 1 and 365", http.StatusBadRequest)
		return
	}

	heatmap, err := handler.analyzer.Heatmap(ctx, days)
	if err != nil {
		writeError(w, "heatmap", err)
		return
	}
	pkg.WriteJSON(w, heatmap, http.StatusOK)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.dashboard")
	defer span.End()

	dashboard, err := handler.analyzer.Dashboard(ctx, dashboardRecords)
	if err != nil {
		writeError(w, "dashboard", err)
		return
	}
	pkg.WriteJSON(w, dashboard, http.StatusOK)
}

func intQueryParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		http.Error(w, "error, invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func writeError(w http.ResponseWriter, what string, err error) {
	log.Errorf("failed to get %s: %s", what, err)
	http.Error(w, "failed to get "+what, http.StatusInternalServerError)
}
