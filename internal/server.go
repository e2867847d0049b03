package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/coocood/freecache"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/vibefit/internal/appdata"
	"github.com/2beens/vibefit/internal/auth"
	"github.com/2beens/vibefit/internal/coach"
	"github.com/2beens/vibefit/internal/config"
	"github.com/2beens/vibefit/internal/db"
	"github.com/2beens/vibefit/internal/goals"
	"github.com/2beens/vibefit/internal/library"
	"github.com/2beens/vibefit/internal/mcp"
	"github.com/2beens/vibefit/internal/middleware"
	"github.com/2beens/vibefit/internal/misc"
	"github.com/2beens/vibefit/internal/profile"
	"github.com/2beens/vibefit/internal/stats"
	"github.com/2beens/vibefit/internal/telemetry/metrics"
	"github.com/2beens/vibefit/internal/telemetry/tracing"
	"github.com/2beens/vibefit/internal/templates"
	"github.com/2beens/vibefit/internal/workouts"
)

const defaultOtelServiceName = "vibefit-backend"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	secrets *config.Secrets
	dbPool  *pgxpool.Pool
	domain  *domain

	quotesManager *misc.QuotesManager
	templates     *templates.Catalog
	coach         *coach.Coach

	redisClient     *redis.Client
	loginChecker    *auth.LoginChecker
	authService     *auth.Service
	sessionsCleanup *cron.Cron

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

// cleanups run in reverse order of registration, like defers.
type cleanups []func()

func (c *cleanups) add(f func()) {
	*c = append(*c, f)
}

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (_ *Server, err error) {
	cfg := params.Config
	secrets := params.Secrets
	if secrets == nil {
		secrets = &config.Secrets{}
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     secrets.PostgresPassword,
		TracingEnabled: secrets.HoneycombEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	var onFailure cleanups
	defer func() {
		if err != nil {
			onFailure.run()
		}
	}()
	onFailure.add(dbPool.Close)

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	if err := db.EnsureSchema(ctx, dbPool); err != nil {
		return nil, err
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(params.VersionInfo, pgxpoolCollector)
	metricsManager := metrics.NewManager(metrics.Namespace, metrics.Subsystem, promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0,
	})
	onFailure.add(func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	})
	if secrets.HoneycombEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     secrets.AdminUsername,
		PasswordHash: secrets.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	sessionsCleanup, err := authService.ScheduleCleanup(ctx, cfg.SessionsCleanupSchedule)
	if err != nil {
		return nil, fmt.Errorf("schedule sessions cleanup: %w", err)
	}
	onFailure.add(sessionsCleanup.Stop)

	serviceName := secrets.OtelServiceName
	if serviceName == "" {
		serviceName = defaultOtelServiceName
	}
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, serviceName)
	if err != nil {
		return nil, err
	}
	onFailure.add(otelShutdown)

	quotesManager, err := misc.NewEmbeddedQuoteManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create quote manager: %w", err)
	}

	catalog, err := templates.Embedded()
	if err != nil {
		return nil, fmt.Errorf("load workout templates: %w", err)
	}

	s := &Server{
		config:      cfg,
		secrets:     secrets,
		dbPool:      dbPool,
		domain:      newDomain(dbPool, metricsManager, cfg.Location()),
		versionInfo: params.VersionInfo,

		quotesManager: quotesManager,
		templates:     catalog,
		coach:         newCoach(ctx, cfg, secrets, metricsManager),

		redisClient:     rdb,
		authService:     authService,
		loginChecker:    auth.NewLoginChecker(auth.DefaultTTL, rdb),
		sessionsCleanup: sessionsCleanup,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.SeedDemoData {
		seeded, err := s.domain.store.SeedIfEmpty(ctx, time.Now())
		if err != nil {
			log.Errorf("seed demo data: %s", err)
		} else if seeded {
			log.Infoln("empty database seeded with demo data")
		}
	}

	return s, nil
}

func newCoach(
	ctx context.Context,
	cfg *config.Config,
	secrets *config.Secrets,
	metricsManager *metrics.Manager,
) *coach.Coach {
	params := coach.Params{
		Cache:          freecache.NewCache(cfg.CoachTipCacheSizeMB * 1024 * 1024),
		TipTTL:         time.Duration(cfg.CoachTipCacheSeconds) * time.Second,
		MetricsManager: metricsManager,
	}

	gemini, err := coach.NewGemini(ctx, secrets.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warnf("coach running without a model: %s", err)
		return coach.New(coach.Disabled{}, params)
	}
	return coach.New(gemini, params)
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	workoutsHandler := workouts.NewHandler(s.domain.workouts)
	r.HandleFunc("/workouts", workoutsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/quick", workoutsHandler.HandleQuickAdd).Methods("POST", "OPTIONS").Name("quick-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/workouts/list/page/{page}/size/{size}", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")

	libraryHandler := library.NewHandler(s.domain.library)
	r.HandleFunc("/library/exercises", libraryHandler.HandleList).Methods("GET", "OPTIONS").Name("list-custom-exercises")
	r.HandleFunc("/library/exercises", libraryHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-custom-exercise")
	r.HandleFunc("/library/exercises", libraryHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-custom-exercise")
	r.HandleFunc("/library/exercises/{id}", libraryHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-custom-exercise")
	r.HandleFunc("/library/available", libraryHandler.HandleAvailable).Methods("GET", "OPTIONS").Name("available-exercises")
	r.HandleFunc("/library/muscle-groups", libraryHandler.HandleMuscleGroups).Methods("GET", "OPTIONS").Name("muscle-groups")

	goalsHandler := goals.NewHandler(s.domain.goals)
	r.HandleFunc("/goals", goalsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals", goalsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals", goalsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-goal")

	profileHandler := profile.NewHandler(s.domain.profiles)
	r.HandleFunc("/profile", profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", profileHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-profile")

	dataHandler := appdata.NewHandler(s.domain.store)
	r.HandleFunc("/data", dataHandler.HandleExport).Methods("GET", "OPTIONS").Name("export-data")
	r.HandleFunc("/data/import", dataHandler.HandleImport).Methods("POST", "OPTIONS").Name("import-data")

	statsHandler := stats.NewHandler(s.domain.analyzer)
	r.HandleFunc("/stats/records", statsHandler.HandleRecords).Methods("GET", "OPTIONS").Name("stats-records")
	r.HandleFunc("/stats/streak", statsHandler.HandleStreak).Methods("GET", "OPTIONS").Name("stats-streak")
	r.HandleFunc("/stats/quick", statsHandler.HandleQuick).Methods("GET", "OPTIONS").Name("stats-quick")
	r.HandleFunc("/stats/weekly", statsHandler.HandleWeekly).Methods("GET", "OPTIONS").Name("stats-weekly")
	r.HandleFunc("/stats/calories", statsHandler.HandleCalories).Methods("GET", "OPTIONS").Name("stats-calories")
	r.HandleFunc("/stats/progress", statsHandler.HandleProgress).Methods("GET", "OPTIONS").Name("stats-progress")
	r.HandleFunc("/stats/trend", statsHandler.HandleTrend).Methods("GET", "OPTIONS").Name("stats-trend")
	r.HandleFunc("/stats/today", statsHandler.HandleToday).Methods("GET", "OPTIONS").Name("stats-today")
	r.HandleFunc("/stats/heatmap", statsHandler.HandleHeatmap).Methods("GET", "OPTIONS").Name("stats-heatmap")
	r.HandleFunc("/stats/dashboard", statsHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("stats-dashboard")

	templatesHandler := templates.NewHandler(templates.NewService(s.templates, s.domain.workouts))
	r.HandleFunc("/templates", templatesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	r.HandleFunc("/templates/{name}", templatesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-template")
	r.HandleFunc("/templates/{name}/draft", templatesHandler.HandleDraft).Methods("GET", "OPTIONS").Name("draft-template")
	r.HandleFunc("/templates/{name}/log", templatesHandler.HandleLog).Methods("POST", "OPTIONS").Name("log-template")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	coachHandler := coach.NewHandler(s.coach, s.domain.workouts, s.domain.library)
	coachRouter := r.PathPrefix("/coach").Subrouter()
	coachRouter.HandleFunc("/tip", coachHandler.HandleTip).Methods("GET", "OPTIONS").Name("coach-tip")
	coachRouter.HandleFunc("/suggestion", coachHandler.HandleSuggestion).Methods("POST", "OPTIONS").Name("coach-suggestion")
	// every coach call costs a model request
	coachRouter.Use(middleware.RateLimit(reqRateLimiter, "coach", s.config.CoachRateLimitAllowedPerMin, s.metricsManager))

	miscHandler := misc.NewHandler(s.quotesManager, s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	if s.config.MCPEnabled {
		mcpServer := mcp.NewServer(s.domain.mcpDeps(), s.config.Location())
		r.PathPrefix("/mcp").Handler(mcp.NewHTTPHandler(mcpServer, s.secrets.MCPSecret)).Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.RequestBody(middleware.DefaultMaxBodyBytes))

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// suggestions wait on the model, with retries
		WriteTimeout: 2 * time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.sessionsCleanup != nil {
		s.sessionsCleanup.Stop()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
