package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/auth"
	mongoCategoryRepo "github.com/haguru/cookbook/internal/categoryrepo/mongo"
	postgresCategoryRepo "github.com/haguru/cookbook/internal/categoryrepo/postgres"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/middleware"
	mongoRecipeRepo "github.com/haguru/cookbook/internal/reciperepo/mongo"
	postgresRecipeRepo "github.com/haguru/cookbook/internal/reciperepo/postgres"
	"github.com/haguru/cookbook/internal/recipeservice"
	"github.com/haguru/cookbook/internal/routes"
	"github.com/haguru/cookbook/internal/server"
	"github.com/haguru/cookbook/internal/session"
	mongoUserRepo "github.com/haguru/cookbook/internal/userrepo/mongo"
	postgresUserRepo "github.com/haguru/cookbook/internal/userrepo/postgres"
	"github.com/haguru/cookbook/internal/userservice"
	"github.com/haguru/cookbook/internal/view"
	"github.com/haguru/cookbook/pkg/databases/mongo"
	"github.com/haguru/cookbook/pkg/databases/postgres"
	"github.com/haguru/cookbook/pkg/metrics"
	"github.com/haguru/cookbook/pkg/zerolog"

	chimw "github.com/go-chi/chi/v5/middleware"
	structValidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	ShutdownTimeout        = 10 * time.Second
	RateLimitSweepInterval = time.Minute
	RateLimitMaxIdle       = 10 * time.Minute

	StartTimeSeconds     = "start_time_seconds"
	StartTimeSecondsHelp = "Unix time the service started"
)

// App represents the main application, containing server and configuration.
type App struct {
	Server  interfaces.Server
	Config  *config.ServiceConfig
	Logger  interfaces.Logger
	store   interfaces.DBConnector
	limiter *middleware.ClientRateLimiter
}

// repositories are the stores for the configured database type, all backed
// by one connection.
type repositories struct {
	users      interfaces.UserRepository
	recipes    interfaces.RecipeRepository
	categories interfaces.CategoryRepository
	store      interfaces.DBConnector
}

// NewApp loads the configuration, connects to the database, provisions its
// indexes and wires the HTTP server. ctx bounds the startup work.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath, structValidator.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	metricsInstance := app.initializeMetrics()

	keys, csrfKey, err := deriveKeys(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	sessions, err := session.NewManager(keys, cfg.Session, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	renderer, err := view.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize views: %w", err)
	}

	repos, err := app.initializeRepositories(ctx)
	if err != nil {
		return nil, err
	}
	app.store = repos.store

	userService := userservice.NewUserService(repos.users, auth.NewBcryptHasher(0), logger)
	recipeService := recipeservice.NewRecipeService(repos.recipes, repos.categories, logger)

	// form errors are reported by form field name, so this validator is
	// separate from the one that checked the config
	route := routes.NewRoute(metricsInstance, userService, recipeService, sessions,
		renderer, repos.store, logger, structValidator.New())

	app.limiter = middleware.NewClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger, metricsInstance)

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)
	app.Server.Use(
		chimw.RealIP,
		middleware.RequestLogger(logger, metricsInstance),
		chimw.Recoverer,
		middleware.SecurityHeaders,
		otelhttp.NewMiddleware(cfg.ServiceName),
		csrf.Protect(csrfKey,
			csrf.Secure(cfg.Session.CookieSecure),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(route.CSRFFailure)),
		),
	)

	if err := route.Mount(app.Server, app.limiter.Middleware(http.MethodPost)); err != nil {
		app.closeStore(ctx)
		return nil, err
	}

	metricsHandler := promhttp.HandlerFor(metricsInstance.GetRegistry(), promhttp.HandlerOpts{})
	if err := app.Server.AddRoute(http.MethodGet, routes.MetricsRouteAPI, metricsHandler.ServeHTTP); err != nil {
		app.closeStore(ctx)
		return nil, fmt.Errorf("failed to add metrics route: %w", err)
	}

	metricsInstance.SetCurrentTimeGauge(StartTimeSeconds)
	return app, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// the database connection.
func (app *App) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go app.limiter.Run(sweepCtx, RateLimitSweepInterval, RateLimitMaxIdle)

	serveErr := make(chan error, 1)
	go func() { serveErr <- app.Server.ListenAndServe() }()

	select {
	case err := <-serveErr:
		app.closeStore(context.Background())
		return err
	case <-ctx.Done():
		app.Logger.Info("Shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	err := app.Server.Shutdown(shutdownCtx)
	app.closeStore(shutdownCtx)
	if err != nil {
		return err
	}

	app.Logger.Info("Server exited")
	return nil
}

func (app *App) closeStore(ctx context.Context) {
	if app.store == nil {
		return
	}
	if err := app.store.Disconnect(ctx); err != nil {
		app.Logger.Error("Failed to disconnect from database", "error", err)
	}
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounter(routes.SignupRequestsTotal, routes.SignupRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.SignupSuccessTotal, routes.SignupSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.SignupErrorsTotal, routes.SignupErrorsTotalHelp)
	appMetrics.RegisterHistogram(
		routes.SignupDurationSeconds,
		routes.SignupDurationSecondsHelp,
		routes.SignupDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.LoginRequestsTotal, routes.LoginRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.LoginSuccessTotal, routes.LoginSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.LoginFailedTotal, routes.LoginFailedTotalHelp)
	appMetrics.RegisterHistogram(
		routes.LoginDurationSeconds,
		routes.LoginDurationSecondsHelp,
		routes.LoginDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.RecipeCreatedTotal, routes.RecipeCreatedTotalHelp)
	appMetrics.RegisterCounter(routes.RecipeUpdatedTotal, routes.RecipeUpdatedTotalHelp)
	appMetrics.RegisterCounter(routes.RecipeDeletedTotal, routes.RecipeDeletedTotalHelp)
	appMetrics.RegisterCounter(routes.RecipeViewsTotal, routes.RecipeViewsTotalHelp)
	appMetrics.RegisterCounter(routes.RecipeSearchesTotal, routes.RecipeSearchesTotalHelp)
	appMetrics.RegisterCounterVec(routes.ErrorResponsesTotal, routes.ErrorResponsesTotalHelp, routes.ErrorResponsesLabels)

	appMetrics.RegisterCounter(middleware.RateLimitedTotal, middleware.RateLimitedTotalHelp)
	appMetrics.RegisterHistogramVec(
		middleware.HTTPRequestDurationSeconds,
		middleware.HTTPRequestDurationSecondsHelp,
		middleware.HTTPRequestDurationSecondsBuckets,
		middleware.HTTPRequestDurationLabels)

	appMetrics.RegisterGauge(StartTimeSeconds, StartTimeSecondsHelp)

	return appMetrics
}

// deriveKeys expands the configured secret into the session keys and the
// CSRF key.
func deriveKeys(secret string) (session.Keys, []byte, error) {
	purposes := []string{auth.PurposeSessionToken, auth.PurposeCookieHash, auth.PurposeCookieBlock, auth.PurposeCSRF}
	derived := make(map[string][]byte, len(purposes))
	for _, purpose := range purposes {
		key, err := auth.DeriveKey(secret, purpose)
		if err != nil {
			return session.Keys{}, nil, err
		}
		derived[purpose] = key
	}

	return session.Keys{
		TokenSigning: derived[auth.PurposeSessionToken],
		CookieHash:   derived[auth.PurposeCookieHash],
		CookieBlock:  derived[auth.PurposeCookieBlock],
	}, derived[auth.PurposeCSRF], nil
}

func (app *App) initializeRepositories(ctx context.Context) (*repositories, error) {
	var repos *repositories
	var err error

	switch app.Config.Database.Type {
	case config.DatabaseTypeMongo:
		repos, err = app.initializeMongoRepositories(ctx)
	case config.DatabaseTypePostgres:
		repos, err = app.initializePostgresRepositories(ctx)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}
	if err != nil {
		return nil, err
	}

	// indexes are provisioned at startup, before the first request
	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{name: "users", fn: repos.users.EnsureIndices},
		{name: "recipes", fn: repos.recipes.EnsureIndices},
		{name: "categories", fn: repos.categories.EnsureIndices},
	}
	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			_ = repos.store.Disconnect(ctx)
			return nil, fmt.Errorf("failed to ensure %s indices: %w", e.name, err)
		}
	}

	return repos, nil
}

func (app *App) initializeMongoRepositories(ctx context.Context) (*repositories, error) {
	dbClient, err := mongo.NewMongoDB(&app.Config.Database.MongoDB, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	if err := dbClient.Connect(ctx, app.Config.Database.MongoDB.DSN); err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	repos := &repositories{store: dbClient}
	if repos.users, err = mongoUserRepo.NewMongoUserRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB user repository: %w", err)
	}
	if repos.recipes, err = mongoRecipeRepo.NewMongoRecipeRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB recipe repository: %w", err)
	}
	if repos.categories, err = mongoCategoryRepo.NewMongoCategoryRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB category repository: %w", err)
	}
	return repos, nil
}

func (app *App) initializePostgresRepositories(ctx context.Context) (*repositories, error) {
	dbClient := postgres.NewPostgresDatabaseClient(app.Config.Database.Postgres.Options, app.Logger)
	if err := dbClient.Connect(ctx, app.Config.Database.Postgres.DSN); err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	repos := &repositories{store: dbClient}
	var err error
	if repos.users, err = postgresUserRepo.NewPostgresUserRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL user repository: %w", err)
	}
	if repos.recipes, err = postgresRecipeRepo.NewPostgresRecipeRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL recipe repository: %w", err)
	}
	if repos.categories, err = postgresCategoryRepo.NewPostgresCategoryRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL category repository: %w", err)
	}
	return repos, nil
}
