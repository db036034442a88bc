// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	aboutfeature "github.com/dalemusser/stratafolio/internal/app/features/about"
	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratafolio/internal/app/features/health"
	homefeature "github.com/dalemusser/stratafolio/internal/app/features/home"
	projectsfeature "github.com/dalemusser/stratafolio/internal/app/features/projects"
	aboutstore "github.com/dalemusser/stratafolio/internal/app/store/about"
	projectstore "github.com/dalemusser/stratafolio/internal/app/store/projects"
	"github.com/dalemusser/stratafolio/internal/app/system/accesslog"
	"github.com/dalemusser/stratafolio/internal/app/system/apicors"
	"github.com/dalemusser/stratafolio/internal/app/system/auth"
	"github.com/dalemusser/stratafolio/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ServiceName appears in the API info payloads.
const ServiceName = "Stratafolio"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Layout:
//   - /, /api/test: API info
//   - /api/about, /api/projects: resources (reads public, writes behind the API key)
//   - /health, /ready, /readyz, /livez: probes
//   - <storage_local_url>/*: uploaded images (local storage only)
//
// Everything else answers a JSON 404.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Error detail reaches clients only outside production.
	errLog := errorsfeature.NewErrorLogger(logger, coreCfg.Env != "prod")
	errorsHandler := errorsfeature.NewHandler(errLog)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Access log first so it sees the final status, including recovered panics.
	r.Use(accesslog.Middleware(accesslog.DefaultConfig(logger)))
	r.Use(errorsHandler.Recoverer)

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// ─────────────────────────────────────────────────────────────────────────────
	// Probes and info
	// ─────────────────────────────────────────────────────────────────────────────

	healthHandler := healthfeature.NewHandler(deps.Health, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	homeHandler := homefeature.NewHandler(ServiceName, deps.Health, logger)
	r.Get("/", homeHandler.Index)

	// Serve uploaded files for local storage.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// ─────────────────────────────────────────────────────────────────────────────
	// API
	// ─────────────────────────────────────────────────────────────────────────────

	writeLimiter := ratelimit.New(appCfg.WriteRateLimit, appCfg.WriteRateBurst)
	writeGuard := []func(http.Handler) http.Handler{
		auth.APIKeyAuth(appCfg.APIKey, logger),
		writeLimiter.Middleware,
	}

	aboutHandler := aboutfeature.NewHandler(
		aboutstore.New(deps.MongoDatabase, logger),
		errLog,
		logger,
	)
	projectsHandler := projectsfeature.NewHandler(
		projectstore.New(deps.MongoDatabase),
		deps.Health,
		deps.FileStorage,
		errLog,
		appCfg.MaxUploadSize,
		logger,
	)

	r.Route("/api", func(api chi.Router) {
		// CORS must run before routing so preflight requests are answered.
		api.Use(apicors.Middleware(appCfg.CORSAllowedOrigins))

		api.Get("/test", homeHandler.Test)
		api.Mount("/about", aboutfeature.Routes(aboutHandler, writeGuard...))
		api.Mount("/projects", projectsfeature.Routes(projectsHandler, writeGuard...))
	})

	logger.Info("routes mounted",
		zap.Bool("api_key_required", appCfg.APIKey != ""),
		zap.Int("write_rate_limit", appCfg.WriteRateLimit),
	)
	return r, nil
}
