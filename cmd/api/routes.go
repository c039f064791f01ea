// AngelaMos | 2026
// routes.go

package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/glowguard-api/internal/auth"
	"github.com/carterperez-dev/glowguard-api/internal/classifier"
	"github.com/carterperez-dev/glowguard-api/internal/config"
	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/health"
	"github.com/carterperez-dev/glowguard-api/internal/knowledge"
	"github.com/carterperez-dev/glowguard-api/internal/middleware"
	"github.com/carterperez-dev/glowguard-api/internal/prediction"
	"github.com/carterperez-dev/glowguard-api/internal/preprocess"
	"github.com/carterperez-dev/glowguard-api/internal/product"
	"github.com/carterperez-dev/glowguard-api/internal/recommendation"
	"github.com/carterperez-dev/glowguard-api/internal/upload"
	"github.com/carterperez-dev/glowguard-api/internal/user"
)

const apiPrefix = "/api"

// routeDeps carries everything the router needs. redis, metrics and
// classifier may be nil.
type routeDeps struct {
	cfg          *config.Config
	logger       *slog.Logger
	db           *core.Database
	redis        *core.Redis
	metrics      *core.Metrics
	health       *health.Handler
	classifier   *classifier.Classifier
	preprocessor *preprocess.Preprocessor
	store        *upload.Store
	knowledge    *knowledge.Base
}

//nolint:funlen // route wiring reads best in one place
func registerRoutes(router chi.Router, d routeDeps) error {
	cfg := d.cfg

	var rdb *redis.Client
	if d.redis.Enabled() {
		rdb = d.redis.Client
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}

	userSvc := user.NewService(user.NewRepository(d.db.DB), d.store)
	authSvc := auth.NewService(
		jwtManager,
		userSvc,
		auth.NewRevocationStore(rdb),
	)

	productSvc := product.NewService(product.NewRepository(d.db.DB))
	assembler := recommendation.NewAssembler(d.knowledge, productSvc)
	recSvc := recommendation.NewService(d.db.DB, assembler)

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc, authSvc)
	productHandler := product.NewHandler(productSvc)

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(d.logger))
	router.Use(middleware.Metrics(d.metrics))
	router.Use(
		middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit: middleware.Per(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:   true,
			BypassFunc: isProbe(cfg.Metrics.Path),
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	d.health.RegisterRoutes(router)

	if d.metrics != nil {
		router.Method(http.MethodGet, cfg.Metrics.Path, d.metrics.Handler())
	}

	publicPath := strings.TrimRight(cfg.Upload.PublicPath, "/")
	router.Handle(publicPath+"/*", http.StripPrefix(
		publicPath,
		noDirectoryListing(http.FileServer(http.Dir(d.store.Dir()))),
	))

	authenticator := middleware.Authenticator(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)

	predictionSvc := prediction.NewService(prediction.Deps{
		DB:              d.db,
		Store:           d.store,
		Preprocessor:    d.preprocessor,
		Classifier:      d.classifier,
		Knowledge:       d.knowledge,
		Recommendations: recSvc,
		Metrics:         d.metrics,
		Logger:          d.logger,
		TopK:            cfg.Model.TopK,
	})
	recHandler := recommendation.NewHandler(recSvc, predictionSvc)

	analyzeLimit := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(cfg.RateLimit.AnalyzeRequests, 0),
		KeyFunc:  middleware.KeyByUser,
		FailOpen: true,
	}).Handler

	router.Route(apiPrefix, func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		productHandler.RegisterRoutes(r)

		recHandler.RegisterRoutes(r, authenticator)

		// stored predictions stay readable only while a model is serving;
		// without one every prediction route answers 503
		if d.classifier != nil {
			prediction.NewHandler(predictionSvc).RegisterRoutes(
				r,
				authenticator,
				optionalAuth,
				analyzeLimit,
			)
		} else {
			prediction.RegisterUnavailableRoutes(r)
		}
	})

	return nil
}

// isProbe exempts health probes and metric scrapes from the global limit.
func isProbe(metricsPath string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		switch r.URL.Path {
		case "/healthz", "/livez", "/readyz", metricsPath:
			return true
		}
		return false
	}
}

func noDirectoryListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			core.NotFound(w, "file")
			return
		}
		next.ServeHTTP(w, r)
	})
}
