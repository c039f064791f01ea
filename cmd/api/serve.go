// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/glowguard-api/internal/classifier"
	"github.com/carterperez-dev/glowguard-api/internal/config"
	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/health"
	"github.com/carterperez-dev/glowguard-api/internal/inference"
	"github.com/carterperez-dev/glowguard-api/internal/knowledge"
	"github.com/carterperez-dev/glowguard-api/internal/preprocess"
	"github.com/carterperez-dev/glowguard-api/internal/product"
	"github.com/carterperez-dev/glowguard-api/internal/server"
	"github.com/carterperez-dev/glowguard-api/internal/upload"
)

//nolint:funlen // bootstrap code is inherently verbose
func runServe(ctx context.Context, configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	flushSentry, err := core.InitSentry(cfg.Sentry, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize sentry", "error", err)
		flushSentry = func() {}
	}
	defer flushSentry()

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Catalog.SeedOnStart {
		if err := seedCatalog(ctx, db); err != nil {
			_ = db.Close() //nolint:errcheck // startup failure
			return err
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close() //nolint:errcheck // startup failure
		return err
	}
	if redis.Enabled() {
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	} else {
		logger.Info("redis not configured, using in-process limits and revocations")
	}

	store, err := upload.NewStore(cfg.Upload)
	if err != nil {
		_ = redis.Close() //nolint:errcheck // startup failure
		_ = db.Close()    //nolint:errcheck // startup failure
		return err
	}

	clf, pre, err := loadClassifier(cfg.Model, logger)
	if err != nil {
		logger.Error("classifier unavailable, prediction routes disabled",
			"error", err,
		)
	}

	var metrics *core.Metrics
	if cfg.Metrics.Enabled {
		metrics = core.NewMetrics()
		metrics.RegisterDatabase(db.DB.DB)
		metrics.RegisterRedis(redis)
	}

	checks := []health.Check{
		{Name: "database", Checker: db},
		{Name: "classifier", Checker: clf, Optional: true},
	}
	if redis.Enabled() {
		checks = append(checks, health.Check{Name: "redis", Checker: redis})
	}
	healthHandler := health.NewHandler(checks...)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	err = registerRoutes(srv.Router(), routeDeps{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		redis:        redis,
		metrics:      metrics,
		health:       healthHandler,
		classifier:   clf,
		preprocessor: pre,
		store:        store,
		knowledge:    knowledge.Default(),
	})
	if err != nil {
		_ = clf.Close()   //nolint:errcheck // startup failure
		_ = redis.Close() //nolint:errcheck // startup failure
		_ = db.Close()    //nolint:errcheck // startup failure
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+cfg.Server.DrainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, cfg.Server.DrainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := clf.Close(); err != nil {
		logger.Error("classifier close error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func runMigrate(ctx context.Context, configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return db.Close()
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits next

	return seedCatalog(ctx, db)
}

// openDatabase connects and brings the schema up to date.
func openDatabase(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*core.Database, error) {
	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected",
		"dialect", db.Dialect,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)

	if err := core.Migrate(ctx, db); err != nil {
		_ = db.Close() //nolint:errcheck // startup failure
		return nil, err
	}

	return db, nil
}

func seedCatalog(ctx context.Context, db *core.Database) error {
	entries, err := product.DefaultCatalog()
	if err != nil {
		return err
	}

	if _, err := product.Seed(ctx, db, entries); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	return nil
}

// loadClassifier wires the label map, training metadata and model file into
// a classifier plus the preprocessor matching its input. Metadata values
// take precedence over configured defaults; the loaded model's input shape
// takes precedence over both. Any error leaves the service without a
// classifier.
func loadClassifier(
	cfg config.ModelConfig,
	logger *slog.Logger,
) (*classifier.Classifier, *preprocess.Preprocessor, error) {
	labels, err := classifier.LoadLabelMap(cfg.LabelsPath)
	if err != nil {
		return nil, nil, err
	}

	meta, err := classifier.LoadMetadata(cfg.MetadataPath)
	if err != nil {
		return nil, nil, err
	}

	pre, err := newPreprocessor(cfg, meta)
	if err != nil {
		return nil, nil, err
	}

	model, degraded, err := inference.Load(inference.Config{
		Path:         cfg.Path,
		FallbackPath: cfg.FallbackPath,
		Threads:      cfg.Threads,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	clf, pre, err := bindModel(model, labels, degraded, pre, logger)
	if err != nil {
		_ = model.Close() //nolint:errcheck // startup failure
		return nil, nil, err
	}

	logger.Info("classifier ready",
		"classes", len(labels),
		"preprocessing", pre.Mode(),
		"input_len", pre.InputLen(),
		"degraded", degraded,
		"model_type", meta.ModelType,
	)

	return clf, pre, nil
}

// shapedModel is a classifier model that reports its input tensor shape.
type shapedModel interface {
	classifier.Model
	InputShape() []int
}

// bindModel fits pre to the model input so a fallback model or stale
// metadata cannot leave every request failing on a tensor size mismatch.
func bindModel(
	model shapedModel,
	labels classifier.LabelMap,
	degraded bool,
	pre *preprocess.Preprocessor,
	logger *slog.Logger,
) (*classifier.Classifier, *preprocess.Preprocessor, error) {
	fitted, err := pre.Fit(model.InputShape())
	if err != nil {
		return nil, nil, err
	}

	if fitted != pre {
		w, h := fitted.Size()
		logger.Warn("model input differs from configured size, following the model",
			"width", w,
			"height", h,
		)
	}

	return classifier.New(model, labels, classifier.Options{Degraded: degraded}), fitted, nil
}

func newPreprocessor(
	cfg config.ModelConfig,
	meta classifier.Metadata,
) (*preprocess.Preprocessor, error) {
	width, height := cfg.InputWidth, cfg.InputHeight
	if w, h, ok := meta.InputSize(); ok {
		width, height = w, h
	}

	mode := cfg.Preprocessing
	if m := meta.PreprocessMode(); m != "" {
		mode = m
	}

	return preprocess.New(preprocess.Config{
		Width:        width,
		Height:       height,
		Mode:         preprocess.Mode(mode),
		ChannelOrder: cfg.ChannelOrder,
	})
}
