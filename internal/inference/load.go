// AngelaMos | 2026
// load.go

package inference

import (
	"errors"
	"fmt"
	"log/slog"
)

type Config struct {
	Path         string
	FallbackPath string
	Threads      int
}

// Load opens the primary model, or the fallback model when the primary
// cannot be used. degraded is true whenever the fallback is serving.
func Load(cfg Config, logger *slog.Logger) (model *TFLiteModel, degraded bool, err error) {
	primary, primaryErr := Open(cfg.Path, cfg.Threads, logger)
	if primaryErr == nil {
		logger.Info("classifier model loaded",
			"path", cfg.Path,
			"input_shape", primary.InputShape(),
		)
		return primary, false, nil
	}

	if cfg.FallbackPath == "" {
		return nil, false, fmt.Errorf("load model: %w", primaryErr)
	}

	logger.Warn("primary model unavailable, loading fallback",
		"path", cfg.Path,
		"fallback", cfg.FallbackPath,
		"error", primaryErr,
	)

	fallback, fallbackErr := Open(cfg.FallbackPath, cfg.Threads, logger)
	if fallbackErr != nil {
		return nil, false, fmt.Errorf(
			"load model: %w",
			errors.Join(primaryErr, fallbackErr),
		)
	}

	logger.Warn("serving degraded fallback model",
		"path", cfg.FallbackPath,
		"input_shape", fallback.InputShape(),
	)

	return fallback, true, nil
}
