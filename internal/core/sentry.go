// AngelaMos | 2026
// sentry.go

package core

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/carterperez-dev/glowguard-api/internal/config"
)

// InitSentry configures error reporting. Without a DSN it is a no-op and
// CaptureException calls are discarded by the SDK.
func InitSentry(
	sentryCfg config.SentryConfig,
	appCfg config.AppConfig,
) (flush func(), err error) {
	if sentryCfg.DSN == "" {
		return func() {}, nil
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              sentryCfg.DSN,
		SampleRate:       sentryCfg.SampleRate,
		Environment:      appCfg.Environment,
		Release:          appCfg.Name + "@" + appCfg.Version,
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}
