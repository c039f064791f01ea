// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/glowguard-api/internal/config"
)

func TestDisabledTelemetryIsNoop(t *testing.T) {
	t.Parallel()

	tel, err := NewTelemetry(
		context.Background(),
		config.OtelConfig{Enabled: false, Endpoint: "localhost:4317"},
		config.AppConfig{Name: "GlowGuard API"},
	)
	require.NoError(t, err)
	assert.NoError(t, tel.Shutdown(context.Background()))

	var nilTel *Telemetry
	assert.NoError(t, nilTel.Shutdown(context.Background()))

	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()
	assert.Empty(t, TraceIDFromContext(ctx))
	SetSpanError(ctx, errors.New("ignored"))
}

func TestSampleRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.25, sampleRatio(0.25), 0)
	assert.InDelta(t, 1.0, sampleRatio(1), 0)
	assert.InDelta(t, defaultSampleRatio, sampleRatio(0), 0)
	assert.InDelta(t, defaultSampleRatio, sampleRatio(1.5), 0)
}
