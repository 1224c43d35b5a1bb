package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Setup installs a process-wide TracerProvider. When enabled is false it
// installs a sampler that drops every span (AlwaysOff), so StartXSpan
// calls remain cheap no-ops without the caller needing to branch on
// config. Callers must call the returned shutdown func before exit.
func Setup(ctx context.Context, enabled bool) (shutdown func(context.Context) error) {
	sampler := sdktrace.NeverSample()
	if enabled {
		sampler = sdktrace.AlwaysSample()
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sampler))
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
