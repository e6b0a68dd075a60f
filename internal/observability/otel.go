package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
)

// Tracing holds the installed tracer provider so the app can flush it
// on shutdown.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// SetupTracing installs a stdout-exporting tracer provider. It is
// opt-in; the caller decides from config whether to call it at all.
func SetupTracing(log *logger.Logger) (*Tracing, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create stdout trace exporter: %w", err)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	log.Info("Tracing enabled", "exporter", "stdout")
	return &Tracing{provider: provider}, nil
}

func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
