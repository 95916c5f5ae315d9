package tracer

import (
	"context"

	"customer-insight-be/internal/config"
	"customer-insight-be/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// InitTracer installs the global tracer provider when tracing is enabled.
// Exporter failures are logged and leave tracing off; the service still starts.
func InitTracer(ctx context.Context, cfg config.TracingConfig, log logger.ILogger) ShutdownFunc {
	if !cfg.Enabled {
		log.Info("TRACER", "Tracing disabled", nil)
		return noop
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Warn("TRACER", "OTLP exporter unavailable, tracing disabled", map[string]interface{}{
			"endpoint": cfg.Endpoint,
			"error":    err.Error(),
		})
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)

	log.Info("TRACER", "Tracer initialized", map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"service":  cfg.ServiceName,
	})
	return tp.Shutdown
}
