package telemetry

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Init configures the global tracer provider with an OTLP HTTP
// exporter. Tracing is opt-in: it activates only when ENABLE_TELEMETRY
// is truthy and OTEL_EXPORTER_OTLP_ENDPOINT is set. Setup problems are
// logged and the process continues untraced; the returned shutdown
// flushes pending spans and is always safe to call.
func Init(ctx context.Context) func(context.Context) error {
	noop := func(context.Context) error { return nil }

	if enabled := strings.ToLower(os.Getenv("ENABLE_TELEMETRY")); enabled != "true" && enabled != "1" {
		log.Info().Msg("Telemetry disabled")
		return noop
	}

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		log.Warn().Msg("ENABLE_TELEMETRY is set but OTEL_EXPORTER_OTLP_ENDPOINT is not, tracing stays off")
		return noop
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create OTLP exporter, continuing without tracing")
		return noop
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "harborcrm-api"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(os.Getenv("OTEL_SERVICE_VERSION")),
		),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to describe telemetry resource, continuing without tracing")
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info().
		Str("endpoint", endpoint).
		Str("service", serviceName).
		Msg("Telemetry initialized")

	return tp.Shutdown
}
