// Package otel wires OpenTelemetry tracing for service commands.
package otel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/eighthwonder/eighthwonder/internal/platform/config"
)

const (
	// EnvEndpoint names the OTLP HTTP collector endpoint variable.
	EnvEndpoint = "EIGHTH_WONDER_OTEL_ENDPOINT"
	// EnvEnabled names the variable that can force tracing off.
	EnvEnabled = "EIGHTH_WONDER_OTEL_ENABLED"
	// EnvSampleRatio names the root span sampling ratio variable.
	EnvSampleRatio = "EIGHTH_WONDER_OTEL_SAMPLE_RATIO"
)

// Config selects where spans go and how many root spans are kept.
type Config struct {
	Endpoint string `env:"EIGHTH_WONDER_OTEL_ENDPOINT"`
	// Enabled set to "false" turns tracing off even with an endpoint.
	Enabled     string  `env:"EIGHTH_WONDER_OTEL_ENABLED"`
	SampleRatio float64 `env:"EIGHTH_WONDER_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Active reports whether spans should be exported.
func (c Config) Active() bool {
	return strings.TrimSpace(c.Endpoint) != "" && !strings.EqualFold(strings.TrimSpace(c.Enabled), "false")
}

// Sampler keeps the parent's decision and samples root spans at ratio.
func Sampler(ratio float64) sdktrace.Sampler {
	var root sdktrace.Sampler
	switch {
	case ratio >= 1:
		root = sdktrace.AlwaysSample()
	case ratio <= 0:
		root = sdktrace.NeverSample()
	default:
		root = sdktrace.TraceIDRatioBased(ratio)
	}
	return sdktrace.ParentBased(root)
}

// Setup reads Config from the environment and calls SetupWithConfig.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return func(context.Context) error { return nil }, fmt.Errorf("telemetry config: %w", err)
	}
	return SetupWithConfig(ctx, serviceName, cfg)
}

// SetupWithConfig registers a global tracer provider exporting to
// cfg.Endpoint. An inactive config registers nothing and returns a no-op
// shutdown. The returned shutdown flushes pending spans.
func SetupWithConfig(ctx context.Context, serviceName string, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(cfg.Endpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
