package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const meterName = "inventra-frontend"

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle
// management.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider creates and configures a new MeterProvider. If telemetry
// is disabled it leaves the global no-op provider in place.
func NewMeterProvider(ctx context.Context, cfg Config, log *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: log}

	if !cfg.Enabled {
		log.Info("Telemetry disabled, using no-op meter provider")
		return mp, nil
	}

	exporterOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(30*time.Second))),
	)
	otel.SetMeterProvider(mp.provider)

	log.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
	)
	return mp, nil
}

// Shutdown flushes pending metrics and stops the provider.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return mp.provider.Shutdown(shutdownCtx)
}

// FrontendMetrics holds the page server's business-level instruments.
type FrontendMetrics struct {
	checkouts        metric.Int64Counter
	checkoutLines    metric.Int64Histogram
	upstreamFailures metric.Int64Counter
}

// NewFrontendMetrics registers the frontend instruments on the global meter.
func NewFrontendMetrics() (*FrontendMetrics, error) {
	meter := otel.GetMeterProvider().Meter(meterName)

	checkouts, err := meter.Int64Counter("frontend.checkout.total",
		metric.WithDescription("Checkout submissions by result"))
	if err != nil {
		return nil, err
	}
	checkoutLines, err := meter.Int64Histogram("frontend.checkout.lines",
		metric.WithDescription("Cart line count per submitted checkout"))
	if err != nil {
		return nil, err
	}
	upstreamFailures, err := meter.Int64Counter("frontend.upstream.failures",
		metric.WithDescription("Backend API calls that returned an error"))
	if err != nil {
		return nil, err
	}

	return &FrontendMetrics{
		checkouts:        checkouts,
		checkoutLines:    checkoutLines,
		upstreamFailures: upstreamFailures,
	}, nil
}

// RecordCheckout records one checkout submission and its outcome. Result is
// one of "success", "failed", or "rejected".
func (m *FrontendMetrics) RecordCheckout(ctx context.Context, result string, lines int) {
	if m == nil {
		return
	}
	m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	m.checkoutLines.Record(ctx, int64(lines))
}

// RecordUpstreamFailure records a failed backend call for the given path.
func (m *FrontendMetrics) RecordUpstreamFailure(ctx context.Context, path string) {
	if m == nil {
		return
	}
	m.upstreamFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
}
