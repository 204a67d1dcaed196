package tracing

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/Harmonic/harmonic/config"
	"github.com/Harmonic/harmonic/pkg/logger"
)

var ErrUnsupportedExporter = errors.New("unsupported exporter")

// InitTracing configures sampling, the trace exporter and the metrics
// exporters. It is a no-op when tracing is disabled.
func InitTracing(cfg *config.TracingConfig, log logger.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, log); err != nil {
		return err
	}

	if err := initMetricsExporters(cfg, log); err != nil {
		return err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
	}).Info("OpenCensus initialized")
	return nil
}

func initTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	switch cfg.TraceExporter {
	case "jaeger":
		if cfg.JaegerEndpoint == "" {
			return fmt.Errorf("jaeger endpoint is required for the jaeger exporter")
		}
		je, err := jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: cfg.JaegerEndpoint,
			Process: jaeger.Process{
				ServiceName: cfg.ServiceName,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create jaeger exporter: %w", err)
		}
		trace.RegisterExporter(je)
	case "zipkin":
		if cfg.ZipkinEndpoint == "" {
			return fmt.Errorf("zipkin endpoint is required for the zipkin exporter")
		}
		reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
		trace.RegisterExporter(zipkin.NewExporter(reporter, nil))
	case "stackdriver":
		se, err := newStackdriverExporter(cfg, log)
		if err != nil {
			return err
		}
		trace.RegisterExporter(se)
	case "datadog":
		de, err := newDatadogExporter(cfg, log)
		if err != nil {
			return err
		}
		trace.RegisterExporter(de)
	case "xray":
		if cfg.XRayRegion == "" {
			return fmt.Errorf("AWS region is required for the xray exporter")
		}
		xe, err := aws.NewExporter(
			aws.WithRegion(cfg.XRayRegion),
			aws.WithVersion(cfg.ServiceName),
		)
		if err != nil {
			return fmt.Errorf("failed to create xray exporter: %w", err)
		}
		trace.RegisterExporter(xe)
	case "none", "":
		log.Debug("No trace exporter configured")
		return nil
	default:
		return fmt.Errorf("%w: trace exporter %q", ErrUnsupportedExporter, cfg.TraceExporter)
	}

	log.WithField("exporter", cfg.TraceExporter).Info("Trace exporter initialized")
	return nil
}

// initMetricsExporters accepts a comma separated list of exporters.
func initMetricsExporters(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		return nil
	}

	for _, name := range strings.Split(cfg.MetricsExporter, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		switch name {
		case "prometheus":
			if err := initPrometheusExporter(cfg, log); err != nil {
				return fmt.Errorf("failed to initialize prometheus metrics exporter: %w", err)
			}
		case "stackdriver":
			se, err := newStackdriverExporter(cfg, log)
			if err != nil {
				return err
			}
			view.RegisterExporter(se)
		case "datadog":
			de, err := newDatadogExporter(cfg, log)
			if err != nil {
				return err
			}
			view.RegisterExporter(de)
		default:
			return fmt.Errorf("%w: metrics exporter %q", ErrUnsupportedExporter, name)
		}
	}

	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	return nil
}

func initPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) error {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Prometheus exporter error")
		},
	})
	if err != nil {
		return err
	}
	view.RegisterExporter(pe)

	if cfg.PrometheusPort <= 0 {
		return nil
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.PrometheusPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		log.WithField("port", cfg.PrometheusPort).Info("Starting Prometheus metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithField("error", err.Error()).Error("Prometheus metrics server stopped")
		}
	}()
	return nil
}

func newStackdriverExporter(cfg *config.TracingConfig, log logger.Logger) (*stackdriver.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, fmt.Errorf("stackdriver project ID is required for the stackdriver exporter")
	}
	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Stackdriver exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stackdriver exporter: %w", err)
	}
	return se, nil
}

func newDatadogExporter(cfg *config.TracingConfig, log logger.Logger) (*datadog.Exporter, error) {
	if cfg.DatadogAgentAddress == "" {
		return nil, fmt.Errorf("datadog agent address is required for the datadog exporter")
	}
	de, err := datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: cfg.DatadogAgentAddress,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Datadog exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create datadog exporter: %w", err)
	}
	return de, nil
}

// RegisterSQLDriver wraps driverName with ocsql and returns the name of the
// instrumented driver to pass to sql.Open.
func RegisterSQLDriver(driverName string) (string, error) {
	return ocsql.Register(driverName, ocsql.WithAllTraceOptions())
}

// HTTPTransport returns an ochttp transport naming spans after method and path.
func HTTPTransport(base http.RoundTripper) *ochttp.Transport {
	return &ochttp.Transport{
		Base: base,
		FormatSpanName: func(req *http.Request) string {
			return req.Method + " " + req.URL.Path
		},
	}
}
