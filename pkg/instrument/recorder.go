package instrument

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "elementview"

// Config configures a Recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "elementview").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerName is the OpenTelemetry tracer name (default: "elementview").
	TracerName string
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "elementview",
		Buckets:    []float64{.0001, .0005, .001, .005, .01, .05, .1},
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// Recorder holds lifecycle metrics and the tracer.
type Recorder struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	resizes        *prometheus.CounterVec
	finishes       *prometheus.CounterVec
	unknownStyles  *prometheus.CounterVec
	exports        *prometheus.CounterVec
	liveViews      prometheus.Gauge

	tracer trace.Tracer
}

// New creates a Recorder and registers its metrics.
func New(opts ...Option) *Recorder {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Recorder{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of element renders",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Element render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		resizes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resizes_total",
			Help:        "Total number of host resize notifications handled",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		finishes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "finish_total",
			Help:        "Total number of finish signals",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "cause"}),

		unknownStyles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unknown_style_properties_total",
			Help:        "Style properties skipped because the host recognized no variant",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "exports_total",
			Help:        "Total number of exports",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "format", "status"}),

		liveViews: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_views",
			Help:        "Number of initialized, not yet torn down views",
			ConstLabels: config.ConstLabels,
		}),

		tracer: otel.Tracer(config.TracerName),
	}
}

var (
	defaultRecorder     *Recorder
	defaultRecorderOnce sync.Once
)

// Default returns the process-wide Recorder registered on the default
// Prometheus registerer.
func Default() *Recorder {
	defaultRecorderOnce.Do(func() {
		defaultRecorder = New()
	})
	return defaultRecorder
}

// Span is an in-flight traced operation.
type Span struct {
	rec   *Recorder
	op    string
	kind  string
	start time.Time
	span  trace.Span
}

// Start begins a traced operation ("render", "resize", "export") on the
// view with the given kind and id.
func (r *Recorder) Start(op, kind, id string) *Span {
	if r == nil {
		return nil
	}
	_, span := r.tracer.Start(context.Background(), "elementview."+op,
		trace.WithAttributes(
			attribute.String("elementview.kind", kind),
			attribute.String("elementview.id", id),
		),
	)
	return &Span{rec: r, op: op, kind: kind, start: time.Now(), span: span}
}

// SetAttributes adds attributes to the span.
func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attrs...)
}

// End finishes the span, recording err if non-nil.
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	if s.op == "render" {
		s.rec.renderDuration.WithLabelValues(s.kind).Observe(time.Since(s.start).Seconds())
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

// Render counts a render.
func (r *Recorder) Render(kind string) {
	if r != nil {
		r.renders.WithLabelValues(kind).Inc()
	}
}

// Resize counts a handled resize notification.
func (r *Recorder) Resize(kind string) {
	if r != nil {
		r.resizes.WithLabelValues(kind).Inc()
	}
}

// Finish counts a finish signal. cause is "render", "resize" or "manual".
func (r *Recorder) Finish(kind, cause string) {
	if r != nil {
		r.finishes.WithLabelValues(kind, cause).Inc()
	}
}

// UnknownStyle counts a skipped style property.
func (r *Recorder) UnknownStyle(kind string) {
	if r != nil {
		r.unknownStyles.WithLabelValues(kind).Inc()
	}
}

// Export counts an export attempt.
func (r *Recorder) Export(kind, format string, err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.exports.WithLabelValues(kind, format, status).Inc()
}

// ViewInitialized increments the live view gauge.
func (r *Recorder) ViewInitialized() {
	if r != nil {
		r.liveViews.Inc()
	}
}

// ViewTornDown decrements the live view gauge.
func (r *Recorder) ViewTornDown() {
	if r != nil {
		r.liveViews.Dec()
	}
}
