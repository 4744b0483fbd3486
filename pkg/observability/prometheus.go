package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	NoopPipelineHooks

	layersTotal   *prometheus.CounterVec
	layerDuration prometheus.Histogram
	ringEdges     prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpInflight  prometheus.Gauge
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		layersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onion_layers_total",
			Help: "Peeled layers by outcome (closed, open, none, error)",
		}, []string{"outcome"}),
		layerDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "onion_layer_duration_seconds",
			Help:    "Time to build the neighbor graph and trace one layer",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ringEdges: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "onion_ring_edges",
			Help:    "Number of boundary edges per ring",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onion_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		stageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onion_pipeline_stage_errors_total",
			Help: "Failed pipeline stages",
		}, []string{"stage"}),
		cacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onion_cache_requests_total",
			Help: "Cache lookups and writes by key type and result",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "onion_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onion_http_requests_total",
			Help: "HTTP responses by route and status code",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onion_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "onion_http_requests_in_flight",
			Help: "Requests currently being served",
		}),
	}
}

// Install registers p for every hook category.
func Install(p *Prometheus) {
	SetPeelHooks(p)
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetHTTPHooks(p)
}

func (p *Prometheus) OnLayerStart(context.Context, int, float64, int) {}

func (p *Prometheus) OnLayerComplete(_ context.Context, _ int, _ float64, edges int, closed bool, d time.Duration, err error) {
	p.layerDuration.Observe(d.Seconds())
	switch {
	case err != nil:
		p.layersTotal.WithLabelValues("error").Inc()
	case edges == 0 && !closed:
		p.layersTotal.WithLabelValues("none").Inc()
	case closed:
		p.layersTotal.WithLabelValues("closed").Inc()
		p.ringEdges.Observe(float64(edges))
	default:
		p.layersTotal.WithLabelValues("open").Inc()
		p.ringEdges.Observe(float64(edges))
	}
}

func (p *Prometheus) OnLoadComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	p.stage("load", d, err)
}

func (p *Prometheus) OnPeelComplete(_ context.Context, _ int, d time.Duration, err error) {
	p.stage("peel", d, err)
}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.stage("render", d, err)
}

func (p *Prometheus) stage(name string, d time.Duration, err error) {
	p.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(name).Inc()
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheRequests.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.httpInflight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpInflight.Dec()
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
