package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pageDuration prom.Histogram
	runDuration  prom.Histogram
	pageResults  *prom.CounterVec
	entries      *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pageDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "apitoc",
			Name:      "page_duration_seconds",
			Help:      "Duration of processing a single page",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "apitoc",
			Name:      "run_duration_seconds",
			Help:      "Duration of a whole site run",
			Buckets:   prom.DefBuckets,
		}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "apitoc",
			Name:      "pages_total",
			Help:      "Processed pages by result",
		}, []string{"result"}),
		entries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "apitoc",
			Name:      "entries_total",
			Help:      "TOC entries emitted by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.pageDuration, pr.runDuration, pr.pageResults, pr.entries)
	return pr
}

func (p *PrometheusRecorder) ObservePageDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.pageDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddEntries(kind string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.entries.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

// WriteTextfile writes everything registered on reg to path in the text exposition format
// read by the node_exporter textfile collector.
func WriteTextfile(path string, reg *prom.Registry) error {
	return prom.WriteToTextfile(path, reg)
}
