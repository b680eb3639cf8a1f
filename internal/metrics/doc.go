// Package metrics provides optional instrumentation for TOC runs.
//
// Components receive a Recorder; NoopRecorder is the default so callers never nil-check.
// PrometheusRecorder registers counters and histograms on a registry, which the CLI can
// dump in the node_exporter textfile format after a run:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	processor := site.NewProcessor(cfg).WithRecorder(rec)
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
