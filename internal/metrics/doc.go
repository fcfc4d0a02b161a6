// Package metrics provides the observability hooks for content loading.
//
// Components receive a Recorder and default to NoopRecorder, so call sites
// never need a nil check:
//
//	repo := fs.NewRepository(fs.Config{Recorder: metrics.NoopRecorder{}})
//
// To export metrics, construct a PrometheusRecorder against a registry and
// serve it with HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
