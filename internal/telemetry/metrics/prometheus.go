package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	Namespace = "vibefit"
	Subsystem = "backend"
)

// SetupPrometheus creates the registry served on the metrics listener.
// Besides the go runtime and process collectors it exposes
// vibefit_build_info{version} and any extra collectors, e.g. the pgx pool one.
func SetupPrometheus(versionInfo string, extra ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   Namespace,
		Name:        "build_info",
		Help:        "Always 1, labeled with the running vibefit version",
		ConstLabels: prometheus.Labels{"version": versionInfo},
	})
	buildInfo.Set(1)

	promRegistry.MustRegister(
		buildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}),
	)
	promRegistry.MustRegister(extra...)

	return promRegistry
}
