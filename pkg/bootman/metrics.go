package bootman

import "github.com/prometheus/client_golang/prometheus"

// metrics mirrors the teacher's pkg/snapshotter/metrics.go pattern, but
// registers into a per-Manager registry rather than the global default
// one, since more than one Manager can exist in a single process (e.g.
// in tests).
type metrics struct {
	registry *prometheus.Registry
	scans    *prometheus.CounterVec
	writes   *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	m := &metrics{
		registry: reg,
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cbm_kernel_scan_total",
			Help: "Total number of kernel directory scans, by result.",
		}, []string{"result"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cbm_sysconfig_write_total",
			Help: "Total number of sysconfig fragment writes, by operation and result.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(m.scans, m.writes)
	return m
}

func (m *metrics) observeScan(err error) {
	if err != nil {
		m.scans.WithLabelValues("error").Inc()
		return
	}
	m.scans.WithLabelValues("ok").Inc()
}

func (m *metrics) observeWrite(op string, err error) {
	if err != nil {
		m.writes.WithLabelValues(op, "error").Inc()
		return
	}
	m.writes.WithLabelValues(op, "ok").Inc()
}

// Registry exposes the Manager's metrics for an HTTP handler to serve,
// e.g. behind the CLI's optional --metrics-addr flag.
func (m *Manager) Registry() *prometheus.Registry {
	return m.metrics.registry
}
