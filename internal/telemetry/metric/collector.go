package metric

import "github.com/prometheus/client_golang/prometheus"

// KeyCounter reports the size of the key space.
type KeyCounter interface {
	ScalarCount() int
	ListCount() int
}

// StoreCollector reports key counts at scrape time.
type StoreCollector struct {
	store KeyCounter
	keys  *prometheus.Desc
}

// NewStoreCollector creates a collector reading sizes from store.
func NewStoreCollector(store KeyCounter) *StoreCollector {
	return &StoreCollector{
		store: store,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "keys"),
			"Keys currently stored, by value type.",
			[]string{"type"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.ScalarCount()), "scalar")
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.ListCount()), "list")
}

// NewBuildInfo returns a constant roar_build_info gauge labeled with the
// running version.
func NewBuildInfo(version, commit, goVersion string) prometheus.Collector {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "build_info",
		Help:      "Build information of the running server.",
	}, []string{"version", "commit", "goversion"})
	g.WithLabelValues(version, commit, goVersion).Set(1)
	return g
}
