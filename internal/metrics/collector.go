package metrics

import (
	"strconv"

	"github.com/neekrasov/idgen/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource - snapshot provider the collector reads on every scrape.
type StatsSource interface {
	Stats() service.Stats
	Identity() service.Identity
}

// Collector exports the ID service counters as prometheus metrics.
type Collector struct {
	src StatsSource

	generated   *prometheus.Desc
	exhausted   *prometheus.Desc
	regressions *prometheus.Desc
	timeouts    *prometheus.Desc
	nodeInfo    *prometheus.Desc
}

func NewCollector(src StatsSource) *Collector {
	return &Collector{
		src:         src,
		generated:   prometheus.NewDesc("idgen_ids_generated_total", "IDs issued since start", nil, nil),
		exhausted:   prometheus.NewDesc("idgen_sequence_exhausted_total", "Waits for the next millisecond after the sequence wrapped", nil, nil),
		regressions: prometheus.NewDesc("idgen_clock_regressions_total", "Calls rejected because the clock moved backwards", nil, nil),
		timeouts:    prometheus.NewDesc("idgen_timeouts_total", "Calls abandoned on deadline", nil, nil),
		nodeInfo:    prometheus.NewDesc("idgen_node_info", "Node identity gauge=1", []string{"datacenter", "machine"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.generated
	ch <- c.exhausted
	ch <- c.regressions
	ch <- c.timeouts
	ch <- c.nodeInfo
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()
	identity := c.src.Identity()

	ch <- prometheus.MustNewConstMetric(c.generated, prometheus.CounterValue, float64(stats.Generated))
	ch <- prometheus.MustNewConstMetric(c.exhausted, prometheus.CounterValue, float64(stats.SequenceExhausted))
	ch <- prometheus.MustNewConstMetric(c.regressions, prometheus.CounterValue, float64(stats.ClockRegressions))
	ch <- prometheus.MustNewConstMetric(c.timeouts, prometheus.CounterValue, float64(stats.Timeouts))
	ch <- prometheus.MustNewConstMetric(c.nodeInfo, prometheus.GaugeValue, 1,
		strconv.FormatInt(identity.DatacenterID, 10), strconv.FormatInt(identity.MachineID, 10))
}
