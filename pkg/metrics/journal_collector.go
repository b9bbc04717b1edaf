package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/store"
)

type journalStatsCollector struct {
	store          store.Store
	totalRuns      *prometheus.Desc
	latestByStatus *prometheus.Desc
}

func newJournalStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_journal_%s", rt2d42, name)
	}

	return &journalStatsCollector{
		store: s,
		totalRuns: prometheus.NewDesc(
			fqName("runs_total"),
			"Total number of journaled runs.",
			nil,
			prometheus.Labels{},
		),
		latestByStatus: prometheus.NewDesc(
			fqName("latest_outcomes"),
			"Outcomes of the latest finished run by status",
			[]string{statusLabel},
			prometheus.Labels{},
		),
	}
}

// RegisterJournalCollector exposes the journal statistics on the default
// registry.
func RegisterJournalCollector(s store.Store) error {
	return prometheus.Register(newJournalStatsCollector(s))
}

func (c *journalStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalRuns
	ch <- c.latestByStatus
}

// Collect implements Collector.
func (c *journalStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("journal_collector").Errorf("failed to collect journal statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalRuns, prometheus.GaugeValue, float64(stats.TotalRuns))

	for status, total := range stats.LatestByStatus {
		ch <- prometheus.MustNewConstMetric(c.latestByStatus, prometheus.GaugeValue, float64(total), status)
	}
}
