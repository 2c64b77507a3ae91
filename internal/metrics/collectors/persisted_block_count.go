package collectors

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const PersistedBlockCountQuery = "SELECT COUNT(*) FROM minichain.blocks"

// PersistedBlockCountCollector reports how many blocks the PostgreSQL
// snapshot currently holds.
type PersistedBlockCountCollector struct {
	db                  *sql.DB
	persistedBlockCount *prometheus.Desc
}

func NewPersistedBlockCountCollector(db *sql.DB) *PersistedBlockCountCollector {
	return &PersistedBlockCountCollector{
		db: db,
		persistedBlockCount: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "snapshot", "persisted_blocks"),
			"Number of blocks in the persisted snapshot",
			nil,
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *PersistedBlockCountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.persistedBlockCount
}

func (c *PersistedBlockCountCollector) Collect(ch chan<- prometheus.Metric) {
	var count int64
	err := c.db.QueryRow(PersistedBlockCountQuery).Scan(&count)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.persistedBlockCount, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.persistedBlockCount, prometheus.GaugeValue, float64(count))
}
