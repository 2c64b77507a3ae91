package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the instruments updated by the shell's single writer loop.
type Metrics struct {
	ChainHeight         prometheus.Gauge
	TransactionsTotal   prometheus.Counter
	MiningAttemptsTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		ChainHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prometheus.BuildFQName("minichain", "chain", "height"),
			Help: "Index of the chain head",
		}),
		TransactionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("minichain", "transactions", "total_count"),
			Help: "Total transactions appended this session",
		}),
		MiningAttemptsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("minichain", "mining", "attempts_total"),
			Help: "Cumulative nonce attempts across all mined blocks",
		}),
	}
}

// ObserveAppend records a successful append. The attempt count of a mined
// block is its accepted nonce plus one; an unmined block costs one digest.
func (m *Metrics) ObserveAppend(index uint64, txCount int, nonce uint64) {
	if m == nil {
		return
	}
	m.ChainHeight.Set(float64(index))
	m.TransactionsTotal.Add(float64(txCount))
	m.MiningAttemptsTotal.Add(float64(nonce + 1))
}
