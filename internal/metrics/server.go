package metrics

import (
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minichain-network/minichain/internal/metrics/collectors"
)

// CreateMetricsServer registers the session metrics (plus the persisted
// block collector when a database handle is given) and starts serving
// /metrics on addr. The returned server is stopped with Shutdown.
func CreateMetricsServer(m *Metrics, db *sql.DB, addr string) (*http.Server, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(m.ChainHeight, m.TransactionsTotal, m.MiningAttemptsTotal)
	if db != nil {
		registry.MustRegister(collectors.NewPersistedBlockCountCollector(db))
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", "error", err)
		}
	}()

	return server, nil
}
