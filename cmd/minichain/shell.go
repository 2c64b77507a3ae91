package minichain

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/minichain-network/minichain/internal/chain"
	"github.com/minichain-network/minichain/internal/config"
	"github.com/minichain-network/minichain/internal/metrics"
	"github.com/minichain-network/minichain/internal/shell"
	"github.com/minichain-network/minichain/internal/snapshot"
)

var shellConfig config.ShellConfig

var ShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive ledger shell",
	Long:  `Start the interactive ledger shell over the chosen snapshot backend.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if parent := cmd.Parent(); parent != nil && parent.PersistentPreRunE != nil {
			if err := parent.PersistentPreRunE(parent, args); err != nil {
				return err
			}
		}

		shellConfig = config.LoadShellConfigFromCLI()
		if err := shellConfig.Validate(); err != nil {
			return fmt.Errorf("invalid shell configuration: %w", err)
		}

		slog.Debug("Command-line arguments", "shellConfig", shellConfig)
		return nil
	},
}

func init() {
	ShellCmd.PersistentFlags().UintP("difficulty", "d", 0, "Required count of leading zero hex characters in block hashes (0 disables mining)")
	ShellCmd.PersistentFlags().Uint64("max-attempts", 0, "Upper bound on nonce attempts per block (0 means unbounded)")
	ShellCmd.PersistentFlags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	ShellCmd.PersistentFlags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(ShellCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind ShellCmd flags", "error", err)
	}

	ShellCmd.AddCommand(jsonCmd)
	ShellCmd.AddCommand(postgresCmd)
}

// runShell wires the miner, chain, metrics and prompt together over the
// given snapshot store and blocks until the user leaves the shell.
func runShell(ctx context.Context, store snapshot.Store, db *sql.DB) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	handleInterrupt(cancel)

	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription("Mining block..."),
		progressbar.OptionShowIts(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	miner := chain.Miner{
		Difficulty:  shellConfig.Difficulty,
		MaxAttempts: shellConfig.MaxAttempts,
		Progress: func(attempts uint64) {
			_ = bar.Set64(int64(attempts))
		},
	}

	c, err := loadOrCreateChain(ctx, miner, store)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	var m *metrics.Metrics
	if shellConfig.EnablePrometheus {
		m = metrics.NewMetrics()
		server, err := metrics.CreateMetricsServer(m, db, shellConfig.PrometheusAddr)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		slog.Info("Prometheus metrics server started", "address", shellConfig.PrometheusAddr)

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	sh := shell.New(c, store, shell.NewTerminalPrompter(), m)
	g.Go(func() error {
		defer cancel()
		return sh.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadOrCreateChain restores the chain from the snapshot store, or creates
// a fresh genesis chain when no usable snapshot exists. An unreadable
// snapshot is logged and treated as no prior state; a snapshot that fails
// validation is loaded anyway, since integrity errors are informational.
func loadOrCreateChain(ctx context.Context, miner chain.Miner, store snapshot.Store) (*chain.Chain, error) {
	blocks, err := store.Load(ctx)
	if err != nil {
		slog.Warn("Snapshot unreadable, starting fresh", "error", err)
		blocks = nil
	}

	if len(blocks) == 0 {
		slog.Info("No prior snapshot, creating genesis chain")
		return chain.New(ctx, miner)
	}

	c, err := chain.FromBlocks(miner, blocks)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to restore chain from snapshot")
	}
	slog.Info("Resuming from snapshot", "blocks", c.Len(), "height", c.Head().Index)

	if !c.Validate() {
		slog.Warn("Restored chain failed validation; the snapshot was tampered with or corrupted")
	}

	return c, nil
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}
