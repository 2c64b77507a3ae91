package minichain

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minichain-network/minichain/internal/config"
	"github.com/minichain-network/minichain/internal/snapshot"
)

var jsonCmd = &cobra.Command{
	Use:   "json [flags]",
	Short: "Run the shell over a JSON file snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonConfig := config.LoadJSONConfigFromCLI()
		if err := jsonConfig.Validate(); err != nil {
			return fmt.Errorf("invalid JSON configuration: %w", err)
		}
		slog.Debug("Command-line argument", "snapshot", jsonConfig.Snapshot)

		store, err := snapshot.NewJSONStore(jsonConfig.Snapshot)
		if err != nil {
			return fmt.Errorf("failed to create JSON snapshot store: %w", err)
		}
		defer store.Close()

		return runShell(cmd.Context(), store, nil)
	},
}

func init() {
	jsonCmd.Flags().StringP("snapshot", "o", "chain.json", "Snapshot file path")
	if err := viper.BindPFlags(jsonCmd.Flags()); err != nil {
		slog.Error("Failed to bind jsonCmd flags", "error", err)
	}
}
