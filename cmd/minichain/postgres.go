package minichain

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minichain-network/minichain/internal/config"
	"github.com/minichain-network/minichain/internal/snapshot"
)

var postgresCmd = &cobra.Command{
	Use:   "postgres [psql-connection-string]",
	Short: "Run the shell over a PostgreSQL snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pgConfig := config.PostgresConfig{ConnString: args[0]}
		if err := pgConfig.Validate(); err != nil {
			return fmt.Errorf("invalid PostgreSQL configuration: %w", err)
		}

		store, err := snapshot.NewPostgresStore(cmd.Context(), pgConfig.ConnString)
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL snapshot store: %w", err)
		}
		defer store.Close()

		return runShell(cmd.Context(), store, store.DB())
	},
}
