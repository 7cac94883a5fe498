package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initDB creates the schema and a default config.yaml. The config file is a
// convenience; failing to write it does not fail initialization.
func (a *app) initDB(cmd *cobra.Command, configDir, dataDir string) error {
	path, err := a.store.Initialize(cmd.Context())
	if err != nil {
		return sysError("Database error: %s", err)
	}

	wrote, err := writeConfigIfMissing(configDir)
	if err != nil {
		a.logger.Warn("default config not written", "config_dir", configDir, "err", err)
	} else if wrote {
		a.logger.Debug("wrote default config", "config_dir", configDir)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database initialized at %s\n", path)
	a.logger.Debug("initialized", "data_dir", dataDir)
	return nil
}
