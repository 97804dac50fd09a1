// Init command for the seam CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/seam/internal/sqlite"
	"github.com/mesh-intelligence/seam/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize seam configuration and session storage",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Resolve config directory (flag > env > default) and ensure it
		// exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			fail(exitSysError, "init", err)
		}
		if err := ensureConfigDir(configDir); err != nil {
			fail(exitSysError, "init", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			fail(exitSysError, "init", err)
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			fail(exitSysError, "init", err)
		}

		// Attach creates the data directory and the session database.
		if resolveBackend() == types.BackendSQLite {
			store := sqlite.NewStore()
			cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
			if err := store.Attach(cfg); err != nil {
				fail(exitSysError, "init", err)
			}
			defer store.Detach()
		}

		fmt.Println("Seam initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
	},
}
