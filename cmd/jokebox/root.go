// Root command for the jokebox CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/jokebox/jokebox/internal/paths"
	"github.com/jokebox/jokebox/pkg/logger"
	"github.com/jokebox/jokebox/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDBPath    string
	flagJSON      bool
)

// cfg holds the effective configuration, assembled by PersistentPreRunE so
// every subcommand sees the same resolved values.
var cfg types.Config

var rootCmd = &cobra.Command{
	Use:     "jokebox",
	Short:   "Jokebox stores and serves short jokes over HTTP",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		dbPath, err := paths.ResolveDBPath(flagDBPath, v.GetString(cfgKeyDBPath))
		if err != nil {
			return err
		}

		cfg = types.Config{
			Backend:    v.GetString(cfgKeyBackend),
			DBPath:     dbPath,
			ListenAddr: v.GetString(cfgKeyListenAddr),
			LogLevel:   v.GetString(cfgKeyLogLevel),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger.Init(cfg.LogLevel, nil)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "", "database file (default: $(CWD)/jokes.db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(deleteCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > JOKEBOX_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
