// Serve command runs the HTTP joke service.
package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jokebox/jokebox/internal/memory"
	"github.com/jokebox/jokebox/internal/server"
	"github.com/jokebox/jokebox/pkg/logger"
	"github.com/jokebox/jokebox/pkg/types"
)

var (
	serveAddr     string
	serveInMemory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP joke service",
	Long: `Serve runs the jokebox HTTP API until interrupted.

Example:
  jokebox serve
  jokebox serve --addr :9090
  jokebox serve --in-memory`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveInMemory, "in-memory", false, "serve the non-persistent sample store")
}

func runServe(cmd *cobra.Command, args []string) error {
	var (
		store types.Store
		err   error
	)
	if serveInMemory {
		store = memory.NewSeeded()
	} else {
		store, err = openStore()
		if err != nil {
			return err
		}
	}
	defer store.Close()

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting jokebox",
		logger.String("backend", cfg.Backend),
		logger.String("db_path", cfg.DBPath),
	)

	srv := server.New(addr, store)
	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("jokebox stopped")
	return nil
}
