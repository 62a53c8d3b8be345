package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/logging"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/sqlite"
)

// Version is injected during build.
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "student-records",
	Short: "In-memory student record service",
	Long: `student-records keeps student records (id, name, phone) in process
memory and serves them over a small JSON HTTP API.

Configuration comes from a YAML file (--config or CONFIG_PATH) with
environment variable overrides, or from the environment alone.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration YAML file")
}

// setupLogger returns a *slog.Logger configured for the given environment:
// text at DEBUG for dev, JSON at DEBUG for staging, JSON at INFO for prod.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// newStore builds the configured backend wrapped in the logging decorator.
// The returned close func releases the backend.
func newStore(cfg *config.Config, log *slog.Logger) (storage.Storage, func() error, error) {
	var (
		backend storage.Storage
		closeFn = func() error { return nil }
	)

	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := sqlite.New()
		if err != nil {
			return nil, nil, err
		}
		backend, closeFn = db, db.Close
	default:
		backend = memory.New()
	}

	log.Info("storage initialised", slog.String("storage", cfg.Storage))
	return logging.New(backend, log.With(slog.String("component", "storage"))), closeFn, nil
}
