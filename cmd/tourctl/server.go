package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/trailpost/tourcms/pkg/config"
	"github.com/trailpost/tourcms/pkg/db"
	"github.com/trailpost/tourcms/pkg/server"
	"github.com/trailpost/tourcms/pkg/server/endpoints"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the tourism content server",
	Long: `Run the tourism content server.

Requires the DATABASE_URL environment variable (or database_url in the
config file). By default, database migrations are run on startup. Use
--no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
			os.Exit(1)
		}
		if cfg.DatabaseURL == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		logger := newLogger(cfg.LogLevel)

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			logger.Info().Msg("running database migrations")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		if host, _ := cmd.Flags().GetString("bind-address"); host != "" {
			cfg.BindAddress = host
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		conn, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		s, err := server.NewServer(cfg, conn, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to build server:", err)
			os.Exit(1)
		}
		endpoints.RegisterAll(s)

		// Reload the config file on change. Attributes read per request
		// (list limit cap, max upload size) take effect live; the bind
		// address, database and secrets require a restart.
		stopWatch := make(chan struct{})
		defer close(stopWatch)
		go func() {
			err := config.Watch(logger, stopWatch, func(c *config.Config) {
				s.ApplyReload(c)
				logger.Info().Msg("configuration reloaded")
			})
			if err != nil {
				logger.Warn().Err(err).Msg("config watch unavailable")
			}
		}()

		errs := make(chan error, 1)
		go func() {
			logger.Info().Str("addr", cfg.Addr()).Msg("server listening")
			if err := s.Start(); err != nil && err != http.ErrServerClosed {
				errs <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errs:
			fmt.Fprintln(os.Stderr, "Server failed:", err)
			os.Exit(1)
		case sig := <-quit:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown did not complete cleanly")
		}
	},
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (overrides config)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides config)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
