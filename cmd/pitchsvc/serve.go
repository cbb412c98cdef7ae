package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/config"
	"github.com/youssefhoussam/pitch-service/internal/server"
	"github.com/youssefhoussam/pitch-service/internal/server/endpoints"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pitch service server",
	Long: `Start the pitch service HTTP server.

With database.managed enabled (the default) this also starts a Postgres
container, which is stopped again when the server shuts down (via Ctrl+C
or SIGTERM). Point database.dsn at an existing Postgres to disable the
managed container, or set database.mode to "memory" for an ephemeral store.

Configuration is hot-reloaded: edits to the config file update the AI
provider registry without a restart.

Examples:
  pitchsvc serve                    # Start on default port 8084
  pitchsvc serve --port 3000        # Start on custom port
  pitchsvc serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		host := serveHost
		port := servePort
		if host == "" {
			host = cm.Get().Server.Host
		}
		if port == "" && cm.Get().Server.Port != 0 {
			port = strconv.Itoa(cm.Get().Server.Port)
		}

		srv, err := server.New(server.Config{
			Host:            host,
			Port:            port,
			ConfigManager:   cm,
			Logger:          logger,
			SwaggerSpecPath: endpoints.GetSwaggerSpecPath(),
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
