package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaheeralics/scriptwriter/internal/api"
	"github.com/shaheeralics/scriptwriter/internal/server"
	"github.com/shaheeralics/scriptwriter/internal/session"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the script writer HTTP API",
	Long:  `Starts the HTTP API with /health, /generate-script, the session endpoints and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		logger := newLogger(true)
		gen := buildGenerator(cfg, logger)

		sessions := session.NewManager(cfg.HistoryLimit,
			session.WithMaxSessions(cfg.MaxSessions),
			session.WithIdleTTL(cfg.SessionTTL()),
		)

		svc := api.New(api.Deps{
			Generator:      gen,
			Sessions:       sessions,
			Exporter:       buildExporter(cfg, logger),
			MaxTopicLength: cfg.MaxTopicLength,
			Version:        Version,
			Logger:         logger,
		})
		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			RequestTimeout: cfg.RequestTimeout(),
		}, svc)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		backends := "template only"
		if gen.Configured() {
			backends = strings.Join(gen.Backends(), " -> ")
		}
		fmt.Fprintf(os.Stderr, "scriptwriter server v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Backends: %s\n", backends)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
