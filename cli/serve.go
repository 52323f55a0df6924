package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orayew2002/timetracker/config"
	"github.com/orayew2002/timetracker/events"
	"github.com/orayew2002/timetracker/httpapi"
	"github.com/orayew2002/timetracker/logging"
	"github.com/orayew2002/timetracker/processor"
	"github.com/orayew2002/timetracker/session"
	"github.com/orayew2002/timetracker/storage"
)

// publisher is an events sink that must be closed on shutdown.
type publisher interface {
	processor.Publisher
	Close() error
}

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API against MinIO, PostgreSQL and Kafka",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	return cmd
}

func runServe(ctx context.Context, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logging.New(os.Stderr, cfg.LogLevel)

	store, err := storage.NewMinIO(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		return err
	}

	sessions, err := session.NewPostgres(ctx, session.DSN(cfg.PostgresHost, cfg.PostgresPort,
		cfg.PostgresDB, cfg.PostgresUser, cfg.PostgresPassword))
	if err != nil {
		return err
	}
	defer sessions.Close()

	var pub publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info("publishing merge events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer pub.Close()

	proc := processor.New(store, sessions, processor.Options{
		Bucket:       cfg.Bucket,
		InputPrefix:  cfg.InputPrefix,
		OutputPrefix: cfg.OutputPrefix,
		PresignTTL:   cfg.PresignTTL,
		Publisher:    pub,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewHandler(proc, httpapi.NewMetrics(), os.Stdout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("timetracker API listening", "addr", cfg.HTTPAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
