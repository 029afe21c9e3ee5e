package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	httpSrv "github.com/horsepowerelectrical/contact-api/internal/http"
	"github.com/horsepowerelectrical/contact-api/internal/logger"
	"github.com/horsepowerelectrical/contact-api/internal/service/auth"
	"github.com/horsepowerelectrical/contact-api/internal/service/submission"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Log
		defer func() { _ = log.Sync() }()

		repo, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		server := httpSrv.NewServer(cfg, httpSrv.Deps{
			Submissions: submission.New(repo, log.Named("submission")),
			Auth:        auth.NewChecker(cfg.Admin.Email, cfg.Admin.Password),
			Registry:    reg,
			Logger:      log.Named("http"),
		})

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting http",
				zap.String("addr", cfg.HTTP.Addr()),
				zap.String("store", cfg.Store.Driver),
				zap.String("cors_origin", cfg.HTTP.CORSOrigin),
			)
			errCh <- server.Start(cfg.HTTP.Addr())
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		var runErr error
		select {
		case sig := <-sigCh:
			log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				runErr = fmt.Errorf("http server exited: %w", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}

		return runErr
	},
}
