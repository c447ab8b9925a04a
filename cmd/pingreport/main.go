package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingreport/internal/config"
	"github.com/hamed0406/pingreport/internal/httpapi"
	"github.com/hamed0406/pingreport/internal/logging"
	"github.com/hamed0406/pingreport/internal/notify"
	"github.com/hamed0406/pingreport/internal/probe"
	"github.com/hamed0406/pingreport/internal/registry"
	"github.com/hamed0406/pingreport/internal/repo/memory"
	"github.com/hamed0406/pingreport/internal/report"
	"github.com/hamed0406/pingreport/internal/scheduler"
)

func main() {
	cfg, err := config.FromEnv(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	targets, err := registry.Load(cfg.TargetsFile)
	if err != nil {
		logger.Fatal("registry_load_error", zap.String("file", cfg.TargetsFile), zap.Error(err))
	}
	logger.Info("registry_loaded", zap.Int("targets", len(targets)))

	var channels notify.Multi
	if cfg.EmailEnabled() {
		channels = append(channels, notify.NewEmail(cfg.SMTPServer, cfg.SMTPPort, cfg.EmailAddress, cfg.EmailPassword))
	} else {
		logger.Warn("email_disabled_report_only")
	}
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		channels = append(channels, slack)
	}
	var notifier notify.Notifier
	if len(channels) > 0 {
		notifier = channels
	}

	store := memory.New()
	runner := scheduler.NewRunner(
		logger,
		targets,
		probe.NewICMP(cfg.Timeout, cfg.Privileged),
		report.NewCSV(cfg.ReportDir),
		notifier,
		store,
		scheduler.Recipients{Report: cfg.ReportRecipient, Error: cfg.ErrorRecipient},
		cfg.Attempts,
		cfg.Interval,
		cfg.Concurrency,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := httpapi.NewServer(logger, targets, store)
	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_error", zap.Error(err))
		}
	}()

	// blocks until signal
	runner.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("shutdown_complete")
}
