package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonny/ranobe-bot/internal/adapter/inbound/webhook"
	"github.com/jonny/ranobe-bot/internal/adapter/outbound/catalog/ranobedb"
	"github.com/jonny/ranobe-bot/internal/adapter/outbound/discord"
	"github.com/jonny/ranobe-bot/internal/adapter/outbound/discord/template"
	"github.com/jonny/ranobe-bot/internal/adapter/outbound/notification"
	slacknotifier "github.com/jonny/ranobe-bot/internal/adapter/outbound/notification/slack"
	"github.com/jonny/ranobe-bot/internal/config"
	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
	"github.com/jonny/ranobe-bot/internal/domain/service"
	"github.com/jonny/ranobe-bot/internal/metrics"
	"github.com/jonny/ranobe-bot/internal/worker"
	"github.com/jonny/ranobe-bot/pkg/health"
	"github.com/jonny/ranobe-bot/pkg/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional; environment alone is enough)")
	printVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *printVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = buildLogger(cfg.Logging)

	publicKey, err := cfg.Discord.VerifyKey()
	if err != nil {
		logger.Error("invalid discord public key", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// --- Catalog ---
	catalog := ranobedb.NewClient(ranobedb.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
		Sort:    cfg.Catalog.Sort,
	}, m)

	// --- Follow-up sender ---
	sender, err := discord.NewSender(discord.Config{
		BotToken:      cfg.Discord.BotToken,
		ApplicationID: cfg.Discord.ApplicationID,
		Timeout:       cfg.Discord.FollowUpTimeout,
		Links: template.Links{
			SiteURL:  cfg.Catalog.SiteURL,
			ImageURL: cfg.Catalog.ImageURL,
		},
	})
	if err != nil {
		logger.Error("failed to create discord sender", "error", err)
		os.Exit(1)
	}

	// --- Notifier ---
	var notifier outbound.OpsNotifier
	if cfg.Slack.Enabled {
		notifier = slacknotifier.NewNotifier(slacknotifier.Config{
			BotToken: cfg.Slack.BotToken,
			Channel:  cfg.Slack.Channel,
		})
	} else {
		logger.Info("slack ops channel disabled")
		notifier = notification.NewNoopNotifier(logger)
	}

	// --- Continuations ---
	pool := worker.NewPool(worker.Config{
		Workers:      cfg.Workers.Count,
		QueueSize:    cfg.Workers.QueueSize,
		DrainTimeout: cfg.Workers.DrainTimeout,
	}, logger, m)

	dispatcher := service.NewDispatcher(service.Deps{
		Catalog:   catalog,
		Sender:    sender,
		Scheduler: pool,
		Notifier:  notifier,
		Metrics:   m,
		Logger:    logger,
	}, cfg.Catalog.SearchLimit)

	// --- Interaction server ---
	interactionServer := webhook.NewServer(webhook.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		PublicKey:       publicKey,
	}, webhook.NewHandler(dispatcher, logger), m, logger)

	// --- Health checker ---
	checker := health.NewChecker()
	checker.Register("catalog", catalog.HealthCheck)
	checker.Register("workers", pool.Accepting)

	// --- Metrics server ---
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", checker.LivenessHandler())
	metricsMux.HandleFunc("/readyz", checker.ReadinessHandler())
	metricsMux.Handle("/metrics", m.Handler())
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// --- Signal handling & startup ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// The pool outlives the interaction server so requests still in flight
	// during shutdown can hand off their continuations.
	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()

	g.Go(func() error {
		defer stopPool()
		logger.Info("starting interaction server", "port", cfg.Server.Port)
		return interactionServer.Start(gCtx)
	})

	g.Go(func() error {
		err := pool.Run(poolCtx)
		if errors.Is(err, worker.ErrDrainTimeout) {
			logger.Warn("continuations abandoned at shutdown", "error", err)
			return nil
		}
		return err
	})

	// Metrics/health server.
	g.Go(func() error {
		logger.Info("starting metrics server", "port", cfg.Server.MetricsPort)
		errCh := make(chan error, 1)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()
		select {
		case <-gCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	})

	logger.Info("ranobe-bot started", "version", version.String())
	notifyLifecycle(notifier, logger, "ranobe-bot started ("+version.String()+")", outbound.NotificationInfo)

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", "error", err)
		notifyLifecycle(notifier, logger, "ranobe-bot exited with error: "+err.Error(), outbound.NotificationWarning)
		os.Exit(1)
	}

	notifyLifecycle(notifier, logger, "ranobe-bot stopped", outbound.NotificationInfo)
	logger.Info("ranobe-bot stopped")
}

// notifyLifecycle posts a lifecycle notice to the ops channel. Failures are
// logged only.
func notifyLifecycle(n outbound.OpsNotifier, logger *slog.Logger, message string, level outbound.NotificationLevel) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.SendMessage(ctx, message, level); err != nil {
		logger.Warn("ops notification failed", "error", err)
	}
}

// buildLogger constructs a slog.Logger based on config.
func buildLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
