package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/aggregate"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/api"
	pkgconfig "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/config"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/logging"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/storage"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/telegram"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"

	// Register all supported sources via init().
	_ "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources/all"
)

const defaultConfigPath = "configs/production.yaml"

type config struct {
	configPath string
}

func main() {
	if err := run(); err != nil {
		slog.Error("Aggregator failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional, real deployments use environment variables
	_ = godotenv.Load()

	cfg := parseFlags()

	logging.SetupLogger("aggregator")
	slog.Info("Loading config", "path", cfg.configPath)

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.Info("Config loaded successfully")

	srcs := sources.Select(appConfig)
	if len(srcs) == 0 {
		return fmt.Errorf("no sources selected to run (sources.enabled_sources=%v, available=%s)",
			appConfig.Sources.EnabledSources, strings.Join(sources.AvailableNames(), ", "))
	}
	printSelectedSources(srcs)

	pipeline := aggregate.New(srcs, appConfig.Sources.ScheduleDays)

	// Storage and Telegram are optional: the service still aggregates and
	// predicts without them, the related endpoints answer with a structured
	// error instead.
	var store storage.PredictionStorage
	if appConfig.Postgres.DSN != "" {
		ps, err := storage.NewPostgresStorage(&appConfig.Postgres)
		if err != nil {
			slog.Warn("Хранилище недоступно, сохранение прогнозов отключено", "error", err)
		} else {
			store = ps
			defer ps.Close()
		}
	} else {
		slog.Warn("DATABASE_URL не задан, сохранение прогнозов отключено")
	}

	notifier := telegram.NewNotifier(appConfig.Telegram.Token, appConfig.Telegram.ChatID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	server := api.NewServer(pipeline, store, notifier)
	api.Run(ctx, api.AddrFor(appConfig.Server.Port), "aggregator", server.Routes(), appConfig.Server.ReadHeaderTimeout)

	<-ctx.Done()
	slog.Info("Aggregator stopped")
	return nil
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()
	return cfg
}

func printSelectedSources(srcs []sources.Source) {
	names := make([]string, 0, len(srcs))
	for _, s := range srcs {
		name := s.Name()
		if !s.Enabled() {
			name += " (не настроен)"
		}
		names = append(names, name)
	}
	slog.Info("Selected sources", "sources", strings.Join(names, ", "))
}

func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()
}
