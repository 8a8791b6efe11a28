// One-shot digest sender: aggregates the current matches and posts a
// predictions or results digest to the configured Telegram chat. Meant to be
// run from cron.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/aggregate"
	pkgconfig "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/config"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/logging"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/telegram"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"

	_ "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources/all"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Digest failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	configPath := flag.String("config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	mode := flag.String("mode", "predictions", "Digest mode: predictions or results")
	flag.Parse()

	logging.SetupLogger("tg-digest")

	appConfig, err := pkgconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	notifier := telegram.NewNotifier(appConfig.Telegram.Token, appConfig.Telegram.ChatID)
	if !notifier.Enabled() {
		return fmt.Errorf("telegram не настроен: задайте TELEGRAM_BOT_TOKEN и TELEGRAM_CHAT_ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pipeline := aggregate.New(sources.Select(appConfig), appConfig.Sources.ScheduleDays)
	resp := pipeline.Run(ctx, aggregate.Options{})
	slog.Info("Матчи собраны", "count", resp.Count, "source", resp.Source)

	now := time.Now()
	var text string
	switch *mode {
	case "results":
		text = telegram.ResultsDigest(resp.Matches, now)
	case "predictions":
		text = telegram.PredictionsDigest(resp.Matches, now)
	default:
		return fmt.Errorf("unknown mode %q (want predictions or results)", *mode)
	}

	if err := notifier.Send(text); err != nil {
		return err
	}
	slog.Info("Дайджест отправлен", "mode", *mode)
	return nil
}
