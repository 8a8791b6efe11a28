package logging

import (
	"log/slog"
	"os"
)

// SetupLogger настраивает глобальный logger сервиса.
func SetupLogger(serviceName string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	logger := slog.New(handler).With("service", serviceName)
	slog.SetDefault(logger)
	return logger
}
