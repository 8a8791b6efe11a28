package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends digests to a single Telegram chat. All methods are safe to
// call on a nil receiver, so an unconfigured bot degrades to a no-op.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a new Telegram notifier. Returns nil when the token or
// chat id is missing or the bot API rejects the token.
func NewNotifier(token string, chatID int64) *Notifier {
	if token == "" || chatID == 0 {
		slog.Warn("Telegram не настроен, уведомления отключены")
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return &Notifier{bot: bot, chatID: chatID}
}

// Enabled reports whether the notifier can actually send.
func (n *Notifier) Enabled() bool {
	return n != nil && n.bot != nil
}

// Send delivers one Markdown message to the configured chat.
func (n *Notifier) Send(text string) error {
	if !n.Enabled() {
		return fmt.Errorf("telegram не настроен")
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
