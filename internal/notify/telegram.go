package notify

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var errMissingTelegramConfig = errors.New("notify: bot token and chat id are required")

// TelegramSenderConfig configures the Telegram notification channel.
type TelegramSenderConfig struct {
	BotToken string
	ChatID   int64
}

// TelegramSender pushes a short notification line to the admin chat. The
// HTML email body is not forwarded; Telegram gets the subject only.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSender constructs the Telegram channel and verifies the token
// against the Bot API.
func NewTelegramSender(cfg TelegramSenderConfig) (*TelegramSender, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, errMissingTelegramConfig
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	return &TelegramSender{bot: bot, chatID: cfg.ChatID}, nil
}

// Name identifies the channel in logs.
func (s *TelegramSender) Name() string {
	return "telegram"
}

// Send posts the subject line to the admin chat.
func (s *TelegramSender) Send(_ context.Context, subject, _ string) error {
	message := tgbotapi.NewMessage(s.chatID, subject)
	_, err := s.bot.Send(message)
	return err
}
