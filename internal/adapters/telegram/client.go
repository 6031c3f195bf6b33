package telegram

import (
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// requestTimeout bounds a single Bot API call. Long polls ask for 30s.
const requestTimeout = 45 * time.Second

// NewBot connects to the Bot API and verifies the token with getMe.
// endpoint may be empty for the public API; otherwise it must contain two %s
// verbs (token, method).
func NewBot(token, endpoint string, debug bool, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if logger != nil {
		// The library logs through a std logger; route it into zap.
		_ = tgbotapi.SetLogger(zap.NewStdLog(logger.Named("tgbotapi")))
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: requestTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	bot.Debug = debug
	return bot, nil
}
