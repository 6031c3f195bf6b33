// Package wire assembles the bot from configuration: store, services,
// Telegram gateway, dispatcher, and update runner.
package wire

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/jiobot/internal/adapters/audit"
	"github.com/example/jiobot/internal/adapters/chatbot"
	"github.com/example/jiobot/internal/adapters/memory"
	"github.com/example/jiobot/internal/adapters/sqlite"
	"github.com/example/jiobot/internal/adapters/telegram"
	"github.com/example/jiobot/internal/app"
	"github.com/example/jiobot/internal/config"
	"github.com/example/jiobot/internal/db"
	"github.com/example/jiobot/internal/ports/secondary"
)

// App holds the assembled components needed to serve updates.
type App struct {
	Bot    *tgbotapi.BotAPI
	Runner *telegram.Runner

	closers []func() error
}

// Close releases resources held by the store.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Bot connects to the Bot API using the configured token.
func Bot(cfg *config.Config, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	return telegram.NewBot(cfg.BotToken, cfg.APIEndpoint, cfg.TelegramDebug, logger)
}

// Build connects to Telegram and wires every component.
func Build(cfg *config.Config, logger *zap.Logger) (*App, error) {
	bot, err := Bot(cfg, logger)
	if err != nil {
		return nil, err
	}
	return Assemble(cfg, bot, logger)
}

// Assemble wires every component around an existing Bot API client.
func Assemble(cfg *config.Config, bot *tgbotapi.BotAPI, logger *zap.Logger) (*App, error) {
	a := &App{Bot: bot}

	jioRepo, err := a.jioRepository(cfg.Store, audit.NewZapLogWriter(logger))
	if err != nil {
		return nil, err
	}
	markerRepo := memory.NewMarkerRepository()

	gateway := telegram.NewGateway(bot, logger)
	executor := app.NewEffectExecutor(gateway, jioRepo, logger)

	jios := app.NewJioService(jioRepo)
	conversations := app.NewConversationService(markerRepo)
	broadcast := app.NewBroadcastService(jioRepo, executor, logger)

	dispatcher := chatbot.NewDispatcher(jios, conversations, broadcast, gateway, logger)
	a.Runner = telegram.NewRunner(dispatcher, bot.Self.UserName, cfg.UpdateQueue, logger)

	logger.Info("bot assembled",
		zap.String("username", bot.Self.UserName),
		zap.String("store", cfg.Store),
		zap.String("mode", cfg.Mode),
	)
	return a, nil
}

func (a *App) jioRepository(store string, logWriter secondary.LogWriter) (secondary.JioRepository, error) {
	switch store {
	case config.StoreSQLite:
		database, err := db.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		logWriter = audit.NewMultiWriter(logWriter, sqlite.NewLogWriterAdapter(database))
		return sqlite.NewJioRepository(database, logWriter), nil
	case config.StoreMemory, "":
		return memory.NewJioRepository(logWriter), nil
	default:
		return nil, fmt.Errorf("unknown store %q", store)
	}
}
