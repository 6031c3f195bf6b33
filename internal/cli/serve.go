package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/jiobot/internal/adapters/telegram"
	"github.com/example/jiobot/internal/config"
	"github.com/example/jiobot/internal/telemetry"
	"github.com/example/jiobot/internal/version"
	"github.com/example/jiobot/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		Long: `Run the bot until interrupted.

In webhook mode an HTTP server accepts updates at /{SECRET_TOKEN}/ and
answers health checks at /. If WEBHOOK_URL is set, the webhook is
registered with Telegram on startup.

In polling mode any registered webhook is removed and updates are
fetched with long polling.

Configuration comes from the environment (and a .env file if present):
  BOT_TOKEN       Bot API token (required)
  SECRET_TOKEN    webhook path secret (required in webhook mode)
  WEBHOOK_URL     public URL to register, ending in /{SECRET_TOKEN}/
  HOST, PORT      listen address (default 0.0.0.0:8000)

Examples:
  jiobot serve
  jiobot serve --mode polling --store sqlite`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("mode", config.ModeWebhook, "How to receive updates: webhook or polling")
	cmd.Flags().String("store", config.StoreMemory, "Where to keep jios: memory or sqlite")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Settings{
		Enabled:     cfg.TracingEnabled(),
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	logger.Info("starting", zap.String("version", version.String()))

	a, err := wire.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	if err := serve(ctx, cfg, a, logger); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// serve runs the dispatch loop alongside update intake until ctx ends or one
// of them fails. Webhook registration happens inside the group, so a failure
// there also stops the dispatch loop before serve returns.
func serve(ctx context.Context, cfg *config.Config, a *wire.App, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Runner.Run(gctx) })

	switch cfg.Mode {
	case config.ModePolling:
		g.Go(func() error {
			if err := telegram.DeleteWebhook(a.Bot, false); err != nil {
				return err
			}
			return a.Runner.Poll(gctx, a.Bot)
		})
	default:
		g.Go(func() error {
			if cfg.WebhookURL != "" {
				if err := telegram.SetWebhook(a.Bot, cfg.WebhookURL); err != nil {
					return err
				}
				logger.Info("webhook registered", zap.String("url", cfg.WebhookURL))
			}
			srv := telegram.NewServer(cfg.Addr(), telegram.NewWebhookHandler(cfg.SecretToken, a.Runner, logger))
			return telegram.ListenAndServe(gctx, srv, logger)
		})
	}

	return g.Wait()
}
