package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// AllowedUpdates are the update types the bot subscribes to.
var AllowedUpdates = []string{"message", "callback_query", "inline_query", "chosen_inline_result"}

// maxUpdateBytes bounds a webhook body. Updates are a few KB at most.
const maxUpdateBytes = 1 << 20

// Enqueuer accepts updates for later dispatch.
type Enqueuer interface {
	Enqueue(ctx context.Context, u tgbotapi.Update) error
}

// NewWebhookHandler serves the webhook endpoint at /{secret}/ and a health
// check at /. Everything else is 404; a wrong method is 405.
func NewWebhookHandler(secret string, queue Enqueuer, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &webhookHandler{queue: queue, logger: logger.Named("webhook")}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.health)
	mux.HandleFunc("POST /"+secret+"/{$}", h.update)
	return mux
}

type webhookHandler struct {
	queue  Enqueuer
	logger *zap.Logger
}

func (h *webhookHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
}

func (h *webhookHandler) update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBytes))
	if err != nil {
		h.logger.Warn("failed to read update", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// An empty body is accepted and ignored.
	if len(body) == 0 {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	var u tgbotapi.Update
	if err := json.Unmarshal(body, &u); err != nil {
		h.logger.Warn("failed to decode update", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.queue.Enqueue(r.Context(), u); err != nil {
		// Telegram retries on non-2xx responses.
		h.logger.Warn("failed to enqueue update", zap.Int("update_id", u.UpdateID), zap.Error(err))
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SetWebhook replaces any existing webhook with url.
func SetWebhook(bot *tgbotapi.BotAPI, url string) error {
	if url == "" {
		return errors.New("webhook url is empty")
	}
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to remove existing webhook: %w", err)
	}

	cfg, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	cfg.AllowedUpdates = AllowedUpdates
	if _, err := bot.Request(cfg); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes the webhook, optionally dropping pending updates.
func DeleteWebhook(bot *tgbotapi.BotAPI, dropPending bool) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: dropPending}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

// GetWebhookInfo returns the current webhook registration.
func GetWebhookInfo(bot *tgbotapi.BotAPI) (tgbotapi.WebhookInfo, error) {
	info, err := bot.GetWebhookInfo()
	if err != nil {
		return tgbotapi.WebhookInfo{}, fmt.Errorf("failed to get webhook info: %w", err)
	}
	return info, nil
}
