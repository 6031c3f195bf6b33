package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/jiobot/internal/adapters/chatbot"
)

// ErrQueueClosed is returned by Enqueue once the runner has stopped.
var ErrQueueClosed = errors.New("update queue closed")

// EventDispatcher handles one chatbot event at a time.
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev chatbot.Event) error
}

// Runner serializes updates: producers (webhook, long polling) only enqueue,
// and a single goroutine running Run hands them to the dispatcher in order.
type Runner struct {
	updates     chan tgbotapi.Update
	done        chan struct{}
	dispatcher  EventDispatcher
	botUsername string
	logger      *zap.Logger
}

// NewRunner creates a Runner with a bounded queue of queueSize updates.
func NewRunner(dispatcher EventDispatcher, botUsername string, queueSize int, logger *zap.Logger) *Runner {
	if queueSize <= 0 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		updates:     make(chan tgbotapi.Update, queueSize),
		done:        make(chan struct{}),
		dispatcher:  dispatcher,
		botUsername: botUsername,
		logger:      logger.Named("runner"),
	}
}

// Enqueue queues an update, blocking while the queue is full.
func (r *Runner) Enqueue(ctx context.Context, u tgbotapi.Update) error {
	select {
	case <-r.done:
		return ErrQueueClosed
	default:
	}

	select {
	case r.updates <- u:
		return nil
	case <-r.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return fmt.Errorf("enqueue update %d: %w", u.UpdateID, ctx.Err())
	}
}

// Run dispatches queued updates until ctx is cancelled. Updates still queued
// at that point are dropped.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	r.logger.Info("dispatch loop started", zap.Int("queue_size", cap(r.updates)))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("dispatch loop stopped", zap.Int("dropped", len(r.updates)))
			return nil
		case u := <-r.updates:
			r.handle(ctx, u)
		}
	}
}

func (r *Runner) handle(ctx context.Context, u tgbotapi.Update) {
	ev, ok := ToEvent(u, r.botUsername)
	if !ok {
		r.logger.Debug("ignoring update", zap.Int("update_id", u.UpdateID))
		return
	}
	// Dispatch already logs and reports failures to the user.
	_ = r.dispatcher.Dispatch(ctx, ev)
}

// UpdateSource is the long-polling half of the Bot API client.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poll feeds long-polled updates into the queue until ctx is cancelled.
func (r *Runner) Poll(ctx context.Context, source UpdateSource) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	cfg.AllowedUpdates = AllowedUpdates

	updates := source.GetUpdatesChan(cfg)
	r.logger.Info("long polling started")
	defer source.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("long polling stopped")
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if err := r.Enqueue(ctx, u); err != nil {
				if errors.Is(err, ErrQueueClosed) || ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
