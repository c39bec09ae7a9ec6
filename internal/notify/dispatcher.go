package notify

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mr1hm/go-wildfire-watch/internal/config"
	"github.com/mr1hm/go-wildfire-watch/internal/models"
	"github.com/mr1hm/go-wildfire-watch/internal/worker"
)

// Dispatcher is the process-wide Notifier. Notify returns as soon as the
// message is queued; workers log it and push it to stream subscribers.
type Dispatcher struct {
	cfg         *config.Config
	broadcaster *Broadcaster
	pool        *worker.Pool[*models.Notification]
	enabled     atomic.Bool
	now         func() time.Time
}

func NewDispatcher(cfg *config.Config, broadcaster *Broadcaster) *Dispatcher {
	d := &Dispatcher{
		cfg:         cfg,
		broadcaster: broadcaster,
		now:         time.Now,
	}
	d.enabled.Store(cfg.Notifications.Enabled)
	return d
}

func (d *Dispatcher) Start(ctx context.Context) {
	processor := func(ctx context.Context, n *models.Notification) error {
		slog.Info("notification", "id", n.ID, "title", n.Title, "body", n.Body)

		if d.broadcaster != nil {
			delivered := d.broadcaster.Broadcast(n)
			slog.Debug("notification broadcast", "id", n.ID, "subscribers", delivered)
		}
		return nil
	}

	d.pool = worker.NewPool(d.cfg.Worker.Count, d.cfg.Worker.BufferSize, processor)
	d.pool.Start(ctx)
}

func (d *Dispatcher) Notify(title, body string) {
	if !d.enabled.Load() {
		slog.Debug("notifications disabled, dropping", "title", title)
		return
	}
	if d.pool == nil {
		slog.Warn("dispatcher not started, dropping notification", "title", title)
		return
	}

	n := &models.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: d.now(),
	}
	if !d.pool.Submit(n) {
		slog.Warn("dispatcher stopped, dropping notification", "id", n.ID, "title", title)
	}
}

// SetEnabled mutes or unmutes delivery at runtime.
func (d *Dispatcher) SetEnabled(enabled bool) {
	d.enabled.Store(enabled)
}

func (d *Dispatcher) Enabled() bool {
	return d.enabled.Load()
}

func (d *Dispatcher) Stop() {
	if d.pool != nil {
		d.pool.Stop()
	}
	slog.Info("notification dispatcher stopped")
}
