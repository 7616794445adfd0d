// Package conn is the application-facing side of a connection's event
// mailbox. Producers inside the connection receive the shared mailbox from
// Handle.Mailbox; the application drains it through Events or Run.
package conn

import (
	"context"
	"time"

	"github.com/1ureka/connevents/internal/config"
	"github.com/1ureka/connevents/internal/events"
	"github.com/1ureka/connevents/internal/util"
)

// Handle owns one connection's mailbox for the lifetime of the connection.
type Handle struct {
	cfg     config.Config
	mailbox *events.Mailbox
}

// New creates a handle with an empty mailbox.
func New(cfg config.Config) *Handle {
	if cfg.Debug {
		util.EnableDebug()
	}
	return &Handle{
		cfg:     cfg,
		mailbox: events.NewMailbox(),
	}
}

// Mailbox returns the mailbox shared by every producer of this connection.
func (h *Handle) Mailbox() *events.Mailbox {
	return h.mailbox
}

// Events runs one poll cycle: it returns everything raised since the previous
// call, in event order.
func (h *Handle) Events() []events.Event {
	batch := h.mailbox.Drain()
	if len(batch) == 0 {
		return nil
	}

	util.Stats.AddEvents(len(batch))
	for _, e := range batch {
		util.LogDebug("event %s", e)
	}
	return batch
}

// Run polls the mailbox every cfg.PollInterval and passes non-empty batches
// to fn. It blocks until ctx is cancelled; events still pending at that point
// stay in the mailbox.
func (h *Handle) Run(ctx context.Context, fn func([]events.Event)) {
	if h.cfg.StatsInterval > 0 {
		util.StartStatsReporter(ctx, h.cfg.StatsInterval)
	}

	interval := h.cfg.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if batch := h.Events(); len(batch) > 0 {
				fn(batch)
			}

		case <-ctx.Done():
			return
		}
	}
}
