package util

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
)

// ──────────────────────────────────────────────────────────────────────────────
// Global stats singleton
// ──────────────────────────────────────────────────────────────────────────────

// Stats is the process-wide datagram/event counter.
var Stats = &stats{}

type stats struct {
	DatagramsRecv atomic.Int64 // datagrams built by the socket-layer adapter
	BytesRecv     atomic.Int64 // payload bytes carried by those datagrams
	EventsDrained atomic.Int64 // events handed to the application
	Rejections    atomic.Int64 // times 0-RTT rejection superseded the backlog
}

func (s *stats) AddDatagram(n int) {
	s.DatagramsRecv.Add(1)
	s.BytesRecv.Add(int64(n))
}

func (s *stats) AddEvents(n int) { s.EventsDrained.Add(int64(n)) }
func (s *stats) AddRejection()   { s.Rejections.Add(1) }

// snapshot is one reading of all counters.
type snapshot struct {
	datagrams, bytes, events, rejections int64
}

func (s *stats) snapshot() snapshot {
	return snapshot{
		datagrams:  s.DatagramsRecv.Load(),
		bytes:      s.BytesRecv.Load(),
		events:     s.EventsDrained.Load(),
		rejections: s.Rejections.Load(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Periodic reporter
// ──────────────────────────────────────────────────────────────────────────────

// StartStatsReporter launches a goroutine that logs counter deltas every
// interval. Quiet intervals are not logged. It stops when ctx is cancelled.
func StartStatsReporter(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		prev := Stats.snapshot()
		for {
			select {
			case <-ticker.C:
				cur := Stats.snapshot()
				if cur != prev {
					pterm.DefaultLogger.Info(formatStats(delta(prev, cur), interval))
				}
				prev = cur

			case <-ctx.Done():
				return
			}
		}
	}()
}

func delta(prev, cur snapshot) snapshot {
	return snapshot{
		datagrams:  cur.datagrams - prev.datagrams,
		bytes:      cur.bytes - prev.bytes,
		events:     cur.events - prev.events,
		rejections: cur.rejections - prev.rejections,
	}
}

// byteUnits defines the units for formatting byte counts in a human-readable way.
var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// formatBytes formats a byte count into a human-readable string with fixed width (exactly 8 chars)
// for example: "99.0   B", " 1.5 KiB", " 0.1 MiB", "98.9 GiB", etc.
func formatBytes(b float64) string {
	unitIdx := 0

	// to prevent "100.0 KiB", which is 9 chars
	for b > 99 && unitIdx < 5 {
		b /= 1024
		unitIdx++
	}

	return fmt.Sprintf("%4.1f %3s", b, byteUnits[unitIdx])
}

// formatStats renders one interval's deltas for the logger.
func formatStats(d snapshot, interval time.Duration) string {
	secs := interval.Seconds()
	return fmt.Sprintf("In: %s/s | Datagrams: %4d | Events: %4d | 0-RTT rejected: %d",
		formatBytes(float64(d.bytes)/secs),
		d.datagrams,
		d.events,
		d.rejections,
	)
}
