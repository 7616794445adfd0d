package events

import (
	"slices"
	"sync"

	"github.com/1ureka/connevents/internal/protocol"
	"github.com/1ureka/connevents/internal/util"
)

// Mailbox is the set of events raised since the consumer last drained it.
// Producers share one *Mailbox per connection; a single consumer calls Drain
// once per poll cycle. Equal events are stored once.
//
// The zero value is an empty mailbox ready for use. A Mailbox must not be
// copied after first use.
type Mailbox struct {
	mu      sync.Mutex
	pending map[Event]struct{}
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{pending: make(map[Event]struct{})}
}

// NewStream records that the peer opened a stream.
func (m *Mailbox) NewStream(id protocol.StreamID, typ protocol.StreamType) {
	m.insert(NewStream{StreamID: uint64(id), StreamType: typ})
}

// SendStreamWritable records that a send stream can accept more data.
func (m *Mailbox) SendStreamWritable(id protocol.StreamID) {
	m.insert(SendStreamWritable{StreamID: uint64(id)})
}

// RecvStreamReadable records that a receive stream has data to read.
func (m *Mailbox) RecvStreamReadable(id protocol.StreamID) {
	m.insert(RecvStreamReadable{StreamID: uint64(id)})
}

// RecvStreamReset records that the peer reset a receive stream.
func (m *Mailbox) RecvStreamReset(id protocol.StreamID, appErr protocol.AppError) {
	m.insert(RecvStreamReset{StreamID: uint64(id), AppError: appErr})
}

// SendStreamStopSending records that the peer sent STOP_SENDING.
func (m *Mailbox) SendStreamStopSending(id protocol.StreamID, appErr protocol.AppError) {
	m.insert(SendStreamStopSending{StreamID: uint64(id), AppError: appErr})
}

// SendStreamComplete records that everything sent on a stream was acked.
func (m *Mailbox) SendStreamComplete(id protocol.StreamID) {
	m.insert(SendStreamComplete{StreamID: uint64(id)})
}

// SendStreamCreatable records that the peer allows more streams of typ.
func (m *Mailbox) SendStreamCreatable(typ protocol.StreamType) {
	m.insert(SendStreamCreatable{StreamType: typ})
}

// ConnectionClosed records that the connection closed.
func (m *Mailbox) ConnectionClosed(code protocol.CloseError, frameType uint64, reason string) {
	m.insert(ConnectionClosed{ErrorCode: code, FrameType: frameType, ReasonPhrase: reason})
}

// ZeroRTTRejected discards every pending event and leaves only
// ZeroRTTRejected. No concurrent insert can land between the discard and the
// insert.
func (m *Mailbox) ZeroRTTRejected() {
	m.mu.Lock()
	discarded := len(m.pending)
	m.pending = map[Event]struct{}{ZeroRTTRejected{}: {}}
	m.mu.Unlock()

	util.Stats.AddRejection()
	util.LogDebug("0-RTT rejected, discarded %d pending events", discarded)
}

// Drain removes every pending event and returns them ordered by Compare.
// It returns nil when nothing is pending.
func (m *Mailbox) Drain() []Event {
	m.mu.Lock()
	taken := m.pending
	m.pending = nil
	m.mu.Unlock()

	if len(taken) == 0 {
		return nil
	}

	out := make([]Event, 0, len(taken))
	for e := range taken {
		out = append(out, e)
	}
	slices.SortFunc(out, Compare)
	return out
}

func (m *Mailbox) insert(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		m.pending = make(map[Event]struct{})
	}
	m.pending[e] = struct{}{}
}
