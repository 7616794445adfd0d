// Package events collects the state changes a connection reports to its
// application: stream lifecycle, readiness, closure and 0-RTT rejection.
package events

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/1ureka/connevents/internal/protocol"
)

// Kind is the variant of an Event. Its numeric value is the primary sort key.
type Kind uint8

const (
	KindNewStream Kind = iota
	KindSendStreamWritable
	KindRecvStreamReadable
	KindRecvStreamReset
	KindSendStreamStopSending
	KindSendStreamComplete
	KindSendStreamCreatable
	KindConnectionClosed
	KindZeroRTTRejected
)

var kindNames = [...]string{
	KindNewStream:             "NewStream",
	KindSendStreamWritable:    "SendStreamWritable",
	KindRecvStreamReadable:    "RecvStreamReadable",
	KindRecvStreamReset:       "RecvStreamReset",
	KindSendStreamStopSending: "SendStreamStopSending",
	KindSendStreamComplete:    "SendStreamComplete",
	KindSendStreamCreatable:   "SendStreamCreatable",
	KindConnectionClosed:      "ConnectionClosed",
	KindZeroRTTRejected:       "ZeroRTTRejected",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Event is one observable change. The set of implementations is closed; every
// implementation is a comparable struct so equal events collapse in a map.
// Events are passed by value; pointers to the variant structs are not valid
// Events for Compare.
type Event interface {
	Kind() Kind
	String() string
	event()
}

// NewStream: a uni or bidi stream has been opened by the peer.
type NewStream struct {
	StreamID   uint64
	StreamType protocol.StreamType
}

// SendStreamWritable: space is available for an application write to succeed.
type SendStreamWritable struct {
	StreamID uint64
}

// RecvStreamReadable: new bytes are available for reading.
type RecvStreamReadable struct {
	StreamID uint64
}

// RecvStreamReset: the peer reset the stream.
type RecvStreamReset struct {
	StreamID uint64
	AppError protocol.AppError
}

// SendStreamStopSending: the peer has sent STOP_SENDING.
type SendStreamStopSending struct {
	StreamID uint64
	AppError protocol.AppError
}

// SendStreamComplete: the peer has acked everything sent on the stream.
type SendStreamComplete struct {
	StreamID uint64
}

// SendStreamCreatable: the peer raised MAX_STREAMS for this stream type.
type SendStreamCreatable struct {
	StreamType protocol.StreamType
}

// ConnectionClosed: the connection is closed.
type ConnectionClosed struct {
	ErrorCode    protocol.CloseError
	FrameType    uint64
	ReasonPhrase string
}

// ZeroRTTRejected: the server rejected 0-RTT. All state in streams created so
// far is invalid and any data written to them must be written again.
type ZeroRTTRejected struct{}

func (NewStream) Kind() Kind             { return KindNewStream }
func (SendStreamWritable) Kind() Kind    { return KindSendStreamWritable }
func (RecvStreamReadable) Kind() Kind    { return KindRecvStreamReadable }
func (RecvStreamReset) Kind() Kind       { return KindRecvStreamReset }
func (SendStreamStopSending) Kind() Kind { return KindSendStreamStopSending }
func (SendStreamComplete) Kind() Kind    { return KindSendStreamComplete }
func (SendStreamCreatable) Kind() Kind   { return KindSendStreamCreatable }
func (ConnectionClosed) Kind() Kind      { return KindConnectionClosed }
func (ZeroRTTRejected) Kind() Kind       { return KindZeroRTTRejected }

func (NewStream) event()             {}
func (SendStreamWritable) event()    {}
func (RecvStreamReadable) event()    {}
func (RecvStreamReset) event()       {}
func (SendStreamStopSending) event() {}
func (SendStreamComplete) event()    {}
func (SendStreamCreatable) event()   {}
func (ConnectionClosed) event()      {}
func (ZeroRTTRejected) event()       {}

func (e NewStream) String() string {
	return fmt.Sprintf("NewStream(%d, %s)", e.StreamID, e.StreamType)
}

func (e SendStreamWritable) String() string {
	return fmt.Sprintf("SendStreamWritable(%d)", e.StreamID)
}

func (e RecvStreamReadable) String() string {
	return fmt.Sprintf("RecvStreamReadable(%d)", e.StreamID)
}

func (e RecvStreamReset) String() string {
	return fmt.Sprintf("RecvStreamReset(%d, %d)", e.StreamID, e.AppError)
}

func (e SendStreamStopSending) String() string {
	return fmt.Sprintf("SendStreamStopSending(%d, %d)", e.StreamID, e.AppError)
}

func (e SendStreamComplete) String() string {
	return fmt.Sprintf("SendStreamComplete(%d)", e.StreamID)
}

func (e SendStreamCreatable) String() string {
	return fmt.Sprintf("SendStreamCreatable(%s)", e.StreamType)
}

func (e ConnectionClosed) String() string {
	return fmt.Sprintf("ConnectionClosed(%s, 0x%x, %q)", e.ErrorCode, e.FrameType, e.ReasonPhrase)
}

func (ZeroRTTRejected) String() string { return "ZeroRTTRejected" }

// Compare orders events by Kind, then by their fields in declaration order.
// It returns -1, 0 or +1 and is consistent with ==.
func Compare(a, b Event) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}

	// Same kind, so the type assertions on b cannot fail.
	switch x := a.(type) {
	case NewStream:
		y := b.(NewStream)
		return cmp.Or(
			cmp.Compare(x.StreamID, y.StreamID),
			cmp.Compare(x.StreamType, y.StreamType),
		)
	case SendStreamWritable:
		return cmp.Compare(x.StreamID, b.(SendStreamWritable).StreamID)
	case RecvStreamReadable:
		return cmp.Compare(x.StreamID, b.(RecvStreamReadable).StreamID)
	case RecvStreamReset:
		y := b.(RecvStreamReset)
		return cmp.Or(
			cmp.Compare(x.StreamID, y.StreamID),
			cmp.Compare(x.AppError, y.AppError),
		)
	case SendStreamStopSending:
		y := b.(SendStreamStopSending)
		return cmp.Or(
			cmp.Compare(x.StreamID, y.StreamID),
			cmp.Compare(x.AppError, y.AppError),
		)
	case SendStreamComplete:
		return cmp.Compare(x.StreamID, b.(SendStreamComplete).StreamID)
	case SendStreamCreatable:
		return cmp.Compare(x.StreamType, b.(SendStreamCreatable).StreamType)
	case ConnectionClosed:
		y := b.(ConnectionClosed)
		return cmp.Or(
			x.ErrorCode.Compare(y.ErrorCode),
			cmp.Compare(x.FrameType, y.FrameType),
			strings.Compare(x.ReasonPhrase, y.ReasonPhrase),
		)
	default:
		return 0
	}
}
