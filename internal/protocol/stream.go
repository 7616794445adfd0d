// Package protocol defines the stream and error vocabulary shared by the
// connection's producers and its event consumer.
package protocol

import (
	"cmp"
	"fmt"
)

// StreamType distinguishes bidirectional from unidirectional streams.
// Bidi sorts before Uni.
type StreamType uint8

const (
	StreamTypeBidi StreamType = iota // Both endpoints may send
	StreamTypeUni                    // Only the initiator sends
)

func (t StreamType) String() string {
	switch t {
	case StreamTypeBidi:
		return "bidi"
	case StreamTypeUni:
		return "uni"
	default:
		return fmt.Sprintf("StreamType(%d)", uint8(t))
	}
}

// Initiator identifies which endpoint opened a stream.
type Initiator uint8

const (
	InitiatorClient Initiator = iota
	InitiatorServer
)

func (i Initiator) String() string {
	if i == InitiatorServer {
		return "server"
	}
	return "client"
}

// Stream ID bit layout: bit 0 is the initiator, bit 1 the direction.
const (
	streamInitiatorBit = 0x01
	streamUniBit       = 0x02
)

// StreamID identifies a stream within one connection.
type StreamID uint64

// NewStreamID builds the id of the index-th stream of the given type opened
// by the given initiator.
func NewStreamID(index uint64, typ StreamType, initiator Initiator) StreamID {
	id := index << 2
	if initiator == InitiatorServer {
		id |= streamInitiatorBit
	}
	if typ == StreamTypeUni {
		id |= streamUniBit
	}
	return StreamID(id)
}

func (id StreamID) IsBidi() bool { return id&streamUniBit == 0 }
func (id StreamID) IsUni() bool  { return !id.IsBidi() }

func (id StreamID) IsClientInitiated() bool { return id&streamInitiatorBit == 0 }
func (id StreamID) IsServerInitiated() bool { return !id.IsClientInitiated() }

// Type reports the direction encoded in the id.
func (id StreamID) Type() StreamType {
	if id.IsUni() {
		return StreamTypeUni
	}
	return StreamTypeBidi
}

// Initiator reports which endpoint opened the stream.
func (id StreamID) Initiator() Initiator {
	if id.IsServerInitiated() {
		return InitiatorServer
	}
	return InitiatorClient
}

// Index returns the per-(type, initiator) sequence number of the stream.
func (id StreamID) Index() uint64 { return uint64(id) >> 2 }

func (id StreamID) String() string {
	return fmt.Sprintf("%d", uint64(id))
}

// AppError is an application-defined code carried by stream resets,
// STOP_SENDING and application closes.
type AppError = uint64

// CloseErrorKind says which layer produced a connection close.
// Transport sorts before Application.
type CloseErrorKind uint8

const (
	CloseErrorTransport CloseErrorKind = iota
	CloseErrorApplication
)

// CloseError is the error code attached to a connection close.
type CloseError struct {
	Kind CloseErrorKind
	Code uint64
}

// TransportError returns a transport-layer close error.
func TransportError(code uint64) CloseError {
	return CloseError{Kind: CloseErrorTransport, Code: code}
}

// ApplicationError returns an application-layer close error.
func ApplicationError(code AppError) CloseError {
	return CloseError{Kind: CloseErrorApplication, Code: code}
}

// Compare orders close errors by kind, then by code.
func (e CloseError) Compare(other CloseError) int {
	return cmp.Or(
		cmp.Compare(e.Kind, other.Kind),
		cmp.Compare(e.Code, other.Code),
	)
}

func (e CloseError) String() string {
	if e.Kind == CloseErrorApplication {
		return fmt.Sprintf("application(0x%x)", e.Code)
	}
	return fmt.Sprintf("transport(0x%x)", e.Code)
}
