// Package datagram provides the immutable packet value exchanged between the
// socket layer and the packet parser.
package datagram

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"io"
	"iter"
	"net/netip"
)

// Datagram binds one packet payload to the endpoints it travelled between.
// All fields are unexported; nothing can change them after New.
type Datagram struct {
	src     netip.AddrPort
	dst     netip.AddrPort
	payload []byte
}

// New creates a Datagram. It takes ownership of payload: the caller must not
// modify the slice afterwards.
func New(src, dst netip.AddrPort, payload []byte) Datagram {
	return Datagram{src: src, dst: dst, payload: payload}
}

// Source returns the endpoint the datagram was sent from.
func (d Datagram) Source() netip.AddrPort { return d.src }

// Destination returns the endpoint the datagram was sent to.
func (d Datagram) Destination() netip.AddrPort { return d.dst }

// Len returns the payload length in bytes.
func (d Datagram) Len() int { return len(d.payload) }

// At returns the i-th payload byte. It panics if i is out of range, like a
// slice index.
func (d Datagram) At(i int) byte { return d.payload[i] }

// All iterates over the payload bytes with their offsets.
func (d Datagram) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i, b := range d.payload {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Bytes returns a copy of the payload.
func (d Datagram) Bytes() []byte {
	return bytes.Clone(d.payload)
}

// WriteTo writes the payload to w. It implements io.WriterTo so the send path
// can hand the payload to a socket without copying it.
func (d Datagram) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.payload)
	return int64(n), err
}

// Equal reports whether both datagrams carry the same endpoints and payload.
func (d Datagram) Equal(other Datagram) bool {
	return d.src == other.src && d.dst == other.dst && bytes.Equal(d.payload, other.payload)
}

// PathID computes a 4-byte hash of the (source, destination) pair. It is used
// solely to correlate log lines and does not need to be reversible.
func (d Datagram) PathID() uint32 {
	h := fnv.New32a()
	h.Write([]byte(d.src.String()))
	h.Write([]byte(d.dst.String()))
	return h.Sum32()
}

func (d Datagram) String() string {
	return fmt.Sprintf("%s -> %s (%d bytes)", d.src, d.dst, len(d.payload))
}
