// Package webrtc turns DataChannel traffic into datagrams. It binds each
// message to the endpoints of the selected ICE candidate pair; it does not
// open, read or write any socket itself.
package webrtc

import (
	"bytes"
	"errors"
	"fmt"
	"net/netip"

	"github.com/pion/webrtc/v4"

	"github.com/1ureka/connevents/internal/datagram"
	"github.com/1ureka/connevents/internal/util"
)

var (
	// ErrNoCandidate is returned when a candidate or candidate pair is missing.
	ErrNoCandidate = errors.New("webrtc: missing ICE candidate")
	// ErrNotIPAddress is returned for candidates whose address is a hostname,
	// such as an mDNS ".local" name, rather than an IP literal.
	ErrNotIPAddress = errors.New("webrtc: candidate address is not an IP")
)

// Endpoint converts an ICE candidate into a datagram endpoint.
func Endpoint(c *webrtc.ICECandidate) (netip.AddrPort, error) {
	if c == nil {
		return netip.AddrPort{}, ErrNoCandidate
	}
	addr, err := netip.ParseAddr(c.Address)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w: %q", ErrNotIPAddress, c.Address)
	}
	return netip.AddrPortFrom(addr.Unmap(), c.Port), nil
}

// Path is the pair of endpoints a DataChannel currently runs over.
type Path struct {
	Local  netip.AddrPort
	Remote netip.AddrPort
}

// PathFromPair resolves both sides of a selected candidate pair, as returned
// by ICETransport.GetSelectedCandidatePair.
func PathFromPair(pair *webrtc.ICECandidatePair) (Path, error) {
	if pair == nil {
		return Path{}, ErrNoCandidate
	}
	local, err := Endpoint(pair.Local)
	if err != nil {
		return Path{}, fmt.Errorf("local candidate: %w", err)
	}
	remote, err := Endpoint(pair.Remote)
	if err != nil {
		return Path{}, fmt.Errorf("remote candidate: %w", err)
	}
	return Path{Local: local, Remote: remote}, nil
}

// Inbound builds the datagram for a received message: it came from the remote
// endpoint to the local one. The payload is copied so the datagram does not
// alias a buffer the DataChannel may reuse.
func (p Path) Inbound(msg webrtc.DataChannelMessage) datagram.Datagram {
	return datagram.New(p.Remote, p.Local, bytes.Clone(msg.Data))
}

// Outbound builds the datagram for a payload about to be sent. It takes
// ownership of payload.
func (p Path) Outbound(payload []byte) datagram.Datagram {
	return datagram.New(p.Local, p.Remote, payload)
}

func (p Path) String() string {
	return fmt.Sprintf("%s <-> %s", p.Local, p.Remote)
}

// OnDatagram registers fn for every inbound DataChannel message, delivered as
// a datagram over path.
func OnDatagram(dc *webrtc.DataChannel, path Path, fn func(datagram.Datagram)) {
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		fn(deliver(path, msg))
	})
}

func deliver(path Path, msg webrtc.DataChannelMessage) datagram.Datagram {
	d := path.Inbound(msg)
	util.Stats.AddDatagram(d.Len())
	util.LogDebug("[%08x] datagram %s", d.PathID(), d)
	return d
}
