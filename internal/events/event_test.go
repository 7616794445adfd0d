package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1ureka/connevents/internal/protocol"
)

// TestKindRank pins the variant order used as the primary sort key.
func TestKindRank(t *testing.T) {
	ordered := []Event{
		NewStream{},
		SendStreamWritable{},
		RecvStreamReadable{},
		RecvStreamReset{},
		SendStreamStopSending{},
		SendStreamComplete{},
		SendStreamCreatable{},
		ConnectionClosed{},
		ZeroRTTRejected{},
	}

	for i, e := range ordered {
		assert.Equal(t, Kind(i), e.Kind(), e.String())
		if i > 0 {
			assert.Equal(t, 1, Compare(e, ordered[i-1]), "%s vs %s", e, ordered[i-1])
			assert.Equal(t, -1, Compare(ordered[i-1], e), "%s vs %s", ordered[i-1], e)
		}
	}
}

// TestCompareFields covers the secondary key of every variant with fields.
func TestCompareFields(t *testing.T) {
	testCases := []struct {
		name string
		a, b Event
		want int
	}{
		{"equal", NewStream{4, protocol.StreamTypeUni}, NewStream{4, protocol.StreamTypeUni}, 0},
		{"stream id first", NewStream{3, protocol.StreamTypeUni}, NewStream{4, protocol.StreamTypeBidi}, -1},
		{"stream type second", NewStream{4, protocol.StreamTypeUni}, NewStream{4, protocol.StreamTypeBidi}, 1},
		{"writable id", SendStreamWritable{9}, SendStreamWritable{2}, 1},
		{"readable id", RecvStreamReadable{1}, RecvStreamReadable{2}, -1},
		{"reset app error", RecvStreamReset{1, 5}, RecvStreamReset{1, 6}, -1},
		{"reset id before app error", RecvStreamReset{2, 0}, RecvStreamReset{1, 99}, 1},
		{"stop sending app error", SendStreamStopSending{1, 7}, SendStreamStopSending{1, 7}, 0},
		{"complete id", SendStreamComplete{0}, SendStreamComplete{1}, -1},
		{"creatable type", SendStreamCreatable{protocol.StreamTypeBidi}, SendStreamCreatable{protocol.StreamTypeUni}, -1},
		{
			"closed error kind first",
			ConnectionClosed{protocol.ApplicationError(0), 0, "a"},
			ConnectionClosed{protocol.TransportError(9), 9, "z"},
			1,
		},
		{
			"closed frame type second",
			ConnectionClosed{protocol.TransportError(1), 2, "z"},
			ConnectionClosed{protocol.TransportError(1), 3, "a"},
			-1,
		},
		{
			"closed reason lexical",
			ConnectionClosed{protocol.TransportError(1), 2, "abc"},
			ConnectionClosed{protocol.TransportError(1), 2, "abd"},
			-1,
		},
		{"zero rtt", ZeroRTTRejected{}, ZeroRTTRejected{}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compare(tc.a, tc.b))
			assert.Equal(t, -tc.want, Compare(tc.b, tc.a))
			assert.Equal(t, tc.want == 0, tc.a == tc.b)
		})
	}
}

func TestEventString(t *testing.T) {
	testCases := []struct {
		e    Event
		want string
	}{
		{NewStream{4, protocol.StreamTypeUni}, "NewStream(4, uni)"},
		{SendStreamWritable{2}, "SendStreamWritable(2)"},
		{RecvStreamReadable{1}, "RecvStreamReadable(1)"},
		{RecvStreamReset{1, 3}, "RecvStreamReset(1, 3)"},
		{SendStreamStopSending{5, 0}, "SendStreamStopSending(5, 0)"},
		{SendStreamComplete{8}, "SendStreamComplete(8)"},
		{SendStreamCreatable{protocol.StreamTypeBidi}, "SendStreamCreatable(bidi)"},
		{ConnectionClosed{protocol.TransportError(10), 0x1c, "idle"}, `ConnectionClosed(transport(0xa), 0x1c, "idle")`},
		{ZeroRTTRejected{}, "ZeroRTTRejected"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.e.String())
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "SendStreamStopSending", KindSendStreamStopSending.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
