package mqtt311

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(0, 0)

	assert.Equal(t, 0, s.Send.Len())
	assert.Equal(t, 0, s.InFlight.Len())

	// Defaults apply when sizes are out of range.
	for i := 0; i < DefaultInflightQueueSize; i++ {
		assert.True(t, s.InFlight.TryAdd(newBrokerContext(&PublishPacket{QoS: QoS2, Topic: "t", PacketID: uint16(i + 1)}, StateAwaitingPubrel)))
	}
	assert.True(t, s.InFlight.Full())
}

func TestSessionClearReleasesEverything(t *testing.T) {
	ids := NewPacketIDAllocator()
	s := NewSession(4, 4)

	a := queuedContext(t, ids, QoS1)
	b := queuedContext(t, ids, QoS2)
	b.SetState(StateAwaitingPubrec)
	s.Send.Add(a)
	s.InFlight.TryAdd(b)
	require.Equal(t, 2, s.Pending())

	s.Clear()

	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, ids.Used())
}

func TestMessageContextReleaseOnce(t *testing.T) {
	ids := NewPacketIDAllocator()
	mc := queuedContext(t, ids, QoS1)
	require.Equal(t, 1, ids.Used())

	mc.Release()
	mc.Release()
	assert.Equal(t, 0, ids.Used())
}

func TestBrokerContextReleaseIsNoOp(t *testing.T) {
	mc := newBrokerContext(&PublishPacket{QoS: QoS2, Topic: "t", PacketID: 9}, StateAwaitingPubrel)
	assert.NotPanics(t, mc.Release)
}

func TestPacketStateString(t *testing.T) {
	assert.Equal(t, "queued-qos0", StateQueuedQoS0.String())
	assert.Equal(t, "awaiting-pubcomp", StateAwaitingPubcomp.String())
	assert.True(t, StateQueuedQoS2.queued())
	assert.False(t, StateAwaitingPuback.queued())
}
