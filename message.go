package mqtt311

import (
	"sync"
	"sync/atomic"
	"time"
)

// PacketState tracks where a publish sits in its delivery handshake.
type PacketState int32

// Delivery states. Queued states live in the send queue; awaiting states
// live in the in-flight queue.
const (
	// StateQueuedQoS0 is a fire-and-forget publish waiting for dispatch.
	StateQueuedQoS0 PacketState = iota

	// StateQueuedQoS1 is a QoS 1 publish waiting for dispatch.
	StateQueuedQoS1

	// StateQueuedQoS2 is a QoS 2 publish waiting for dispatch.
	StateQueuedQoS2

	// StateAwaitingPuback is a sent QoS 1 publish waiting for PUBACK.
	StateAwaitingPuback

	// StateAwaitingPubrec is a sent QoS 2 publish waiting for PUBREC.
	StateAwaitingPubrec

	// StateAwaitingPubrel is a received QoS 2 publish waiting for PUBREL.
	StateAwaitingPubrel

	// StateAwaitingPubcomp is a released QoS 2 publish waiting for PUBCOMP.
	StateAwaitingPubcomp
)

// String returns the string representation of the state.
func (s PacketState) String() string {
	switch s {
	case StateQueuedQoS0:
		return "queued-qos0"
	case StateQueuedQoS1:
		return "queued-qos1"
	case StateQueuedQoS2:
		return "queued-qos2"
	case StateAwaitingPuback:
		return "awaiting-puback"
	case StateAwaitingPubrec:
		return "awaiting-pubrec"
	case StateAwaitingPubrel:
		return "awaiting-pubrel"
	case StateAwaitingPubcomp:
		return "awaiting-pubcomp"
	default:
		return "unknown"
	}
}

// queued reports whether the state belongs in the send queue.
func (s PacketState) queued() bool {
	return s == StateQueuedQoS0 || s == StateQueuedQoS1 || s == StateQueuedQoS2
}

// Origin identifies which side of the connection created a message context.
type Origin int

const (
	// OriginClient marks a publish created by this client.
	OriginClient Origin = iota

	// OriginBroker marks a publish received from the broker.
	OriginBroker
)

// MessageContext wraps a PUBLISH moving through the session queues with
// its handshake state. A client-origin context owns its packet id
// reservation and returns it to the allocator exactly once, when the
// context leaves the session for good.
//
// The handshake fields are atomics: the receive goroutine advances the
// state while the retransmission scanner reads it.
type MessageContext struct {
	// Packet is the wrapped PUBLISH. Not mutated after creation.
	Packet *PublishPacket

	// Origin records which side created the context.
	Origin Origin

	state        atomic.Int32
	attempts     atomic.Int32
	lastActivity atomic.Int64

	ids         *PacketIDAllocator
	releaseOnce sync.Once
}

// newClientContext creates a client-origin context whose packet id (if
// any) was allocated from ids.
func newClientContext(pkt *PublishPacket, state PacketState, ids *PacketIDAllocator) *MessageContext {
	mc := &MessageContext{
		Packet: pkt,
		Origin: OriginClient,
		ids:    ids,
	}
	mc.state.Store(int32(state))
	mc.lastActivity.Store(time.Now().UnixNano())
	return mc
}

// newBrokerContext creates a broker-origin context. The packet id belongs
// to the broker's number space and is never returned to our allocator.
func newBrokerContext(pkt *PublishPacket, state PacketState) *MessageContext {
	mc := &MessageContext{
		Packet: pkt,
		Origin: OriginBroker,
	}
	mc.state.Store(int32(state))
	mc.lastActivity.Store(time.Now().UnixNano())
	return mc
}

// State returns the current handshake state.
func (c *MessageContext) State() PacketState {
	return PacketState(c.state.Load())
}

// SetState transitions the handshake state and stamps the activity time.
func (c *MessageContext) SetState(s PacketState) {
	c.state.Store(int32(s))
	c.lastActivity.Store(time.Now().UnixNano())
}

// Attempts returns the number of transmissions so far.
func (c *MessageContext) Attempts() int {
	return int(c.attempts.Load())
}

// LastActivity returns the time of the last transmission or transition.
func (c *MessageContext) LastActivity() time.Time {
	return time.Unix(0, c.lastActivity.Load())
}

// Touch records a transmission: bumps the attempt counter and the
// last-activity timestamp.
func (c *MessageContext) Touch() {
	c.attempts.Add(1)
	c.lastActivity.Store(time.Now().UnixNano())
}

// Release returns the context's packet id to the allocator. Safe to call
// more than once; only the first call frees the id, and broker-origin
// contexts are a no-op.
func (c *MessageContext) Release() {
	c.releaseOnce.Do(func() {
		if c.Origin != OriginClient || c.ids == nil || c.Packet.PacketID == 0 {
			return
		}
		c.ids.MarkFree(c.Packet.PacketID)
	})
}
