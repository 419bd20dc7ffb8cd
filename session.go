package mqtt311

// Default session queue capacities.
const (
	// DefaultSendQueueSize is the default capacity of the outbound queue.
	DefaultSendQueueSize = 1000

	// DefaultInflightQueueSize is the default capacity of the in-flight
	// queue.
	DefaultInflightQueueSize = 10
)

// Session holds the outstanding work for a client-broker pair: publishes
// waiting to be dispatched and publishes whose QoS handshake is still
// open. Every QoS 1/2 context in either queue owns a unique in-use packet
// id. The session lives in memory only; a clean-session connect discards
// it.
type Session struct {
	// Send queues publishes awaiting dispatch, in publish order.
	Send *Queue

	// InFlight holds contexts whose acknowledgment handshake is open.
	InFlight *Queue
}

// NewSession creates a session with the given queue capacities. Values
// below one fall back to the defaults.
func NewSession(sendSize, inflightSize int) *Session {
	if sendSize < 1 {
		sendSize = DefaultSendQueueSize
	}
	if inflightSize < 1 {
		inflightSize = DefaultInflightQueueSize
	}

	return &Session{
		Send:     NewQueue(sendSize),
		InFlight: NewQueue(inflightSize),
	}
}

// Clear empties both queues, releasing all owned packet ids.
func (s *Session) Clear() {
	s.Send.Clear()
	s.InFlight.Clear()
}

// Pending returns the total number of contexts across both queues.
func (s *Session) Pending() int {
	return s.Send.Len() + s.InFlight.Len()
}
