package mqtt311

import "errors"

// EventHandler receives client lifecycle events. Events are errors so they
// compose with errors.Is and errors.As.
type EventHandler func(client *Client, event error)

// Sentinel events for the client lifecycle - check with errors.Is().
var (
	// ErrConnected is emitted when the client successfully connects.
	ErrConnected = errors.New("connected")

	// ErrDisconnected is emitted when the client disconnects gracefully.
	ErrDisconnected = errors.New("disconnected")

	// ErrConnectionLost is emitted when the transport fails unexpectedly.
	ErrConnectionLost = errors.New("connection lost")

	// ErrReconnecting is emitted when a reconnect has been scheduled.
	ErrReconnecting = errors.New("reconnecting")
)

// Sentinel errors for protocol issues - check with errors.Is().
var (
	// ErrProtocolViolation is returned when a well-formed packet arrives
	// in an illegal context, such as a CONNECT from the broker.
	ErrProtocolViolation = errors.New("protocol violation")
)

// Sentinel errors for timer expiries - check with errors.Is(). Each is the
// error passed to the DisconnectHandler when its timer tears the
// connection down; the EventHandler receives ErrConnectionLost instead.
var (
	// ErrConnackTimeout is reported when the broker does not answer
	// CONNECT in time.
	ErrConnackTimeout = errors.New("CONNACK timeout")

	// ErrAckTimeout is reported when a SUBACK or UNSUBACK does not arrive
	// in time.
	ErrAckTimeout = errors.New("acknowledgment timeout")

	// ErrPingTimeout is reported when the broker does not answer PINGREQ
	// in time.
	ErrPingTimeout = errors.New("PINGRESP timeout")
)

// Sentinel errors for operations - check with errors.Is().
var (
	// ErrNotConnected is returned when an operation requires an active
	// connection.
	ErrNotConnected = errors.New("not connected")

	// ErrConnectPending is returned by Connect while a CONNACK is still
	// outstanding.
	ErrConnectPending = errors.New("connect already pending")

	// ErrSubscribePending is returned while a previous subscribe awaits
	// its SUBACK.
	ErrSubscribePending = errors.New("subscribe already pending")

	// ErrUnsubscribePending is returned while a previous unsubscribe
	// awaits its UNSUBACK.
	ErrUnsubscribePending = errors.New("unsubscribe already pending")
)

// ConnectError is returned when the broker refuses the connection.
// Extract with errors.As() to read the return code.
type ConnectError struct {
	ReturnCode ConnectReturnCode
}

func (e *ConnectError) Error() string {
	return e.ReturnCode.String()
}

// NewConnectError creates a ConnectError for a refused return code.
func NewConnectError(code ConnectReturnCode) *ConnectError {
	return &ConnectError{ReturnCode: code}
}
