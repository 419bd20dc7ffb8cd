package mqtt311

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/rs/xid"
)

// Default connection settings.
const (
	// DefaultHost is the broker address used when none is configured.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the plain TCP broker port.
	DefaultPort = 1883

	// DefaultTLSPort is the TLS broker port.
	DefaultTLSPort = 8883

	// DefaultClientID is the client identifier used when none is
	// configured.
	DefaultClientID = "vibe-mqtt"

	// DefaultRetryDelay is the in-flight retransmission age threshold.
	DefaultRetryDelay = 10 * time.Second

	// DefaultRetryAttempts is how many times an unacknowledged publish
	// is retransmitted.
	DefaultRetryAttempts = 3
)

// ConnackHandler is called with the broker's CONNECT response.
type ConnackHandler func(sessionPresent bool, code ConnectReturnCode)

// PublishHandler is called with every application message received from
// the broker.
type PublishHandler func(msg *Message)

// SubackHandler is called when a subscribe completes, with the granted
// QoS (or 0x80 failure) per requested filter.
type SubackHandler func(packetID uint16, returnCodes []byte)

// UnsubackHandler is called when an unsubscribe completes.
type UnsubackHandler func(packetID uint16)

// PingrespHandler is called when the broker answers a PINGREQ.
type PingrespHandler func()

// DisconnectHandler is called once per connection when it ends. The error
// is nil for a caller-initiated disconnect.
type DisconnectHandler func(err error)

// clientOptions holds configuration for a Client.
type clientOptions struct {
	// Connection settings
	host     string
	port     uint16
	portSet  bool
	clientID string
	username string
	password []byte

	// Session behavior
	cleanSession      bool
	sendQueueSize     int
	inflightQueueSize int

	// Retransmission of unacknowledged in-flight publishes
	retryDelay    time.Duration
	retryAttempts int

	// Keepalive and reconnect intervals; zero disables either
	keepAlive time.Duration
	reconnect time.Duration

	// Will message
	willTopic   string
	willMessage []byte
	willQoS     byte
	willRetain  bool

	// Transport
	tlsConfig *tls.Config
	dialer    Dialer

	// Packet id allocator; the process-wide one unless overridden
	ids *PacketIDAllocator

	logger Logger

	// Hooks
	onConnack    ConnackHandler
	onPublish    PublishHandler
	onSuback     SubackHandler
	onUnsuback   UnsubackHandler
	onPingresp   PingrespHandler
	onDisconnect DisconnectHandler
	onEvent      EventHandler
}

// defaultOptions returns options with the documented defaults.
func defaultOptions() *clientOptions {
	return &clientOptions{
		host:              DefaultHost,
		port:              DefaultPort,
		clientID:          DefaultClientID,
		cleanSession:      true,
		sendQueueSize:     DefaultSendQueueSize,
		inflightQueueSize: DefaultInflightQueueSize,
		retryDelay:        DefaultRetryDelay,
		retryAttempts:     DefaultRetryAttempts,
		ids:               sharedIDs,
		logger:            NewNoOpLogger(),
	}
}

// applyOptions builds a clientOptions from the defaults and opts.
func applyOptions(opts ...Option) *clientOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.tlsConfig != nil && !options.portSet {
		options.port = DefaultTLSPort
	}

	if options.clientID == "" {
		options.clientID = fallbackClientID()
	}

	return options
}

// fallbackClientID derives an identifier when the caller configured an
// empty one: the host name, or a random id when that is unavailable.
func fallbackClientID() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return DefaultClientID + "-" + xid.New().String()
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBroker sets the broker host and port.
func WithBroker(host string, port uint16) Option {
	return func(o *clientOptions) {
		o.host = host
		o.port = port
		o.portSet = true
	}
}

// WithHost sets the broker host, keeping the default port.
func WithHost(host string) Option {
	return func(o *clientOptions) {
		o.host = host
	}
}

// WithClientID sets the client identifier. An empty id falls back to the
// local host name.
func WithClientID(id string) Option {
	return func(o *clientOptions) {
		o.clientID = id
	}
}

// WithCredentials sets the user name and password. An empty user name
// means no credentials are sent.
func WithCredentials(username, password string) Option {
	return func(o *clientOptions) {
		o.username = username
		o.password = []byte(password)
	}
}

// WithCleanSession sets the clean-session flag. When set, connecting
// discards the local session queues and asks the broker to do the same.
func WithCleanSession(clean bool) Option {
	return func(o *clientOptions) {
		o.cleanSession = clean
	}
}

// WithKeepAlive sets the PINGREQ interval in seconds. Zero disables
// keepalive.
func WithKeepAlive(seconds uint16) Option {
	return func(o *clientOptions) {
		o.keepAlive = time.Duration(seconds) * time.Second
	}
}

// WithReconnect sets the automatic reconnect interval in seconds. Zero
// disables reconnection.
func WithReconnect(seconds uint16) Option {
	return func(o *clientOptions) {
		o.reconnect = time.Duration(seconds) * time.Second
	}
}

// WithSendQueueSize sets the capacity of the outbound queue.
func WithSendQueueSize(n int) Option {
	return func(o *clientOptions) {
		o.sendQueueSize = n
	}
}

// WithInflightQueueSize sets the capacity of the in-flight queue.
func WithInflightQueueSize(n int) Option {
	return func(o *clientOptions) {
		o.inflightQueueSize = n
	}
}

// WithRetry sets the retransmission age threshold and attempt limit for
// unacknowledged in-flight publishes.
func WithRetry(delay time.Duration, attempts int) Option {
	return func(o *clientOptions) {
		o.retryDelay = delay
		o.retryAttempts = attempts
	}
}

// WithWill sets the will message sent by the broker if this client
// disappears without a DISCONNECT.
func WithWill(topic string, message []byte, qos byte, retain bool) Option {
	return func(o *clientOptions) {
		o.willTopic = topic
		o.willMessage = message
		o.willQoS = qos
		o.willRetain = retain
	}
}

// WithTLS sets the TLS configuration. Unless a port was configured
// explicitly, the default port switches to 8883.
func WithTLS(config *tls.Config) Option {
	return func(o *clientOptions) {
		o.tlsConfig = config
	}
}

// WithDialer overrides the transport used to reach the broker, such as a
// WebSocket, QUIC, or proxy dialer.
func WithDialer(d Dialer) Option {
	return func(o *clientOptions) {
		o.dialer = d
	}
}

// WithPacketIDs gives the client a private packet id allocator instead of
// the process-wide one.
func WithPacketIDs(ids *PacketIDAllocator) Option {
	return func(o *clientOptions) {
		o.ids = ids
	}
}

// WithLogger installs a logger.
func WithLogger(l Logger) Option {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithConnackHandler sets the CONNACK hook.
func WithConnackHandler(h ConnackHandler) Option {
	return func(o *clientOptions) {
		o.onConnack = h
	}
}

// WithPublishHandler sets the inbound message hook.
func WithPublishHandler(h PublishHandler) Option {
	return func(o *clientOptions) {
		o.onPublish = h
	}
}

// WithSubackHandler sets the SUBACK hook.
func WithSubackHandler(h SubackHandler) Option {
	return func(o *clientOptions) {
		o.onSuback = h
	}
}

// WithUnsubackHandler sets the UNSUBACK hook.
func WithUnsubackHandler(h UnsubackHandler) Option {
	return func(o *clientOptions) {
		o.onUnsuback = h
	}
}

// WithPingrespHandler sets the PINGRESP hook.
func WithPingrespHandler(h PingrespHandler) Option {
	return func(o *clientOptions) {
		o.onPingresp = h
	}
}

// WithDisconnectHandler sets the hook called once per connection when it
// ends.
func WithDisconnectHandler(h DisconnectHandler) Option {
	return func(o *clientOptions) {
		o.onDisconnect = h
	}
}

// WithEventHandler sets the lifecycle event hook.
func WithEventHandler(h EventHandler) Option {
	return func(o *clientOptions) {
		o.onEvent = h
	}
}
