package mqtt311

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Protocol engine timer durations.
const (
	// connackTimeout bounds the wait for the broker's CONNECT response.
	connackTimeout = 5 * time.Second

	// ackTimeout bounds the wait for SUBACK and UNSUBACK.
	ackTimeout = time.Second

	// pingrespTimeout bounds the wait for PINGRESP after a PINGREQ.
	pingrespTimeout = 10 * time.Second

	// retryScanInterval is how often the in-flight queue is scanned for
	// stale entries to retransmit.
	retryScanInterval = time.Second
)

// Client is an MQTT 3.1.1 client. It owns a session (send and in-flight
// queues), a receive goroutine that decodes inbound frames, and a
// dispatcher goroutine that drains the send queue. Acknowledgment packets
// are written to the transport directly, never enqueued, so ack flow can
// not deadlock behind a full send queue.
type Client struct {
	options *clientOptions
	session *Session
	ids     *PacketIDAllocator
	log     Logger

	// mu guards conn, stop, readDone, disconnectOnce, the timers, and the
	// pending subscribe/unsubscribe ids.
	mu             sync.Mutex
	conn           Conn
	stop           chan struct{}
	readDone       chan struct{}
	disconnectOnce *sync.Once

	// writeMu serializes transport writes so frames stay atomic.
	writeMu sync.Mutex

	connected      atomic.Bool
	connackPending atomic.Bool
	pingPending    atomic.Bool
	closed         atomic.Bool

	connackTimer   *time.Timer
	pingrespTimer  *time.Timer
	subackTimer    *time.Timer
	unsubackTimer  *time.Timer
	reconnectTimer *time.Timer

	subID    uint16
	subCount int
	unsubID  uint16
}

// NewClient creates a client from the given options. The client does not
// touch the network until Connect.
func NewClient(opts ...Option) *Client {
	options := applyOptions(opts...)

	return &Client{
		options: options,
		session: NewSession(options.sendQueueSize, options.inflightQueueSize),
		ids:     options.ids,
		log:     options.logger,
	}
}

// Session exposes the client's session queues.
func (c *Client) Session() *Session {
	return c.session
}

// IsConnected reports whether a CONNACK-accepted connection is up.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// ClientID returns the client identifier.
func (c *Client) ClientID() string {
	return c.options.clientID
}

// Connect opens the transport, starts the receive and dispatch
// goroutines, and sends CONNECT. It returns once CONNECT is on the wire;
// the CONNACK outcome arrives through the handlers. A connect while a
// CONNACK is still outstanding is refused.
func (c *Client) Connect() error {
	if c.connackPending.Load() {
		return ErrConnectPending
	}
	if c.connected.Load() {
		return nil
	}

	c.closed.Store(false)

	if c.options.cleanSession {
		c.session.Clear()
	}

	dialer := c.options.dialer
	if dialer == nil {
		if c.options.tlsConfig != nil {
			dialer = &TLSDialer{Config: c.options.tlsConfig, Timeout: connackTimeout}
		} else {
			dialer = &TCPDialer{Timeout: connackTimeout}
		}
	}

	address := net.JoinHostPort(c.options.host, strconv.Itoa(int(c.options.port)))

	conn, err := dialer.Dial(context.Background(), address)
	if err != nil {
		c.log.Error("dial failed", LogFields{LogFieldError: err, "address": address})
		c.scheduleReconnect()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.stop = make(chan struct{})
	c.readDone = make(chan struct{})
	c.disconnectOnce = &sync.Once{}
	stop := c.stop
	readDone := c.readDone
	c.mu.Unlock()

	c.connackPending.Store(true)
	c.pingPending.Store(false)

	go c.readLoop(conn, readDone)
	go c.dispatchLoop(stop)
	go c.retryLoop(stop)

	if err := c.writePacket(c.connectPacket()); err != nil {
		return err
	}

	c.armTimer(&c.connackTimer, connackTimeout, func() {
		c.log.Error("CONNACK timeout", LogFields{LogFieldClientID: c.options.clientID})
		c.dropConnection(ErrConnackTimeout)
	})

	return nil
}

// connectPacket builds the CONNECT frame from the options. The keep-alive
// field carries 1.5 times the ping interval so the broker's timeout
// window stays ahead of our PINGREQ cadence.
func (c *Client) connectPacket() *ConnectPacket {
	keepAlive := uint16(c.options.keepAlive / time.Second)
	if keepAlive > 0 {
		keepAlive += keepAlive / 2
	}

	pkt := &ConnectPacket{
		ClientID:     c.options.clientID,
		CleanSession: c.options.cleanSession,
		KeepAlive:    keepAlive,
	}

	if c.options.username != "" {
		pkt.Username = c.options.username
		pkt.Password = c.options.password
	}

	if c.options.willTopic != "" {
		pkt.WillFlag = true
		pkt.WillTopic = c.options.willTopic
		pkt.WillMessage = c.options.willMessage
		pkt.WillQoS = c.options.willQoS
		pkt.WillRetain = c.options.willRetain
	}

	return pkt
}

// Disconnect sends DISCONNECT if connected, closes the transport, and
// waits for the receive goroutine to finish. Automatic reconnection is
// suppressed until the next Connect.
func (c *Client) Disconnect() error {
	c.closed.Store(true)

	c.mu.Lock()
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	readDone := c.readDone
	c.mu.Unlock()

	if c.connected.Load() {
		c.writePacket(&DisconnectPacket{})
	}

	c.dropConnection(nil)

	if readDone != nil {
		select {
		case <-readDone:
		case <-time.After(time.Second):
		}
	}

	return nil
}

// Publish queues an application message. QoS 1 and 2 messages allocate a
// packet id and enter the delivery handshake once dispatched. The call
// blocks while the send queue is full, except for QoS 0 messages, which
// are dropped silently instead.
func (c *Client) Publish(topic string, payload []byte, qos byte, retain bool) error {
	if qos > QoS2 {
		return ErrInvalidQoS
	}
	if err := validateTopicName(topic); err != nil {
		return err
	}

	pkt := &PublishPacket{
		QoS:     qos,
		Retain:  retain,
		Topic:   topic,
		Payload: payload,
	}

	var state PacketState
	switch qos {
	case QoS0:
		state = StateQueuedQoS0
	case QoS1:
		state = StateQueuedQoS1
	case QoS2:
		state = StateQueuedQoS2
	}

	if qos > QoS0 {
		pkt.PacketID = c.ids.Next()
	}

	mc := newClientContext(pkt, state, c.ids)
	c.session.Send.Add(mc)
	return nil
}

// Subscribe sends SUBSCRIBE for the given filters at the requested QoS
// and arms the SUBACK timeout. Only one subscribe may be outstanding at a
// time.
func (c *Client) Subscribe(filters []string, qos byte) error {
	if !c.connected.Load() {
		return ErrNotConnected
	}
	if len(filters) == 0 {
		return ErrNoTopics
	}
	if qos > QoS2 {
		return ErrInvalidRequestedQoS
	}

	id := c.ids.Next()

	c.mu.Lock()
	if c.subID != 0 {
		c.mu.Unlock()
		c.ids.MarkFree(id)
		return ErrSubscribePending
	}
	c.subID = id
	c.subCount = len(filters)
	c.mu.Unlock()

	subs := make([]Subscription, 0, len(filters))
	for _, filter := range filters {
		subs = append(subs, Subscription{TopicFilter: filter, QoS: qos})
	}

	pkt := &SubscribePacket{PacketID: id, Subscriptions: subs}

	if err := c.writePacket(pkt); err != nil {
		c.clearPendingSubscribe(id)
		return err
	}

	c.armTimer(&c.subackTimer, ackTimeout, func() {
		c.log.Error("SUBACK timeout", LogFields{LogFieldPacketID: id})
		c.dropConnection(ErrAckTimeout)
	})

	return nil
}

// clearPendingSubscribe rolls back subscribe bookkeeping after a write
// failure. The connection teardown path may have reclaimed the id
// already; it is freed only while this call still owns it.
func (c *Client) clearPendingSubscribe(id uint16) {
	c.mu.Lock()
	owned := c.subID == id
	if owned {
		c.subID = 0
		c.subCount = 0
	}
	c.mu.Unlock()

	if owned {
		c.ids.MarkFree(id)
	}
}

// Unsubscribe sends UNSUBSCRIBE for the given filters and arms the
// UNSUBACK timeout. Only one unsubscribe may be outstanding at a time.
func (c *Client) Unsubscribe(filters ...string) error {
	if !c.connected.Load() {
		return ErrNotConnected
	}
	if len(filters) == 0 {
		return ErrNoTopics
	}

	id := c.ids.Next()

	c.mu.Lock()
	if c.unsubID != 0 {
		c.mu.Unlock()
		c.ids.MarkFree(id)
		return ErrUnsubscribePending
	}
	c.unsubID = id
	c.mu.Unlock()

	pkt := &UnsubscribePacket{PacketID: id, TopicFilters: filters}

	if err := c.writePacket(pkt); err != nil {
		c.clearPendingUnsubscribe(id)
		return err
	}

	c.armTimer(&c.unsubackTimer, ackTimeout, func() {
		c.log.Error("UNSUBACK timeout", LogFields{LogFieldPacketID: id})
		c.dropConnection(ErrAckTimeout)
	})

	return nil
}

// clearPendingUnsubscribe is the unsubscribe counterpart of
// clearPendingSubscribe.
func (c *Client) clearPendingUnsubscribe(id uint16) {
	c.mu.Lock()
	owned := c.unsubID == id
	if owned {
		c.unsubID = 0
	}
	c.mu.Unlock()

	if owned {
		c.ids.MarkFree(id)
	}
}

// writePacket writes a frame to the transport under the write lock. A
// write failure tears the connection down, unless the frame being sent is
// itself DISCONNECT.
func (c *Client) writePacket(pkt Packet) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	_, err := WritePacket(conn, pkt)
	c.writeMu.Unlock()

	if err != nil && pkt.Type() != PacketDISCONNECT {
		c.dropConnection(err)
	}

	return err
}

// readLoop decodes frames off the transport until it fails or closes,
// then tears the connection down.
func (c *Client) readLoop(conn Conn, readDone chan struct{}) {
	defer close(readDone)

	br := bufio.NewReader(conn)
	for {
		pkt, _, err := ReadPacket(br)
		if err != nil {
			c.dropConnection(err)
			return
		}

		c.handlePacket(pkt)
	}
}

// dispatchLoop parks on the send queue and drains it whenever the
// connection is up and no CONNACK is outstanding.
func (c *Client) dispatchLoop(stop chan struct{}) {
	for {
		c.drainSendQueue(stop)

		ch := c.session.Send.Changed()
		select {
		case <-stop:
			return
		case <-ch:
		}
	}
}

// drainSendQueue moves contexts from the send queue to the wire. The head
// is not passed until it is handed off: written for QoS 0, or moved into
// the in-flight queue for QoS 1/2. The move parks while the in-flight
// queue is full.
func (c *Client) drainSendQueue(stop chan struct{}) {
	for c.connected.Load() && !c.connackPending.Load() {
		mc := c.session.Send.Front()
		if mc == nil {
			return
		}

		if err := c.writePacket(mc.Packet); err != nil {
			return
		}

		switch mc.State() {
		case StateQueuedQoS0:
			c.session.Send.PopFront()

		case StateQueuedQoS1, StateQueuedQoS2:
			if mc.State() == StateQueuedQoS1 {
				mc.SetState(StateAwaitingPuback)
			} else {
				mc.SetState(StateAwaitingPubrec)
			}
			mc.Touch()

			c.session.Send.PopFront()
			if !c.parkAdd(c.session.InFlight, mc, stop) {
				mc.Release()
				return
			}

		default:
			// An in-flight state in the send queue means a bookkeeping
			// bug; drop it rather than loop forever.
			c.log.Error("unexpected state in send queue", LogFields{
				LogFieldPacketID: mc.Packet.PacketID,
				"state":          mc.State().String(),
			})
			c.session.Send.PopFront()
			mc.Release()
		}
	}
}

// parkAdd adds a context to a queue, parking while it is full. Returns
// false when the connection stopped before space appeared.
func (c *Client) parkAdd(q *Queue, mc *MessageContext, stop chan struct{}) bool {
	for {
		ch := q.Changed()
		if q.TryAdd(mc) {
			return true
		}
		select {
		case <-stop:
			return false
		case <-ch:
		}
	}
}

// handlePacket routes one inbound frame. Packet types a broker must never
// send terminate the connection.
func (c *Client) handlePacket(pkt Packet) {
	switch p := pkt.(type) {
	case *ConnackPacket:
		c.handleConnack(p)
	case *PublishPacket:
		c.handlePublish(p)
	case *PubackPacket:
		c.handlePuback(p)
	case *PubrecPacket:
		c.handlePubrec(p)
	case *PubrelPacket:
		c.handlePubrel(p)
	case *PubcompPacket:
		c.handlePubcomp(p)
	case *SubackPacket:
		c.handleSuback(p)
	case *UnsubackPacket:
		c.handleUnsuback(p)
	case *PingrespPacket:
		c.handlePingresp()
	default:
		c.log.Error("illegal packet from broker", LogFields{
			LogFieldPacketType: pkt.Type().String(),
		})
		c.dropConnection(ErrProtocolViolation)
	}
}

// handleConnack completes the connect handshake.
func (c *Client) handleConnack(p *ConnackPacket) {
	if !c.connackPending.Swap(false) {
		c.log.Warn("unexpected CONNACK", nil)
		return
	}

	c.stopTimer(&c.connackTimer)

	if c.options.onConnack != nil {
		c.options.onConnack(p.SessionPresent, p.ReturnCode)
	}

	if p.ReturnCode != ConnectionAccepted {
		err := NewConnectError(p.ReturnCode)
		c.log.Error("connection refused", LogFields{LogFieldError: err})
		c.dropConnection(err)
		return
	}

	c.connected.Store(true)

	if c.options.keepAlive > 0 {
		c.mu.Lock()
		stop := c.stop
		c.mu.Unlock()
		go c.keepAliveLoop(stop)
	}

	// Wake the dispatcher: queued publishes may now flow.
	c.session.Send.Emit()

	c.emit(ErrConnected)
}

// handlePublish delivers an inbound message and runs the receiver side of
// its QoS handshake. Acknowledgments are written directly.
func (c *Client) handlePublish(p *PublishPacket) {
	msg := p.ToMessage()

	switch p.QoS {
	case QoS0:
		c.deliver(msg)

	case QoS1:
		c.deliver(msg)
		c.writePacket(&PubackPacket{PacketID: p.PacketID})

	case QoS2:
		c.deliver(msg)
		c.writePacket(&PubrecPacket{PacketID: p.PacketID})

		// A DUP redelivery may already be tracked; one context per id.
		if c.session.InFlight.Find(p.PacketID, StateAwaitingPubrel) < 0 {
			mc := newBrokerContext(p, StateAwaitingPubrel)
			c.mu.Lock()
			stop := c.stop
			c.mu.Unlock()
			if !c.parkAdd(c.session.InFlight, mc, stop) {
				c.log.Warn("connection stopped before QoS 2 context stored", LogFields{
					LogFieldPacketID: p.PacketID,
				})
			}
		}
	}
}

// deliver hands a message to the application.
func (c *Client) deliver(msg *Message) {
	if c.options.onPublish != nil {
		c.options.onPublish(msg)
	}
}

// handlePuback closes a QoS 1 handshake.
func (c *Client) handlePuback(p *PubackPacket) {
	idx := c.session.InFlight.Find(p.PacketID, StateAwaitingPuback)
	if idx < 0 {
		c.log.Warn("PUBACK for unknown packet id", LogFields{LogFieldPacketID: p.PacketID})
		return
	}

	if mc := c.session.InFlight.RemoveAt(idx); mc != nil {
		mc.Release()
	}
}

// handlePubrec advances a QoS 2 send handshake. PUBREL is sent even for
// an unknown id so the broker can close its side.
func (c *Client) handlePubrec(p *PubrecPacket) {
	idx := c.session.InFlight.Find(p.PacketID, StateAwaitingPubrec, StateAwaitingPubcomp)
	if idx < 0 {
		c.log.Warn("PUBREC for unknown packet id", LogFields{LogFieldPacketID: p.PacketID})
	} else if mc := c.session.InFlight.At(idx); mc != nil {
		mc.SetState(StateAwaitingPubcomp)
		mc.Touch()
	}

	c.writePacket(&PubrelPacket{PacketID: p.PacketID})
}

// handlePubrel closes the receiver side of a QoS 2 handshake. PUBCOMP is
// sent even for an unknown id.
func (c *Client) handlePubrel(p *PubrelPacket) {
	idx := c.session.InFlight.Find(p.PacketID, StateAwaitingPubrel)
	if idx < 0 {
		c.log.Warn("PUBREL for unknown packet id", LogFields{LogFieldPacketID: p.PacketID})
	} else if mc := c.session.InFlight.RemoveAt(idx); mc != nil {
		mc.Release()
	}

	c.writePacket(&PubcompPacket{PacketID: p.PacketID})
}

// handlePubcomp closes a QoS 2 send handshake.
func (c *Client) handlePubcomp(p *PubcompPacket) {
	idx := c.session.InFlight.Find(p.PacketID, StateAwaitingPubcomp)
	if idx < 0 {
		c.log.Warn("PUBCOMP for unknown packet id", LogFields{LogFieldPacketID: p.PacketID})
		return
	}

	if mc := c.session.InFlight.RemoveAt(idx); mc != nil {
		mc.Release()
	}
}

// handleSuback completes a pending subscribe. A stray SUBACK must not
// cancel the timeout guarding the real one, so the timer is stopped only
// on a matching id.
func (c *Client) handleSuback(p *SubackPacket) {
	c.mu.Lock()
	id := c.subID
	count := c.subCount
	if p.PacketID == id {
		c.subID = 0
		c.subCount = 0
	}
	c.mu.Unlock()

	if p.PacketID != id {
		c.log.Warn("SUBACK packet id mismatch", LogFields{
			LogFieldPacketID: p.PacketID,
			"expected":       id,
		})
		return
	}

	c.stopTimer(&c.subackTimer)
	c.ids.MarkFree(id)

	if len(p.ReturnCodes) != count {
		c.log.Warn("SUBACK return code count mismatch", LogFields{
			LogFieldPacketID: p.PacketID,
			"requested":      count,
			"granted":        len(p.ReturnCodes),
		})
	}

	if c.options.onSuback != nil {
		c.options.onSuback(p.PacketID, p.ReturnCodes)
	}
}

// handleUnsuback completes a pending unsubscribe. As with SUBACK, only a
// matching id cancels the timeout.
func (c *Client) handleUnsuback(p *UnsubackPacket) {
	c.mu.Lock()
	id := c.unsubID
	if p.PacketID == id {
		c.unsubID = 0
	}
	c.mu.Unlock()

	if p.PacketID != id {
		c.log.Warn("UNSUBACK packet id mismatch", LogFields{
			LogFieldPacketID: p.PacketID,
			"expected":       id,
		})
		return
	}

	c.stopTimer(&c.unsubackTimer)
	c.ids.MarkFree(id)

	if c.options.onUnsuback != nil {
		c.options.onUnsuback(p.PacketID)
	}
}

// handlePingresp clears the keepalive timeout.
func (c *Client) handlePingresp() {
	c.stopTimer(&c.pingrespTimer)
	c.pingPending.Store(false)

	if c.options.onPingresp != nil {
		c.options.onPingresp()
	}
}

// keepAliveLoop sends PINGREQ on the configured interval and arms the
// PINGRESP timeout after each one.
func (c *Client) keepAliveLoop(stop chan struct{}) {
	ticker := time.NewTicker(c.options.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.connected.Load() || c.pingPending.Load() {
				continue
			}

			if err := c.writePacket(&PingreqPacket{}); err != nil {
				return
			}

			c.pingPending.Store(true)
			c.armTimer(&c.pingrespTimer, pingrespTimeout, func() {
				c.log.Error("PINGRESP timeout", LogFields{LogFieldClientID: c.options.clientID})
				c.dropConnection(ErrPingTimeout)
			})
		}
	}
}

// retryLoop periodically rescans the in-flight queue and retransmits
// client-origin entries whose acknowledgment is overdue, with the DUP
// flag set, up to the configured attempt limit.
func (c *Client) retryLoop(stop chan struct{}) {
	if c.options.retryDelay <= 0 {
		return
	}

	ticker := time.NewTicker(retryScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.connected.Load() {
				continue
			}
			c.retransmitStale()
		}
	}
}

// retransmitStale resends overdue in-flight entries.
func (c *Client) retransmitStale() {
	for _, mc := range c.session.InFlight.Snapshot() {
		if mc.Origin != OriginClient {
			continue
		}
		if time.Since(mc.LastActivity()) < c.options.retryDelay {
			continue
		}
		if mc.Attempts() > c.options.retryAttempts {
			continue
		}

		switch mc.State() {
		case StateAwaitingPuback, StateAwaitingPubrec:
			pkt := *mc.Packet
			pkt.DUP = true
			if err := c.writePacket(&pkt); err != nil {
				return
			}
			mc.Touch()

		case StateAwaitingPubcomp:
			if err := c.writePacket(&PubrelPacket{PacketID: mc.Packet.PacketID}); err != nil {
				return
			}
			mc.Touch()
		}
	}
}

// dropConnection tears down the current connection exactly once: stops
// the timers, closes the transport, wakes every parked waiter, and
// schedules a reconnect when configured. A nil error marks a
// caller-initiated disconnect.
func (c *Client) dropConnection(err error) {
	c.mu.Lock()
	once := c.disconnectOnce
	conn := c.conn
	stop := c.stop
	c.mu.Unlock()

	if once == nil {
		return
	}

	once.Do(func() {
		c.connected.Store(false)
		c.connackPending.Store(false)
		c.pingPending.Store(false)

		c.stopTimer(&c.connackTimer)
		c.stopTimer(&c.pingrespTimer)
		c.stopTimer(&c.subackTimer)
		c.stopTimer(&c.unsubackTimer)

		c.mu.Lock()
		subID := c.subID
		unsubID := c.unsubID
		c.subID = 0
		c.subCount = 0
		c.unsubID = 0
		c.mu.Unlock()

		// Acks for these will never arrive; the ids must go back.
		if subID != 0 {
			c.ids.MarkFree(subID)
		}
		if unsubID != 0 {
			c.ids.MarkFree(unsubID)
		}

		if stop != nil {
			close(stop)
		}
		if conn != nil {
			conn.Close()
		}

		// Parked queue waiters re-observe the connection state and exit.
		c.session.Send.Emit()
		c.session.InFlight.Emit()

		if err != nil {
			c.log.Warn("connection lost", LogFields{LogFieldError: err})
			c.emit(ErrConnectionLost)
		} else {
			c.emit(ErrDisconnected)
		}

		if c.options.onDisconnect != nil {
			c.options.onDisconnect(err)
		}

		c.scheduleReconnect()
	})
}

// scheduleReconnect arms the reconnect timer when automatic reconnection
// is configured and the client was not closed by the caller.
func (c *Client) scheduleReconnect() {
	if c.options.reconnect <= 0 || c.closed.Load() {
		return
	}

	c.emit(ErrReconnecting)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
	}
	c.reconnectTimer = time.AfterFunc(c.options.reconnect, c.timerFunc(func() {
		if err := c.Connect(); err != nil {
			c.log.Error("reconnect failed", LogFields{LogFieldError: err})
		}
	}))
}

// armTimer replaces a one-shot timer under the client lock. The callback
// is wrapped so a panic cannot kill the timer goroutine silently.
func (c *Client) armTimer(t **time.Timer, d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if *t != nil {
		(*t).Stop()
	}
	*t = time.AfterFunc(d, c.timerFunc(f))
}

// stopTimer cancels a one-shot timer under the client lock.
func (c *Client) stopTimer(t **time.Timer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// timerFunc wraps a timer callback so it never propagates a panic.
func (c *Client) timerFunc(f func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("timer callback panic", LogFields{"panic": r})
			}
		}()
		f()
	}
}

// emit sends a lifecycle event to the event handler.
func (c *Client) emit(event error) {
	if c.options.onEvent != nil {
		c.options.onEvent(c, event)
	}
}
