// Package mqtt311 implements an MQTT 3.1.1 client.
//
// The package covers the full 3.1.1 wire protocol (OASIS standard): a
// symmetric codec for all fourteen control packets, and a session-managed
// client that enforces the QoS 1 and QoS 2 delivery handshakes over a
// single TCP, TLS, WebSocket or QUIC connection to a broker.
//
// Basic usage:
//
//	client := mqtt311.NewClient(
//		mqtt311.WithBroker("broker.example.com", 1883),
//		mqtt311.WithClientID("sensor-17"),
//		mqtt311.WithKeepAlive(30),
//		mqtt311.WithPublishHandler(func(msg *mqtt311.Message) {
//			log.Printf("%s: %s", msg.Topic, msg.Payload)
//		}),
//		mqtt311.WithEventHandler(func(c *mqtt311.Client, event error) {
//			// Subscribe needs an accepted connection, which exists only
//			// once the CONNACK has been handled.
//			if errors.Is(event, mqtt311.ErrConnected) {
//				c.Subscribe([]string{"sensors/#"}, mqtt311.QoS1)
//			}
//		}),
//	)
//	if err := client.Connect(); err != nil {
//		log.Fatal(err)
//	}
//	defer client.Disconnect()
//
//	// Queued now, sent once the CONNACK arrives.
//	client.Publish("sensors/17/temp", []byte("21.5"), mqtt311.QoS1, false)
//
// Outbound publishes pass through a bounded send queue and, for QoS 1 and 2,
// an in-flight queue that tracks the acknowledgment handshake. Packet
// identifiers are drawn from a process-wide allocator so multiple clients in
// one process never collide.
package mqtt311
