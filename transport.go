package mqtt311

import (
	"context"
	"crypto/tls"
	"net"
	"time"
)

// Conn is the byte stream the client runs over. Any net.Conn works; the
// client never assumes more than ordered reads and writes plus deadlines.
type Conn interface {
	net.Conn
}

// Dialer establishes connections to a broker address in host:port form.
type Dialer interface {
	// Dial connects to the address with the given context.
	Dial(ctx context.Context, address string) (Conn, error)
}

// TCPDialer connects to brokers over plain TCP.
type TCPDialer struct {
	// Timeout is the maximum time to wait for a connection.
	// Zero means no timeout.
	Timeout time.Duration
}

// Dial connects to the address.
func (d *TCPDialer) Dial(ctx context.Context, address string) (Conn, error) {
	var dialer net.Dialer
	if d.Timeout > 0 {
		dialer.Timeout = d.Timeout
	}
	return dialer.DialContext(ctx, "tcp", address)
}

// TLSDialer connects to brokers over TLS.
type TLSDialer struct {
	// Config is the TLS configuration. Nil gets a default requiring
	// TLS 1.2 or newer.
	Config *tls.Config

	// Timeout is the maximum time to wait for a connection.
	Timeout time.Duration
}

// Dial connects to the address and performs the TLS handshake.
func (d *TLSDialer) Dial(ctx context.Context, address string) (Conn, error) {
	config := d.Config
	if config == nil {
		config = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	netDialer := &net.Dialer{}
	if d.Timeout > 0 {
		netDialer.Timeout = d.Timeout
	}

	tlsDialer := &tls.Dialer{NetDialer: netDialer, Config: config}
	return tlsDialer.DialContext(ctx, "tcp", address)
}
