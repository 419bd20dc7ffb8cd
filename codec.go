package mqtt311

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrMalformedPacket is the base error for all wire grammar and validation
// failures. Every codec sentinel wraps it, so a single
// errors.Is(err, ErrMalformedPacket) covers the whole family.
var ErrMalformedPacket = errors.New("mqtt311: malformed packet")

// malformed creates a sentinel error wrapping ErrMalformedPacket.
func malformed(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrMalformedPacket)
}

// ErrTrailingBytes is returned when a packet body does not match the
// remaining length announced by the fixed header: the body decoder either
// consumes fewer bytes than announced or runs out of bytes before it is
// done.
var ErrTrailingBytes = malformed("packet body does not match remaining length")

// ReadPacket reads one complete MQTT packet from the reader. The body is
// read to exactly the remaining length announced by the fixed header; a
// body decoder that consumes fewer or more bytes fails with
// ErrMalformedPacket.
func ReadPacket(r io.Reader) (Packet, int, error) {
	var header FixedHeader
	n, err := header.Decode(r)
	if err != nil {
		return nil, n, err
	}

	if err := header.ValidateFlags(); err != nil {
		return nil, n, err
	}

	body := make([]byte, header.RemainingLength)
	if header.RemainingLength > 0 {
		rn, err := io.ReadFull(r, body)
		n += rn
		if err != nil {
			return nil, n, err
		}
	}

	var packet Packet
	switch header.PacketType {
	case PacketCONNECT:
		packet = &ConnectPacket{}
	case PacketCONNACK:
		packet = &ConnackPacket{}
	case PacketPUBLISH:
		packet = &PublishPacket{}
	case PacketPUBACK:
		packet = &PubackPacket{}
	case PacketPUBREC:
		packet = &PubrecPacket{}
	case PacketPUBREL:
		packet = &PubrelPacket{}
	case PacketPUBCOMP:
		packet = &PubcompPacket{}
	case PacketSUBSCRIBE:
		packet = &SubscribePacket{}
	case PacketSUBACK:
		packet = &SubackPacket{}
	case PacketUNSUBSCRIBE:
		packet = &UnsubscribePacket{}
	case PacketUNSUBACK:
		packet = &UnsubackPacket{}
	case PacketPINGREQ:
		packet = &PingreqPacket{}
	case PacketPINGRESP:
		packet = &PingrespPacket{}
	case PacketDISCONNECT:
		packet = &DisconnectPacket{}
	default:
		return nil, n, ErrInvalidPacketType
	}

	reader := getBytesReader(body)
	defer putBytesReader(reader)

	if _, err := packet.Decode(reader, header); err != nil {
		// A body decoder running out of bytes means the remaining length
		// lied about the frame size.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrTrailingBytes
		}
		return nil, n, err
	}

	if reader.pos != len(body) {
		return nil, n, ErrTrailingBytes
	}

	if err := packet.Validate(); err != nil {
		return nil, n, err
	}

	return packet, n, nil
}

// WritePacket validates and writes a complete MQTT packet to the writer.
func WritePacket(w io.Writer, packet Packet) (int, error) {
	if err := packet.Validate(); err != nil {
		return 0, err
	}

	return packet.Encode(w)
}

// bytesReader wraps a byte slice for the io.Reader interface. Readers are
// pooled; ReadPacket borrows one per frame.
type bytesReader struct {
	data []byte
	pos  int
}

func (r *bytesReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// bytesBuffer is a growable buffer for packet encoding. Buffers come from
// one process-wide pool, so encoding reuses backing arrays across packets;
// a buffer is not tied to a client or connection.
type bytesBuffer struct {
	data []byte
}

func (b *bytesBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *bytesBuffer) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

func (b *bytesBuffer) Bytes() []byte {
	return b.data
}

func (b *bytesBuffer) Len() int {
	return len(b.data)
}

var (
	readerPool = sync.Pool{New: func() any { return new(bytesReader) }}
	bufferPool = sync.Pool{New: func() any { return new(bytesBuffer) }}
)

// getBytesReader borrows a pooled reader positioned at the start of data.
func getBytesReader(data []byte) *bytesReader {
	r := readerPool.Get().(*bytesReader)
	r.data, r.pos = data, 0
	return r
}

func putBytesReader(r *bytesReader) {
	if r == nil {
		return
	}
	r.data, r.pos = nil, 0
	readerPool.Put(r)
}

// getBytesBuffer borrows a pooled, emptied encode buffer.
func getBytesBuffer() *bytesBuffer {
	b := bufferPool.Get().(*bytesBuffer)
	b.data = b.data[:0]
	return b
}

// putBytesBuffer returns an encode buffer to the pool. A buffer grown
// past 64 KiB is dropped so one huge payload does not pin memory.
func putBytesBuffer(b *bytesBuffer) {
	if b == nil || cap(b.data) > 65536 {
		return
	}
	b.data = b.data[:0]
	bufferPool.Put(b)
}
