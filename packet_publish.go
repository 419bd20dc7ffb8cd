package mqtt311

import (
	"io"
	"strings"
)

// PUBLISH packet errors.
var (
	ErrInvalidQoS        = malformed("invalid QoS level")
	ErrPacketIDRequired  = malformed("packet id required for QoS > 0")
	ErrUnexpectedID      = malformed("packet id present for QoS 0")
	ErrDupWithoutQoS     = malformed("DUP flag set for QoS 0")
	ErrInvalidTopicName  = malformed("invalid topic name")
	ErrWildcardTopicName = malformed("topic name contains wildcard characters")
)

// PublishPacket represents an MQTT PUBLISH packet.
type PublishPacket struct {
	// DUP indicates a redelivery of an earlier attempt.
	DUP bool

	// QoS is the delivery guarantee level (0, 1, or 2).
	QoS byte

	// Retain asks the broker to keep the message for future subscribers.
	Retain bool

	// Topic is the topic name to publish to.
	Topic string

	// PacketID correlates the delivery handshake. Present iff QoS > 0.
	PacketID uint16

	// Payload is the application message.
	Payload []byte
}

// Type returns the packet type.
func (p *PublishPacket) Type() PacketType {
	return PacketPUBLISH
}

// ToMessage converts the packet to a caller-facing Message.
func (p *PublishPacket) ToMessage() *Message {
	return &Message{
		Topic:   p.Topic,
		Payload: p.Payload,
		QoS:     p.QoS,
		Retain:  p.Retain,
		Dup:     p.DUP,
	}
}

// Encode writes the packet to the writer.
func (p *PublishPacket) Encode(w io.Writer) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	buf := getBytesBuffer()
	defer putBytesBuffer(buf)

	if _, err := encodeString(buf, p.Topic); err != nil {
		return 0, err
	}

	if p.QoS > QoS0 {
		encodeUint16(buf, p.PacketID)
	}

	buf.Write(p.Payload)

	header := FixedHeader{
		PacketType:      PacketPUBLISH,
		RemainingLength: uint32(buf.Len()),
	}
	header.SetDUP(p.DUP)
	header.SetQoS(p.QoS)
	header.SetRetain(p.Retain)

	total, err := header.Encode(w)
	if err != nil {
		return total, err
	}

	n, err := w.Write(buf.Bytes())
	return total + n, err
}

// Decode reads the packet from the reader. The payload runs to the end of
// the remaining length.
func (p *PublishPacket) Decode(r io.Reader, header FixedHeader) (int, error) {
	if header.PacketType != PacketPUBLISH {
		return 0, ErrInvalidPacketType
	}

	p.DUP = header.DUP()
	p.QoS = header.QoS()
	p.Retain = header.Retain()

	var totalRead int

	topic, n, err := decodeString(r)
	totalRead += n
	if err != nil {
		return totalRead, err
	}
	p.Topic = topic

	if p.QoS > QoS0 {
		p.PacketID, n, err = decodeUint16(r)
		totalRead += n
		if err != nil {
			return totalRead, err
		}
	}

	payloadLen := int(header.RemainingLength) - totalRead
	if payloadLen < 0 {
		return totalRead, ErrTrailingBytes
	}

	if payloadLen > 0 {
		p.Payload = make([]byte, payloadLen)
		n, err = io.ReadFull(r, p.Payload)
		totalRead += n
		if err != nil {
			return totalRead, err
		}
	}

	return totalRead, nil
}

// Validate validates the packet contents.
func (p *PublishPacket) Validate() error {
	if p.QoS > QoS2 {
		return ErrInvalidQoS
	}

	if p.QoS == QoS0 {
		if p.DUP {
			return ErrDupWithoutQoS
		}
		if p.PacketID != 0 {
			return ErrUnexpectedID
		}
	} else if p.PacketID == 0 {
		return ErrPacketIDRequired
	}

	return validateTopicName(p.Topic)
}

// validateTopicName checks a PUBLISH topic name: non-empty and free of the
// subscription wildcard characters.
func validateTopicName(topic string) error {
	if topic == "" {
		return ErrInvalidTopicName
	}

	if strings.ContainsAny(topic, "+#") {
		return ErrWildcardTopicName
	}

	return nil
}
