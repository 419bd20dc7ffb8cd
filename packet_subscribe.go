package mqtt311

import "io"

// SUBSCRIBE/UNSUBSCRIBE packet errors.
var (
	ErrNoTopics            = malformed("packet must carry at least one topic")
	ErrInvalidRequestedQoS = malformed("invalid requested QoS")
	ErrInvalidTopicFilter  = malformed("invalid topic filter")
	ErrReservedQoSBits     = malformed("reserved bits set in requested QoS byte")
)

// Subscription pairs a topic filter with a requested QoS.
type Subscription struct {
	// TopicFilter is the filter to subscribe to. May contain wildcards;
	// matching is the broker's concern.
	TopicFilter string

	// QoS is the maximum QoS the broker may use when delivering matching
	// messages.
	QoS byte
}

// SubscribePacket represents an MQTT SUBSCRIBE packet. Its fixed header
// carries the mandatory flag pattern 0b0010.
type SubscribePacket struct {
	// PacketID correlates the SUBACK response.
	PacketID uint16

	// Subscriptions is the non-empty list of requested subscriptions.
	Subscriptions []Subscription
}

// Type returns the packet type.
func (p *SubscribePacket) Type() PacketType {
	return PacketSUBSCRIBE
}

// Encode writes the packet to the writer.
func (p *SubscribePacket) Encode(w io.Writer) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	buf := getBytesBuffer()
	defer putBytesBuffer(buf)

	encodeUint16(buf, p.PacketID)

	for _, sub := range p.Subscriptions {
		if _, err := encodeString(buf, sub.TopicFilter); err != nil {
			return 0, err
		}
		buf.WriteByte(sub.QoS)
	}

	header := FixedHeader{
		PacketType:      PacketSUBSCRIBE,
		Flags:           0x02,
		RemainingLength: uint32(buf.Len()),
	}

	total, err := header.Encode(w)
	if err != nil {
		return total, err
	}

	n, err := w.Write(buf.Bytes())
	return total + n, err
}

// Decode reads the packet from the reader.
func (p *SubscribePacket) Decode(r io.Reader, header FixedHeader) (int, error) {
	if header.PacketType != PacketSUBSCRIBE {
		return 0, ErrInvalidPacketType
	}

	var totalRead int

	id, n, err := decodeUint16(r)
	totalRead += n
	if err != nil {
		return totalRead, err
	}
	p.PacketID = id

	for uint32(totalRead) < header.RemainingLength {
		filter, n, err := decodeString(r)
		totalRead += n
		if err != nil {
			return totalRead, err
		}

		var qosBuf [1]byte
		n, err = io.ReadFull(r, qosBuf[:])
		totalRead += n
		if err != nil {
			return totalRead, err
		}

		// The upper six bits of the requested QoS byte are reserved.
		if qosBuf[0]&0xFC != 0 {
			return totalRead, ErrReservedQoSBits
		}

		p.Subscriptions = append(p.Subscriptions, Subscription{
			TopicFilter: filter,
			QoS:         qosBuf[0],
		})
	}

	return totalRead, nil
}

// Validate validates the packet contents.
func (p *SubscribePacket) Validate() error {
	if p.PacketID == 0 {
		return ErrInvalidPacketID
	}

	if len(p.Subscriptions) == 0 {
		return ErrNoTopics
	}

	for _, sub := range p.Subscriptions {
		if sub.TopicFilter == "" {
			return ErrInvalidTopicFilter
		}
		if sub.QoS > QoS2 {
			return ErrInvalidRequestedQoS
		}
	}

	return nil
}
