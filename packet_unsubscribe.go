package mqtt311

import "io"

// UnsubscribePacket represents an MQTT UNSUBSCRIBE packet. Its fixed
// header carries the mandatory flag pattern 0b0010.
type UnsubscribePacket struct {
	// PacketID correlates the UNSUBACK response.
	PacketID uint16

	// TopicFilters is the non-empty list of filters to remove.
	TopicFilters []string
}

// Type returns the packet type.
func (p *UnsubscribePacket) Type() PacketType {
	return PacketUNSUBSCRIBE
}

// Encode writes the packet to the writer.
func (p *UnsubscribePacket) Encode(w io.Writer) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	buf := getBytesBuffer()
	defer putBytesBuffer(buf)

	encodeUint16(buf, p.PacketID)

	for _, filter := range p.TopicFilters {
		if _, err := encodeString(buf, filter); err != nil {
			return 0, err
		}
	}

	header := FixedHeader{
		PacketType:      PacketUNSUBSCRIBE,
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
func (p *UnsubscribePacket) Decode(r io.Reader, header FixedHeader) (int, error) {
	if header.PacketType != PacketUNSUBSCRIBE {
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
		p.TopicFilters = append(p.TopicFilters, filter)
	}

	return totalRead, nil
}

// Validate validates the packet contents.
func (p *UnsubscribePacket) Validate() error {
	if p.PacketID == 0 {
		return ErrInvalidPacketID
	}

	if len(p.TopicFilters) == 0 {
		return ErrNoTopics
	}

	for _, filter := range p.TopicFilters {
		if filter == "" {
			return ErrInvalidTopicFilter
		}
	}

	return nil
}
