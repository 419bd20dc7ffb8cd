package mqtt311

import "io"

// SUBACK packet errors.
var (
	ErrNoReturnCodes     = malformed("SUBACK must carry at least one return code")
	ErrInvalidSubackCode = malformed("invalid SUBACK return code")
)

// SubackPacket represents an MQTT SUBACK packet. It carries one return
// code per topic filter of the SUBSCRIBE being acknowledged: the granted
// QoS (0, 1, 2) or 0x80 for failure.
type SubackPacket struct {
	// PacketID matches the SUBSCRIBE being acknowledged.
	PacketID uint16

	// ReturnCodes holds one granted-QoS-or-failure code per requested
	// topic filter, in request order.
	ReturnCodes []byte
}

// Type returns the packet type.
func (p *SubackPacket) Type() PacketType {
	return PacketSUBACK
}

// Encode writes the packet to the writer.
func (p *SubackPacket) Encode(w io.Writer) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	header := FixedHeader{
		PacketType:      PacketSUBACK,
		Flags:           0x00,
		RemainingLength: uint32(2 + len(p.ReturnCodes)),
	}

	total, err := header.Encode(w)
	if err != nil {
		return total, err
	}

	n, err := encodeUint16(w, p.PacketID)
	total += n
	if err != nil {
		return total, err
	}

	n, err = w.Write(p.ReturnCodes)
	return total + n, err
}

// Decode reads the packet from the reader.
func (p *SubackPacket) Decode(r io.Reader, header FixedHeader) (int, error) {
	if header.PacketType != PacketSUBACK {
		return 0, ErrInvalidPacketType
	}

	var totalRead int

	id, n, err := decodeUint16(r)
	totalRead += n
	if err != nil {
		return totalRead, err
	}
	p.PacketID = id

	if header.RemainingLength < 3 {
		return totalRead, ErrNoReturnCodes
	}

	p.ReturnCodes = make([]byte, header.RemainingLength-2)
	n, err = io.ReadFull(r, p.ReturnCodes)
	totalRead += n
	if err != nil {
		return totalRead, err
	}

	return totalRead, nil
}

// Validate validates the packet contents.
func (p *SubackPacket) Validate() error {
	if p.PacketID == 0 {
		return ErrInvalidPacketID
	}

	if len(p.ReturnCodes) == 0 {
		return ErrNoReturnCodes
	}

	for _, code := range p.ReturnCodes {
		if !validSubackCode(code) {
			return ErrInvalidSubackCode
		}
	}

	return nil
}
