package mqtt311

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedHeaderRoundTrip(t *testing.T) {
	tests := []FixedHeader{
		{PacketType: PacketCONNECT, Flags: 0x00, RemainingLength: 0},
		{PacketType: PacketPUBLISH, Flags: 0x0B, RemainingLength: 127},
		{PacketType: PacketPUBREL, Flags: 0x02, RemainingLength: 2},
		{PacketType: PacketDISCONNECT, Flags: 0x00, RemainingLength: 268435455},
	}

	for _, h := range tests {
		var buf bytes.Buffer
		n, err := h.Encode(&buf)
		require.NoError(t, err)
		assert.Equal(t, h.Size(), n)

		var decoded FixedHeader
		_, err = decoded.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, h, decoded)
	}
}

func TestFixedHeaderReservedTypes(t *testing.T) {
	// Type 0 and type 15 never appear on the wire.
	var decoded FixedHeader
	_, err := decoded.Decode(bytes.NewReader([]byte{0x00, 0x00}))
	assert.ErrorIs(t, err, ErrInvalidPacketType)

	_, err = decoded.Decode(bytes.NewReader([]byte{0xF0, 0x00}))
	assert.ErrorIs(t, err, ErrInvalidPacketType)

	bad := FixedHeader{PacketType: 15}
	var buf bytes.Buffer
	_, err = bad.Encode(&buf)
	assert.ErrorIs(t, err, ErrInvalidPacketType)
}

func TestFixedHeaderValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		header  FixedHeader
		wantErr bool
	}{
		{name: "connect zero flags", header: FixedHeader{PacketType: PacketCONNECT, Flags: 0x00}},
		{name: "connect nonzero flags", header: FixedHeader{PacketType: PacketCONNECT, Flags: 0x01}, wantErr: true},
		{name: "pubrel 0x02", header: FixedHeader{PacketType: PacketPUBREL, Flags: 0x02}},
		{name: "pubrel 0x00", header: FixedHeader{PacketType: PacketPUBREL, Flags: 0x00}, wantErr: true},
		{name: "subscribe 0x02", header: FixedHeader{PacketType: PacketSUBSCRIBE, Flags: 0x02}},
		{name: "subscribe 0x0F", header: FixedHeader{PacketType: PacketSUBSCRIBE, Flags: 0x0F}, wantErr: true},
		{name: "unsubscribe 0x02", header: FixedHeader{PacketType: PacketUNSUBSCRIBE, Flags: 0x02}},
		{name: "publish qos2 dup retain", header: FixedHeader{PacketType: PacketPUBLISH, Flags: 0x0D}},
		{name: "publish qos3", header: FixedHeader{PacketType: PacketPUBLISH, Flags: 0x06}, wantErr: true},
		{name: "pingreq zero flags", header: FixedHeader{PacketType: PacketPINGREQ, Flags: 0x00}},
		{name: "pingreq nonzero flags", header: FixedHeader{PacketType: PacketPINGREQ, Flags: 0x08}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.ValidateFlags()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPacketFlags)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFixedHeaderPublishFlagAccessors(t *testing.T) {
	var h FixedHeader
	h.PacketType = PacketPUBLISH

	h.SetDUP(true)
	h.SetQoS(QoS2)
	h.SetRetain(true)
	assert.True(t, h.DUP())
	assert.Equal(t, QoS2, h.QoS())
	assert.True(t, h.Retain())
	assert.Equal(t, byte(0x0D), h.Flags)

	h.SetDUP(false)
	h.SetQoS(QoS1)
	h.SetRetain(false)
	assert.False(t, h.DUP())
	assert.Equal(t, QoS1, h.QoS())
	assert.False(t, h.Retain())
	assert.Equal(t, byte(0x02), h.Flags)
}
