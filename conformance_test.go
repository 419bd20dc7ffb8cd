package mqtt311

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wire-level fixtures with literal bytes from the protocol document.

func TestFixedHeaderWireFixtures(t *testing.T) {
	tests := []struct {
		name   string
		header FixedHeader
		want   []byte
	}{
		{
			name:   "connect flags 0x0F length 255",
			header: FixedHeader{PacketType: PacketCONNECT, Flags: 0x0F, RemainingLength: 255},
			want:   []byte{0x1F, 0xFF, 0x01},
		},
		{
			name:   "connect flags 0x0F length 10",
			header: FixedHeader{PacketType: PacketCONNECT, Flags: 0x0F, RemainingLength: 10},
			want:   []byte{0x1F, 0x0A},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := tt.header.Encode(&buf)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.want, buf.Bytes())
		})
	}

	t.Run("decode connack length 256", func(t *testing.T) {
		var header FixedHeader
		n, err := header.Decode(bytes.NewReader([]byte{0x20, 0x80, 0x02}))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, PacketCONNACK, header.PacketType)
		assert.Equal(t, byte(0x00), header.Flags)
		assert.Equal(t, uint32(256), header.RemainingLength)
	})
}

func TestConnectWireFixture(t *testing.T) {
	pkt := &ConnectPacket{
		ClientID:     "testclient",
		CleanSession: false,
		KeepAlive:    0,
		Username:     "user",
	}

	want := []byte{
		0x10, 0x1C,
		0x00, 0x04, 'M', 'Q', 'T', 'T',
		0x04, 0x80,
		0x00, 0x00,
		0x00, 0x0A, 't', 'e', 's', 't', 'c', 'l', 'i', 'e', 'n', 't',
		0x00, 0x04, 'u', 's', 'e', 'r',
	}

	var buf bytes.Buffer
	_, err := pkt.Encode(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())

	decoded, _, err := ReadPacket(bytes.NewReader(want))
	require.NoError(t, err)
	assert.Equal(t, pkt, decoded)
}

func TestPublishWireFixture(t *testing.T) {
	pkt := &PublishPacket{
		QoS:      QoS1,
		Retain:   true,
		Topic:    "/root/sec",
		PacketID: 0xABCD,
		Payload:  []byte{1, 2, 3, 4, 5},
	}

	want := []byte{
		0x33, 0x12,
		0x00, 0x09, '/', 'r', 'o', 'o', 't', '/', 's', 'e', 'c',
		0xAB, 0xCD,
		0x01, 0x02, 0x03, 0x04, 0x05,
	}

	var buf bytes.Buffer
	_, err := pkt.Encode(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())

	decoded, _, err := ReadPacket(bytes.NewReader(want))
	require.NoError(t, err)
	assert.Equal(t, pkt, decoded)
}

func TestSubscribeWireFixture(t *testing.T) {
	pkt := &SubscribePacket{
		PacketID: 0xABCD,
		Subscriptions: []Subscription{
			{TopicFilter: "/root/*", QoS: QoS2},
		},
	}

	want := []byte{
		0x82, 0x0C,
		0xAB, 0xCD,
		0x00, 0x07, '/', 'r', 'o', 'o', 't', '/', '*',
		0x02,
	}

	var buf bytes.Buffer
	_, err := pkt.Encode(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())

	decoded, _, err := ReadPacket(bytes.NewReader(want))
	require.NoError(t, err)
	assert.Equal(t, pkt, decoded)
}

func TestSubackWireFixture(t *testing.T) {
	pkt := &SubackPacket{
		PacketID:    0xABCD,
		ReturnCodes: []byte{0x00, 0x01, 0x02, 0x80},
	}

	want := []byte{
		0x90, 0x06,
		0xAB, 0xCD,
		0x00, 0x01, 0x02, 0x80,
	}

	var buf bytes.Buffer
	_, err := pkt.Encode(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())

	decoded, _, err := ReadPacket(bytes.NewReader(want))
	require.NoError(t, err)
	assert.Equal(t, pkt, decoded)
}

func TestEmptyPacketWireFixtures(t *testing.T) {
	tests := []struct {
		name   string
		packet Packet
		want   []byte
	}{
		{name: "pingreq", packet: &PingreqPacket{}, want: []byte{0xC0, 0x00}},
		{name: "pingresp", packet: &PingrespPacket{}, want: []byte{0xD0, 0x00}},
		{name: "disconnect", packet: &DisconnectPacket{}, want: []byte{0xE0, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := tt.packet.Encode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, tt.want, buf.Bytes())

			decoded, _, err := ReadPacket(bytes.NewReader(tt.want))
			require.NoError(t, err)
			assert.Equal(t, tt.packet, decoded)
		})
	}
}

func TestPubrelWireFlags(t *testing.T) {
	var buf bytes.Buffer
	_, err := (&PubrelPacket{PacketID: 7}).Encode(&buf)
	require.NoError(t, err)
	assert.Equal(t, byte(0x62), buf.Bytes()[0])

	// The mandatory 0b0010 pattern is enforced on decode.
	_, _, err = ReadPacket(bytes.NewReader([]byte{0x60, 0x02, 0x00, 0x07}))
	require.ErrorIs(t, err, ErrInvalidPacketFlags)
}
