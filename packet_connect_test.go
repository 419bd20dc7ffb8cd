package mqtt311

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectPacketType(t *testing.T) {
	p := &ConnectPacket{}
	assert.Equal(t, PacketCONNECT, p.Type())
}

func TestConnectEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		packet ConnectPacket
	}{
		{
			name:   "minimal",
			packet: ConnectPacket{ClientID: "c", CleanSession: true},
		},
		{
			name:   "credentials",
			packet: ConnectPacket{ClientID: "c", CleanSession: true, Username: "u", Password: []byte("p")},
		},
		{
			name:   "username only",
			packet: ConnectPacket{ClientID: "c", CleanSession: true, Username: "u"},
		},
		{
			name: "will qos2 retained",
			packet: ConnectPacket{
				ClientID:    "c",
				KeepAlive:   90,
				WillFlag:    true,
				WillTopic:   "dead/c",
				WillMessage: []byte("gone"),
				WillQoS:     QoS2,
				WillRetain:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := tt.packet.Encode(&buf)
			require.NoError(t, err)

			decoded, _, err := ReadPacket(&buf)
			require.NoError(t, err)
			assert.Equal(t, &tt.packet, decoded)
		})
	}
}

func TestConnectRejectsWrongProtocol(t *testing.T) {
	// Protocol name "MQIsdp" (3.1) instead of "MQTT".
	body := []byte{0x00, 0x06, 'M', 'Q', 'I', 's', 'd', 'p', 0x03, 0x02, 0x00, 0x00, 0x00, 0x01, 'c'}
	frame := append([]byte{0x10, byte(len(body))}, body...)
	_, _, err := ReadPacket(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrInvalidProtocolName)

	// Protocol level 5 is not 3.1.1.
	body = []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x05, 0x02, 0x00, 0x00, 0x00, 0x01, 'c'}
	frame = append([]byte{0x10, byte(len(body))}, body...)
	_, _, err = ReadPacket(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrInvalidProtocolLevel)
}

func TestConnectRejectsBadFlags(t *testing.T) {
	// Reserved bit 0 set.
	body := []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x03, 0x00, 0x00, 0x00, 0x01, 'c'}
	frame := append([]byte{0x10, byte(len(body))}, body...)
	_, _, err := ReadPacket(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrInvalidConnectFlags)

	// Will QoS without the will flag.
	body = []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x18, 0x00, 0x00, 0x00, 0x01, 'c'}
	frame = append([]byte{0x10, byte(len(body))}, body...)
	_, _, err = ReadPacket(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrInvalidConnectFlags)

	// Password flag without the user name flag.
	body = []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x42, 0x00, 0x00, 0x00, 0x01, 'c', 0x00, 0x01, 'p'}
	frame = append([]byte{0x10, byte(len(body))}, body...)
	_, _, err = ReadPacket(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrPasswordWithoutUser)
}

func TestConnectValidate(t *testing.T) {
	p := &ConnectPacket{ClientID: "c", WillQoS: 3, WillFlag: true}
	assert.ErrorIs(t, p.Validate(), ErrInvalidConnectFlags)

	p = &ConnectPacket{ClientID: "c", WillRetain: true}
	assert.ErrorIs(t, p.Validate(), ErrInvalidConnectFlags)

	p = &ConnectPacket{ClientID: "c", Password: []byte("p")}
	assert.ErrorIs(t, p.Validate(), ErrPasswordWithoutUser)
}
