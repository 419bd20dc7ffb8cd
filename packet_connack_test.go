package mqtt311

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnackEncodeDecode(t *testing.T) {
	for code := ConnectionAccepted; code <= ConnectionRefusedNotAuthorized; code++ {
		packet := &ConnackPacket{SessionPresent: code == ConnectionAccepted, ReturnCode: code}

		var buf bytes.Buffer
		_, err := packet.Encode(&buf)
		require.NoError(t, err)

		decoded, _, err := ReadPacket(&buf)
		require.NoError(t, err)
		assert.Equal(t, packet, decoded)
	}
}

func TestConnackRejectsReservedAckFlagBits(t *testing.T) {
	// Bits 1-7 of the first variable header byte must be zero.
	frame := []byte{0x20, 0x02, 0x02, 0x00}
	_, _, err := ReadPacket(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrInvalidConnackFlags)
}

func TestConnackRejectsUnknownReturnCode(t *testing.T) {
	p := &ConnackPacket{ReturnCode: 6}
	assert.ErrorIs(t, p.Validate(), ErrInvalidReturnCode)
}

func TestConnectReturnCodeString(t *testing.T) {
	assert.Equal(t, "connection accepted", ConnectionAccepted.String())
	assert.Contains(t, ConnectionRefusedNotAuthorized.String(), "not authorized")
	assert.Contains(t, ConnectReturnCode(200).String(), "unknown")
}
