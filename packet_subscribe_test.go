package mqtt311

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeEncodeDecode(t *testing.T) {
	packet := &SubscribePacket{
		PacketID: 42,
		Subscriptions: []Subscription{
			{TopicFilter: "sensors/+/temp", QoS: QoS1},
			{TopicFilter: "alerts/#", QoS: QoS2},
			{TopicFilter: "plain", QoS: QoS0},
		},
	}

	var buf bytes.Buffer
	_, err := packet.Encode(&buf)
	require.NoError(t, err)

	decoded, _, err := ReadPacket(&buf)
	require.NoError(t, err)
	assert.Equal(t, packet, decoded)
}

func TestSubscribeValidate(t *testing.T) {
	p := &SubscribePacket{PacketID: 1}
	assert.ErrorIs(t, p.Validate(), ErrNoTopics)

	p = &SubscribePacket{PacketID: 1, Subscriptions: []Subscription{{TopicFilter: "a", QoS: 3}}}
	assert.ErrorIs(t, p.Validate(), ErrInvalidRequestedQoS)

	p = &SubscribePacket{Subscriptions: []Subscription{{TopicFilter: "a"}}}
	assert.ErrorIs(t, p.Validate(), ErrInvalidPacketID)

	p = &SubscribePacket{PacketID: 1, Subscriptions: []Subscription{{TopicFilter: ""}}}
	assert.ErrorIs(t, p.Validate(), ErrInvalidTopicFilter)
}

func TestSubscribeRejectsReservedQoSBits(t *testing.T) {
	// Requested QoS byte 0x04 has a reserved bit set.
	frame := []byte{0x82, 0x06, 0x00, 0x01, 0x00, 0x01, 'a', 0x04}
	_, _, err := ReadPacket(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrReservedQoSBits)
}

func TestUnsubscribeEncodeDecode(t *testing.T) {
	packet := &UnsubscribePacket{
		PacketID:     7,
		TopicFilters: []string{"sensors/+/temp", "alerts/#"},
	}

	var buf bytes.Buffer
	_, err := packet.Encode(&buf)
	require.NoError(t, err)

	decoded, _, err := ReadPacket(&buf)
	require.NoError(t, err)
	assert.Equal(t, packet, decoded)
}

func TestUnsubscribeValidate(t *testing.T) {
	p := &UnsubscribePacket{PacketID: 1}
	assert.ErrorIs(t, p.Validate(), ErrNoTopics)

	p = &UnsubscribePacket{TopicFilters: []string{"a"}}
	assert.ErrorIs(t, p.Validate(), ErrInvalidPacketID)
}

func TestSubackValidate(t *testing.T) {
	p := &SubackPacket{PacketID: 1}
	assert.ErrorIs(t, p.Validate(), ErrNoReturnCodes)

	p = &SubackPacket{PacketID: 1, ReturnCodes: []byte{0x03}}
	assert.ErrorIs(t, p.Validate(), ErrInvalidSubackCode)

	p = &SubackPacket{PacketID: 1, ReturnCodes: []byte{0x00, 0x01, 0x02, 0x80}}
	assert.NoError(t, p.Validate())
}
