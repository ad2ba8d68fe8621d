package rtpopus

import (
	"errors"
	"testing"
	"time"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiowire/opuspack"
)

func TestDecoderDecode(t *testing.T) {
	// Code 2: first frame 2 bytes, second frame fills the rest.
	payload := []byte{0x0A, 0x02, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE}
	pkt := &rtp.Packet{
		Header:  rtp.Header{PayloadType: 111, SequenceNumber: 4242, Timestamp: 960},
		Payload: payload,
	}

	var d Decoder
	packet, err := d.Decode(pkt)
	require.NoError(t, err)

	require.Len(t, packet.Frames, 2)
	assert.Equal(t, []byte{0xAA, 0xBB}, packet.Frames[0].Data)
	assert.Equal(t, []byte{0xCC, 0xDD, 0xEE}, packet.Frames[1].Data)
	assert.False(t, packet.Frames[0].Silence)
}

func TestDecoderDecodeDTX(t *testing.T) {
	pkt := &rtp.Packet{Payload: []byte{0x08}}

	var d Decoder
	packet, err := d.Decode(pkt)
	require.NoError(t, err)

	require.Len(t, packet.Frames, 1)
	assert.Empty(t, packet.Frames[0].Data)
	assert.True(t, packet.Frames[0].Silence)
}

func TestDecoderDecodeInvalid(t *testing.T) {
	var d Decoder

	_, err := d.Decode(&rtp.Packet{})
	assert.ErrorIs(t, err, opuspack.ErrPacketTooShort)

	// Code 1 with an odd number of frame bytes.
	_, err = d.Decode(&rtp.Packet{Payload: []byte{0x09, 0xAA, 0xBB, 0xCC}})
	assert.ErrorIs(t, err, opuspack.ErrInvalidPacket)
}

func TestDecoderDuration(t *testing.T) {
	var d Decoder

	// Config 3 (SILK, 60ms) with two frames.
	duration, err := d.Duration(&rtp.Packet{Payload: []byte{0x19, 0xAA, 0xBB, 0xCC, 0xDD}})
	require.NoError(t, err)
	assert.Equal(t, 120*time.Millisecond, duration)

	// Config 31 (CELT, 20ms) single frame.
	duration, err = d.Duration(&rtp.Packet{Payload: []byte{0xF8, 0xAA}})
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, duration)

	_, err = d.Duration(&rtp.Packet{})
	assert.True(t, errors.Is(err, opuspack.ErrPacketTooShort))
}

func TestPayloaderPayload(t *testing.T) {
	var p Payloader

	packet := []byte{0x0A, 0x02, 0xAA, 0xBB, 0xCC}
	payloads := p.Payload(1200, packet)
	require.Len(t, payloads, 1)
	assert.Equal(t, packet, payloads[0])

	// The payload is a copy, not an alias.
	payloads[0][0] ^= 0xFF
	assert.Equal(t, byte(0x0A), packet[0])
}

func TestPayloaderPayloadIgnoresMTU(t *testing.T) {
	var p Payloader

	packet := []byte{0x08}
	for i := 0; i < 300; i++ {
		packet = append(packet, 0x55)
	}
	packet[0] = 0x78 // code 0, one 300-byte frame

	payloads := p.Payload(100, packet)
	require.Len(t, payloads, 1)
	assert.Len(t, payloads[0], len(packet))
}

func TestPayloaderPayloadInvalid(t *testing.T) {
	var p Payloader

	assert.Empty(t, p.Payload(1200, nil))
	assert.Empty(t, p.Payload(1200, []byte{0x09, 0xAA})) // code 1, odd remainder
}
