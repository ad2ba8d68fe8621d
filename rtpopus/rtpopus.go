// Package rtpopus maps Opus packets onto RTP payloads per RFC 7587.
//
// An RTP payload carries exactly one Opus packet, so depayloading is a
// matter of handing the payload to the framing parser; there is no
// fragmentation or aggregation layer. This package adapts
// github.com/pion/rtp packet types to the opuspack parser and opens no
// sockets itself.
package rtpopus

import (
	"time"

	"github.com/pion/rtp"

	"github.com/audiowire/opuspack"
)

// Decoder extracts parsed Opus packets from RTP packets.
type Decoder struct{}

// Decode parses the Opus packet carried in pkt's payload. The returned
// frames alias pkt.Payload, so pkt must outlive the result.
func (d *Decoder) Decode(pkt *rtp.Packet) (opuspack.Packet, error) {
	return opuspack.ParseFrames(pkt.Payload)
}

// Duration returns the audio duration of the Opus packet carried in
// pkt's payload.
func (d *Decoder) Duration(pkt *rtp.Packet) (time.Duration, error) {
	samples, err := opuspack.PacketSampleCount(pkt.Payload)
	if err != nil {
		return 0, err
	}
	return time.Duration(samples) * time.Second / 48000, nil
}

// Payloader prepares Opus packets for RTP packetization. It implements
// the pion/rtp Payloader interface.
type Payloader struct{}

// Payload returns the RTP payloads for one Opus packet. Opus does not
// fragment across RTP packets, so the packet travels whole regardless of
// mtu; a packet that does not parse yields no payloads.
func (p *Payloader) Payload(_ uint16, packet []byte) [][]byte {
	if _, err := opuspack.ParsePacket(packet); err != nil {
		return [][]byte{}
	}

	out := make([]byte, len(packet))
	copy(out, packet)
	return [][]byte{out}
}
