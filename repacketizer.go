// repacketizer.go merges and splits Opus packets at frame granularity,
// mirroring the libopus repacketizer surface. All frames collected into
// one output packet must share a TOC configuration, and a packet may not
// exceed 48 frames or 120ms of audio.

package opuspack

// maxPacketSamples is 120ms at 48kHz, the longest legal Opus packet.
const maxPacketSamples = 5760

// Repacketizer rebuilds packets from the frames of previously parsed
// ones. Frame payloads are borrowed from the packets passed to Cat, so
// those buffers must stay alive until Out is called.
//
// A Repacketizer is not safe for concurrent use.
type Repacketizer struct {
	tocBase      byte
	frameSamples int
	frames       [][]byte
	samples      int
}

// NewRepacketizer returns an empty repacketizer.
func NewRepacketizer() *Repacketizer {
	return &Repacketizer{}
}

// Reset discards all collected frames so the repacketizer can be reused.
func (rp *Repacketizer) Reset() {
	rp.frames = rp.frames[:0]
	rp.samples = 0
}

// NumFrames returns the number of frames collected so far.
func (rp *Repacketizer) NumFrames() int {
	return len(rp.frames)
}

// Cat appends the frames of packet to the repacketizer. The packet must
// carry the same TOC configuration and channel flag as previously added
// packets, and the accumulated audio may not exceed 48 frames or 120ms;
// violations return ErrInvalidPacket and leave the state unchanged.
func (rp *Repacketizer) Cat(packet []byte) error {
	parsed, err := ParseFrames(packet)
	if err != nil {
		return err
	}

	tocBase := packet[0] & 0xFC
	if len(rp.frames) == 0 {
		rp.tocBase = tocBase
		rp.frameSamples = parsed.TOC.FrameSamples
	} else if rp.tocBase != tocBase {
		return ErrInvalidPacket
	}

	added := len(parsed.Frames) * rp.frameSamples
	if len(rp.frames)+len(parsed.Frames) > 48 || rp.samples+added > maxPacketSamples {
		return ErrInvalidPacket
	}

	for _, frame := range parsed.Frames {
		rp.frames = append(rp.frames, frame.Data)
	}
	rp.samples += added
	return nil
}

// Out assembles all collected frames into dst as one packet and returns
// its length. Fails with ErrInvalidArgument when no frames are collected.
func (rp *Repacketizer) Out(dst []byte) (int, error) {
	return rp.OutRange(0, len(rp.frames), dst)
}

// OutRange assembles frames [begin, end) into dst as one packet and
// returns its length, preserving transmission order.
func (rp *Repacketizer) OutRange(begin, end int, dst []byte) (int, error) {
	if begin < 0 || end > len(rp.frames) || begin >= end {
		return 0, ErrInvalidArgument
	}
	return buildPacket(rp.tocBase, rp.frames[begin:end], dst, buildOpts{})
}

// PacketPad grows the packet in data[:packetLen] in place to exactly
// newLen bytes using code-3 padding. Any padding already present is
// replaced. data must have room for newLen bytes.
func PacketPad(data []byte, packetLen, newLen int) error {
	if packetLen < 1 || newLen < packetLen || newLen > len(data) {
		return ErrInvalidArgument
	}
	if newLen == packetLen {
		return nil
	}

	// The rebuild shifts frame data rightward, so work from a copy.
	src := make([]byte, packetLen)
	copy(src, data[:packetLen])

	layout, err := parseLayout(src, false)
	if err != nil {
		return err
	}
	_, err = buildPacket(src[0]&0xFC, layoutFrames(src, layout), data[:newLen], buildOpts{padTo: newLen})
	return err
}

// PacketUnpad strips all padding from the packet in data[:packetLen],
// rewrites it in place in its minimal encoding, and returns the new
// length.
func PacketUnpad(data []byte, packetLen int) (int, error) {
	if packetLen < 1 || packetLen > len(data) {
		return 0, ErrInvalidArgument
	}

	src := make([]byte, packetLen)
	copy(src, data[:packetLen])

	layout, err := parseLayout(src, false)
	if err != nil {
		return 0, err
	}
	return buildPacket(src[0]&0xFC, layoutFrames(src, layout), data[:packetLen], buildOpts{})
}

// MultistreamPacketPad grows a multistream payload in place to exactly
// newLen bytes by padding its final stream. The first streams-1
// self-delimited packets are preserved byte for byte.
func MultistreamPacketPad(data []byte, packetLen, newLen, streams int) error {
	if streams < 1 || packetLen < 1 || newLen < packetLen || newLen > len(data) {
		return ErrInvalidArgument
	}
	if newLen == packetLen {
		return nil
	}

	offset := 0
	for s := 0; s < streams-1; s++ {
		layout, err := parseLayout(data[offset:packetLen], true)
		if err != nil {
			return err
		}
		offset += layout.consumed
	}
	return PacketPad(data[offset:], packetLen-offset, newLen-offset)
}

// MultistreamPacketUnpad strips the padding from every stream of a
// multistream payload, compacts it in place, and returns the new length.
func MultistreamPacketUnpad(data []byte, packetLen, streams int) (int, error) {
	if streams < 1 || packetLen < 1 || packetLen > len(data) {
		return 0, ErrInvalidArgument
	}

	out := make([]byte, 0, packetLen)
	scratch := make([]byte, packetLen)
	offset := 0
	for s := 0; s < streams; s++ {
		last := s == streams-1
		layout, err := parseLayout(data[offset:packetLen], !last)
		if err != nil {
			return 0, err
		}
		segment := data[offset : offset+layout.consumed]
		n, err := buildPacket(segment[0]&0xFC, layoutFrames(segment, layout), scratch, buildOpts{selfDelimited: !last})
		if err != nil {
			return 0, err
		}
		out = append(out, scratch[:n]...)
		offset += layout.consumed
	}

	copy(data, out)
	return len(out), nil
}
