// selfdelim.go implements the self-delimiting framing variant of RFC 6716
// Appendix B, used when several Opus packets share one outer payload
// (notably the first N-1 streams of a multistream packet).
//
// Self-delimiting framing adds one frame length to the header so the
// packet's total size is recoverable without an outer length field:
// code 0 gains the single frame's length, code 1 gains the shared length,
// code 2 gains the second frame's length, and code 3 gains the last
// frame's length (VBR) or the shared length (CBR).

package opuspack

// ParseSelfDelimited parses one self-delimited packet from the front of
// data and reports how many bytes it occupies. Bytes past the returned
// count belong to subsequent packets. Frame and padding slices alias data.
func ParseSelfDelimited(data []byte) (Packet, int, error) {
	layout, err := parseLayout(data, true)
	if err != nil {
		return Packet{}, 0, err
	}
	return sliceFrames(data, layout), layout.consumed, nil
}

// ToSelfDelimited converts a standard-framed packet into its
// self-delimited form. The result is a fresh buffer; at most two bytes
// longer than the input.
func ToSelfDelimited(packet []byte) ([]byte, error) {
	layout, err := parseLayout(packet, false)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, len(packet)+2)
	n, err := buildPacket(packet[0]&0xFC, layoutFrames(packet, layout), dst, buildOpts{selfDelimited: true})
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// FromSelfDelimited converts the first self-delimited packet in data into
// a standard-framed packet, returning the converted packet and the bytes
// the self-delimited form occupied. The result is a fresh buffer.
func FromSelfDelimited(data []byte) ([]byte, int, error) {
	layout, err := parseLayout(data, true)
	if err != nil {
		return nil, 0, err
	}

	dst := make([]byte, layout.consumed)
	n, err := buildPacket(data[0]&0xFC, layoutFrames(data, layout), dst, buildOpts{})
	if err != nil {
		return nil, 0, err
	}
	return dst[:n], layout.consumed, nil
}

// layoutFrames returns the frame payload slices of a validated layout.
func layoutFrames(data []byte, layout packetLayout) [][]byte {
	frames := make([][]byte, len(layout.sizes))
	offset := layout.headerLen
	for i, size := range layout.sizes {
		frames[i] = data[offset : offset+size]
		offset += size
	}
	return frames
}
