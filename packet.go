// packet.go implements packet splitting and frame extraction per RFC 6716
// Section 3.2: the four frame count codes, the code-3 frame count header,
// and the recursive padding length encoding.

package opuspack

// PacketInfo describes the structure of an Opus packet without slicing it.
type PacketInfo struct {
	TOC        TOC   // Parsed TOC byte
	FrameCount int   // Number of frames (1-48)
	FrameSizes []int // Size in bytes of each frame, in transmission order
	VBR        bool  // Code-3 VBR flag
	HasPadding bool  // Code-3 padding flag
	Padding    int   // Padding data bytes at the packet tail (code 3 only)
	TotalSize  int   // Total packet size
}

// SampleCount returns the packet duration in samples at 48kHz.
func (info PacketInfo) SampleCount() int {
	return info.FrameCount * info.TOC.FrameSamples
}

// Frame is one coded audio frame located inside a packet.
type Frame struct {
	// Data aliases the packet buffer; it is empty for a DTX frame.
	Data []byte

	// Silence is true exactly when the frame's declared length is zero.
	// A silent frame tells the spectral decoder to hold over its previous
	// synthesis state instead of decoding absent data.
	Silence bool
}

// Packet is a fully parsed Opus packet. Frames appear in transmission
// order; downstream decoder state depends on that order.
//
// Frame data and Padding alias the buffer passed to ParseFrames, so the
// buffer must stay alive as long as the Packet is used. Padding is nil
// unless the code-3 padding flag is set, and is never audio data.
type Packet struct {
	TOC     TOC
	Frames  []Frame
	Padding []byte
}

// packetLayout is the internal result shared by standard and
// self-delimited parsing.
type packetLayout struct {
	toc        TOC
	sizes      []int
	vbr        bool
	hasPadding bool
	padding    int // padding data bytes
	headerLen  int // bytes before the first frame
	consumed   int // total bytes of this packet, headers+frames+padding
}

// ParsePacket determines the frame boundaries of an Opus packet from its
// TOC byte and per-code headers. It reads nothing beyond data and keeps
// no state between calls.
func ParsePacket(data []byte) (PacketInfo, error) {
	layout, err := parseLayout(data, false)
	if err != nil {
		return PacketInfo{}, err
	}

	return PacketInfo{
		TOC:        layout.toc,
		FrameCount: len(layout.sizes),
		FrameSizes: layout.sizes,
		VBR:        layout.vbr,
		HasPadding: layout.hasPadding,
		Padding:    layout.padding,
		TotalSize:  len(data),
	}, nil
}

// ParseFrames parses a packet and returns its frames as subslices of data.
func ParseFrames(data []byte) (Packet, error) {
	layout, err := parseLayout(data, false)
	if err != nil {
		return Packet{}, err
	}
	return sliceFrames(data, layout), nil
}

// PacketSampleCount returns the packet duration in samples at 48kHz.
func PacketSampleCount(data []byte) (int, error) {
	info, err := ParsePacket(data)
	if err != nil {
		return 0, err
	}
	return info.SampleCount(), nil
}

// sliceFrames cuts the frame and padding ranges of a validated layout out
// of the packet buffer.
func sliceFrames(data []byte, layout packetLayout) Packet {
	frames := make([]Frame, len(layout.sizes))
	offset := layout.headerLen
	for i, size := range layout.sizes {
		frames[i] = Frame{
			Data:    data[offset : offset+size],
			Silence: size == 0,
		}
		offset += size
	}

	var padding []byte
	if layout.hasPadding {
		padding = data[layout.consumed-layout.padding : layout.consumed]
	}

	return Packet{
		TOC:     layout.toc,
		Frames:  frames,
		Padding: padding,
	}
}

// parseLayout splits one packet into its frame sizes. When selfDelimited
// is true, data may contain trailing bytes belonging to subsequent
// packets and the layout's consumed field bounds this packet; otherwise
// the packet owns data exactly.
func parseLayout(data []byte, selfDelimited bool) (packetLayout, error) {
	if len(data) == 0 {
		return packetLayout{}, ErrPacketTooShort
	}

	toc := ParseTOC(data[0])

	var (
		layout packetLayout
		err    error
	)
	switch toc.FrameCode {
	case 0:
		layout, err = splitSingle(data, selfDelimited)
	case 1:
		layout, err = splitEqualPair(data, selfDelimited)
	case 2:
		layout, err = splitVariablePair(data, selfDelimited)
	case 3:
		layout, err = splitArbitrary(data, selfDelimited)
	}
	if err != nil {
		return packetLayout{}, err
	}

	layout.toc = toc
	layout.consumed = layout.headerLen + layout.padding
	for _, size := range layout.sizes {
		layout.consumed += size
	}
	if layout.consumed > len(data) {
		return packetLayout{}, ErrPacketTooShort
	}

	return layout, nil
}

// splitSingle handles code 0: the entire remainder is one frame. An empty
// remainder is a single DTX frame, not an error.
func splitSingle(data []byte, selfDelimited bool) (packetLayout, error) {
	if !selfDelimited {
		return packetLayout{
			sizes:     []int{len(data) - 1},
			headerLen: 1,
		}, nil
	}

	length, consumed, err := parseFrameLength(data, 1)
	if err != nil {
		return packetLayout{}, err
	}
	return packetLayout{
		sizes:     []int{length},
		headerLen: 1 + consumed,
	}, nil
}

// splitEqualPair handles code 1: two frames of identical, implicit size.
func splitEqualPair(data []byte, selfDelimited bool) (packetLayout, error) {
	if selfDelimited {
		length, consumed, err := parseFrameLength(data, 1)
		if err != nil {
			return packetLayout{}, err
		}
		return packetLayout{
			sizes:     []int{length, length},
			headerLen: 1 + consumed,
		}, nil
	}

	remainder := len(data) - 1
	if remainder < 2 {
		return packetLayout{}, ErrPacketTooShort
	}
	if remainder%2 != 0 {
		return packetLayout{}, ErrInvalidPacket
	}
	half := remainder / 2
	return packetLayout{
		sizes:     []int{half, half},
		headerLen: 1,
	}, nil
}

// splitVariablePair handles code 2: the first frame's length is explicit,
// the second is whatever remains and is never itself encoded.
func splitVariablePair(data []byte, selfDelimited bool) (packetLayout, error) {
	first, consumed, err := parseFrameLength(data, 1)
	if err != nil {
		return packetLayout{}, err
	}
	offset := 1 + consumed

	var second int
	if selfDelimited {
		second, consumed, err = parseFrameLength(data, offset)
		if err != nil {
			return packetLayout{}, err
		}
		offset += consumed
	} else {
		second = len(data) - offset - first
		if second < 0 {
			return packetLayout{}, ErrPacketTooShort
		}
	}

	return packetLayout{
		sizes:     []int{first, second},
		headerLen: offset,
	}, nil
}

// splitArbitrary handles code 3: the frame count header byte, optional
// padding, and the CBR/VBR frame layouts.
func splitArbitrary(data []byte, selfDelimited bool) (packetLayout, error) {
	if len(data) < 2 {
		return packetLayout{}, ErrPacketTooShort
	}

	header := data[1]
	vbr := (header & 0x80) != 0
	hasPadding := (header & 0x40) != 0
	count := int(header & 0x3F)

	// The 6-bit field can express 0-63 but only 1-48 is meaningful.
	if count < 1 || count > 48 {
		return packetLayout{}, ErrInvalidPacket
	}

	offset := 2
	padding := 0
	if hasPadding {
		indicatorBytes, paddingLen, err := extractPadding(data[offset:])
		if err != nil {
			return packetLayout{}, err
		}
		offset += indicatorBytes
		padding = paddingLen
	}

	layout := packetLayout{
		vbr:        vbr,
		hasPadding: hasPadding,
		padding:    padding,
	}

	if vbr {
		// VBR: count-1 explicit lengths; the final frame's length is
		// inferred from what the others and the padding leave behind.
		sizes := make([]int, count)
		known := 0
		for i := 0; i < count-1; i++ {
			length, consumed, err := parseFrameLength(data, offset)
			if err != nil {
				return packetLayout{}, err
			}
			offset += consumed
			sizes[i] = length
			known += length
		}

		if selfDelimited {
			last, consumed, err := parseFrameLength(data, offset)
			if err != nil {
				return packetLayout{}, err
			}
			offset += consumed
			sizes[count-1] = last
		} else {
			if known > len(data)-offset {
				return packetLayout{}, ErrPacketTooShort
			}
			last := len(data) - offset - padding - known
			if last < 0 {
				return packetLayout{}, ErrInvalidPacket
			}
			sizes[count-1] = last
		}

		layout.sizes = sizes
		layout.headerLen = offset
		return layout, nil
	}

	// CBR: no lengths on the wire in standard framing; the region left
	// after headers and padding must divide evenly by the frame count.
	var frameLen int
	if selfDelimited {
		length, consumed, err := parseFrameLength(data, offset)
		if err != nil {
			return packetLayout{}, err
		}
		offset += consumed
		frameLen = length
	} else {
		region := len(data) - offset - padding
		if region < 0 {
			return packetLayout{}, ErrPacketTooShort
		}
		if region%count != 0 {
			return packetLayout{}, ErrInvalidPacket
		}
		frameLen = region / count
	}

	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = frameLen
	}
	layout.sizes = sizes
	layout.headerLen = offset
	return layout, nil
}

// extractPadding decodes the padding length chain that follows the code-3
// frame count header. Each 255-valued indicator byte contributes 254 data
// bytes and continues the chain; a terminal byte 0-254 contributes its own
// value. Returns the indicator bytes consumed and the padding data length.
//
// The loop is bounded by len(remaining), so an adversarial all-255 buffer
// terminates with ErrPacketTooShort.
func extractPadding(remaining []byte) (int, int, error) {
	indicatorBytes := 0
	paddingLen := 0
	for {
		if indicatorBytes >= len(remaining) {
			return 0, 0, ErrPacketTooShort
		}
		b := remaining[indicatorBytes]
		indicatorBytes++
		if b == 255 {
			paddingLen += 254
			continue
		}
		paddingLen += int(b)
		break
	}

	if indicatorBytes+paddingLen > len(remaining) {
		return 0, 0, ErrPacketTooShort
	}
	return indicatorBytes, paddingLen, nil
}
