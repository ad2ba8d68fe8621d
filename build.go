// build.go assembles Opus packets from frame payloads: the inverse of
// packet.go. The encoding always picks the smallest code that can carry
// the frames (code 0, 1, 2, then 3 with CBR preferred over VBR), except
// when padding to an exact length forces code 3.

package opuspack

// buildOpts controls packet assembly.
type buildOpts struct {
	// selfDelimited emits RFC 6716 Appendix B framing.
	selfDelimited bool

	// padTo, when non-zero, pads the packet with code-3 padding so the
	// result is exactly padTo bytes.
	padTo int
}

// buildPacket assembles frames into dst under tocBase (a TOC byte with
// the frame count code bits cleared) and returns the bytes written.
// Frames must appear in transmission order. Returns ErrBufferTooSmall
// when dst cannot hold the result and ErrInvalidPacket when a frame is
// too long for its length field.
func buildPacket(tocBase byte, frames [][]byte, dst []byte, opts buildOpts) (int, error) {
	count := len(frames)
	if count < 1 || count > 48 {
		return 0, ErrInvalidArgument
	}

	lengths := make([]int, count)
	totalFrameBytes := 0
	for i, frame := range frames {
		lengths[i] = len(frame)
		totalFrameBytes += lengths[i]
	}

	sdBytes := 0
	if opts.selfDelimited {
		if lengths[count-1] > maxFrameLength {
			return 0, ErrInvalidPacket
		}
		sdBytes = frameLengthBytes(lengths[count-1])
	}

	if opts.padTo == 0 {
		return buildMinimal(tocBase, frames, lengths, totalFrameBytes, sdBytes, dst, opts.selfDelimited)
	}

	minSize, err := minimalSize(lengths, totalFrameBytes, sdBytes)
	if err != nil {
		return 0, err
	}
	if opts.padTo < minSize {
		return 0, ErrInvalidArgument
	}
	if opts.padTo == minSize {
		return buildMinimal(tocBase, frames, lengths, totalFrameBytes, sdBytes, dst, opts.selfDelimited)
	}
	return buildPadded(tocBase, frames, lengths, totalFrameBytes, sdBytes, dst, opts)
}

// minimalSize returns the smallest encoding size for the frames.
func minimalSize(lengths []int, totalFrameBytes, sdBytes int) (int, error) {
	count := len(lengths)
	switch {
	case count == 1:
		// Code 0
		return 1 + sdBytes + totalFrameBytes, nil
	case count == 2 && lengths[0] == lengths[1]:
		// Code 1
		return 1 + sdBytes + totalFrameBytes, nil
	case count == 2:
		// Code 2
		if lengths[0] > maxFrameLength {
			return 0, ErrInvalidPacket
		}
		return 1 + frameLengthBytes(lengths[0]) + sdBytes + totalFrameBytes, nil
	}

	// Code 3
	size := 2 + sdBytes + totalFrameBytes
	if vbrLayout(lengths) {
		for i := 0; i < count-1; i++ {
			if lengths[i] > maxFrameLength {
				return 0, ErrInvalidPacket
			}
			size += frameLengthBytes(lengths[i])
		}
	}
	return size, nil
}

// vbrLayout reports whether the frames need explicit per-frame lengths.
func vbrLayout(lengths []int) bool {
	for i := 1; i < len(lengths); i++ {
		if lengths[i] != lengths[0] {
			return true
		}
	}
	return false
}

// buildMinimal emits the smallest-code encoding.
func buildMinimal(tocBase byte, frames [][]byte, lengths []int, totalFrameBytes, sdBytes int, dst []byte, selfDelimited bool) (int, error) {
	count := len(frames)
	need, err := minimalSize(lengths, totalFrameBytes, sdBytes)
	if err != nil {
		return 0, err
	}
	if len(dst) < need {
		return 0, ErrBufferTooSmall
	}

	offset := 0
	switch {
	case count == 1:
		dst[offset] = tocBase
		offset++

	case count == 2 && lengths[0] == lengths[1]:
		dst[offset] = tocBase | 0x01
		offset++

	case count == 2:
		dst[offset] = tocBase | 0x02
		offset++
		offset += writeFrameLength(dst[offset:], lengths[0])

	default:
		vbr := vbrLayout(lengths)
		dst[offset] = tocBase | 0x03
		offset++
		if vbr {
			dst[offset] = byte(count) | 0x80
			offset++
			for i := 0; i < count-1; i++ {
				offset += writeFrameLength(dst[offset:], lengths[i])
			}
		} else {
			dst[offset] = byte(count)
			offset++
		}
	}

	if selfDelimited {
		offset += writeFrameLength(dst[offset:], lengths[count-1])
	}

	for i, frame := range frames {
		copy(dst[offset:], frame)
		offset += lengths[i]
	}
	return offset, nil
}

// buildPadded emits a code-3 encoding padded to exactly opts.padTo bytes.
// The padding chain encodes the data byte count; for a total padding cost
// of B bytes the chain is (B-1)/255 indicator bytes of 255 followed by a
// terminal byte of (B-1)%255, and the data bytes are zeroed.
func buildPadded(tocBase byte, frames [][]byte, lengths []int, totalFrameBytes, sdBytes int, dst []byte, opts buildOpts) (int, error) {
	count := len(frames)
	vbr := vbrLayout(lengths)

	size := 2 + sdBytes + totalFrameBytes
	if vbr {
		for i := 0; i < count-1; i++ {
			if lengths[i] > maxFrameLength {
				return 0, ErrInvalidPacket
			}
			size += frameLengthBytes(lengths[i])
		}
	}
	if opts.padTo < size {
		return 0, ErrInvalidArgument
	}
	if len(dst) < opts.padTo {
		return 0, ErrBufferTooSmall
	}

	dst[0] = tocBase | 0x03
	header := byte(count)
	if vbr {
		header |= 0x80
	}

	padAmount := opts.padTo - size
	offset := 2
	if padAmount > 0 {
		header |= 0x40
		indicators := (padAmount - 1) / 255
		for i := 0; i < indicators; i++ {
			dst[offset] = 255
			offset++
		}
		dst[offset] = byte(padAmount - 255*indicators - 1)
		offset++
	}
	dst[1] = header

	if vbr {
		for i := 0; i < count-1; i++ {
			offset += writeFrameLength(dst[offset:], lengths[i])
		}
	}
	if opts.selfDelimited {
		offset += writeFrameLength(dst[offset:], lengths[count-1])
	}

	for i, frame := range frames {
		copy(dst[offset:], frame)
		offset += lengths[i]
	}

	// Padding data bytes carry no audio; zero them.
	for offset < opts.padTo {
		dst[offset] = 0
		offset++
	}
	return offset, nil
}
