// framelen.go implements the frame length codec of RFC 6716 Section 3.2.1.
//
// A frame length is encoded in one byte for values 0-251. First bytes
// 252-255 start a two-byte encoding covering 252-1275:
//
//	length = 4*second + first
//
// The inverse puts the two low bits of the length into the first byte
// (first = 252 + length%4). Zero is a valid length and marks a DTX frame.

package opuspack

const (
	// maxFrameLength is the largest encodable frame length (255 + 4*255).
	maxFrameLength = 1275

	// twoByteThreshold is the smallest first-byte value that begins a
	// two-byte length encoding.
	twoByteThreshold = 252
)

// parseFrameLength decodes one frame length from data at the given offset.
// It returns the length and the number of bytes consumed.
//
// A missing first byte is ErrPacketTooShort; a first byte in 252-255 with
// no second byte is ErrInvalidFrameLength.
func parseFrameLength(data []byte, offset int) (int, int, error) {
	if offset >= len(data) {
		return 0, 0, ErrPacketTooShort
	}

	firstByte := int(data[offset])
	if firstByte < twoByteThreshold {
		return firstByte, 1, nil
	}

	if offset+1 >= len(data) {
		return 0, 0, ErrInvalidFrameLength
	}
	secondByte := int(data[offset+1])
	return 4*secondByte + firstByte, 2, nil
}

// frameLengthBytes returns the encoded size of a frame length.
func frameLengthBytes(length int) int {
	if length < twoByteThreshold {
		return 1
	}
	return 2
}

// writeFrameLength encodes length into dst and returns the bytes written.
// The caller guarantees 0 <= length <= maxFrameLength and sufficient room.
func writeFrameLength(dst []byte, length int) int {
	if length < twoByteThreshold {
		dst[0] = byte(length)
		return 1
	}
	firstByte := twoByteThreshold + (length % 4)
	secondByte := (length - firstByte) / 4
	dst[0] = byte(firstByte)
	dst[1] = byte(secondByte)
	return 2
}
