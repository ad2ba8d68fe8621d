// multistream.go splits RFC 6716 Appendix B multistream payloads into
// their elementary Opus packets. The first N-1 streams use self-delimited
// framing; the last stream uses standard framing and runs to the end of
// the payload.

package opuspack

// SplitMultistream returns the elementary packets carried by a
// multistream payload, in stream order. The first streams-1 packets are
// converted from self-delimited to standard framing into fresh buffers;
// the final packet aliases data.
func SplitMultistream(data []byte, streams int) ([][]byte, error) {
	if streams < 1 || streams > 255 {
		return nil, ErrInvalidArgument
	}

	packets := make([][]byte, streams)
	offset := 0
	for i := 0; i < streams-1; i++ {
		if offset >= len(data) {
			return nil, ErrPacketTooShort
		}
		packet, consumed, err := FromSelfDelimited(data[offset:])
		if err != nil {
			return nil, err
		}
		packets[i] = packet
		offset += consumed
	}

	if offset >= len(data) {
		return nil, ErrPacketTooShort
	}
	last := data[offset:]
	if _, err := parseLayout(last, false); err != nil {
		return nil, err
	}
	packets[streams-1] = last

	return packets, nil
}
