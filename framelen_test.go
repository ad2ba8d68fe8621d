package opuspack

import (
	"errors"
	"testing"
)

func TestParseFrameLength(t *testing.T) {
	tests := []struct {
		name     string
		encoded  []byte
		length   int
		consumed int
	}{
		{"length_0_dtx", []byte{0}, 0, 1},
		{"length_100", []byte{100}, 100, 1},
		{"length_251", []byte{251}, 251, 1},
		{"length_252", []byte{252, 0}, 252, 2},     // 4*0 + 252
		{"length_255", []byte{255, 0}, 255, 2},     // 4*0 + 255
		{"length_256", []byte{252, 1}, 256, 2},     // 4*1 + 252
		{"length_259", []byte{255, 1}, 259, 2},     // 4*1 + 255
		{"length_1020", []byte{252, 192}, 1020, 2}, // 4*192 + 252
		{"length_1275", []byte{255, 255}, 1275, 2}, // 4*255 + 255 (max two-byte)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			length, consumed, err := parseFrameLength(tt.encoded, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if length != tt.length {
				t.Errorf("length: got %d, want %d", length, tt.length)
			}
			if consumed != tt.consumed {
				t.Errorf("consumed: got %d, want %d", consumed, tt.consumed)
			}
		})
	}
}

func TestParseFrameLengthErrors(t *testing.T) {
	if _, _, err := parseFrameLength(nil, 0); !errors.Is(err, ErrPacketTooShort) {
		t.Errorf("empty buffer: got %v, want ErrPacketTooShort", err)
	}
	if _, _, err := parseFrameLength([]byte{0xAA}, 1); !errors.Is(err, ErrPacketTooShort) {
		t.Errorf("offset past end: got %v, want ErrPacketTooShort", err)
	}
	// First byte starts a two-byte encoding but the second byte is missing.
	for b := 252; b <= 255; b++ {
		if _, _, err := parseFrameLength([]byte{byte(b)}, 0); !errors.Is(err, ErrInvalidFrameLength) {
			t.Errorf("truncated two-byte encoding 0x%02X: got %v, want ErrInvalidFrameLength", b, err)
		}
	}
}

func TestWriteFrameLengthRoundTrip(t *testing.T) {
	var buf [2]byte
	for length := 0; length <= maxFrameLength; length++ {
		n := writeFrameLength(buf[:], length)
		if n != frameLengthBytes(length) {
			t.Fatalf("length %d: wrote %d bytes, frameLengthBytes says %d", length, n, frameLengthBytes(length))
		}
		decoded, consumed, err := parseFrameLength(buf[:n], 0)
		if err != nil {
			t.Fatalf("length %d: decode error: %v", length, err)
		}
		if decoded != length || consumed != n {
			t.Fatalf("length %d: round trip gave %d (%d bytes)", length, decoded, consumed)
		}
	}
}
