// Package opuspack implements the Opus packet framing layer in pure Go.
//
// Opus packets carry between 1 and 48 coded audio frames behind a single
// TOC (Table of Contents) byte. This package parses that wire format per
// RFC 6716 Section 3: it locates every frame inside a packet, decodes the
// optional trailing padding, and exposes the TOC fields the spectral
// decoders need. It also implements the inverse direction (assembling
// frames into packets), the self-delimited framing variant of RFC 6716
// Appendix B, and a repacketizer for merging and splitting packets at
// frame granularity.
//
// The entropy decoder and the SILK/CELT spectral decoders are deliberately
// out of scope; this package hands them frame byte ranges and TOC fields
// and nothing more.
//
// # Packet Structure
//
// Each Opus packet starts with a TOC byte:
//   - Bits 7-3: Configuration (0-31)
//   - Bit 2: Stereo flag
//   - Bits 1-0: Frame count code (0-3)
//
// The frame count code selects one of four layouts:
//   - Code 0: 1 frame, the whole remainder
//   - Code 1: 2 equal-sized frames
//   - Code 2: 2 frames, first length explicit
//   - Code 3: 1-48 frames, CBR or VBR, optional padding
//
// Use ParseTOC to extract the TOC fields, ParsePacket to determine frame
// boundaries, and ParseFrames to get the frame byte ranges themselves.
//
// # Ownership
//
// Parsing never copies or mutates the input: every frame and padding
// slice returned by ParseFrames aliases the packet buffer, so the buffer
// must outlive the parsed result. Conversion and assembly functions
// (ToSelfDelimited, Repacketizer.Out, PacketPad, ...) write into buffers
// the caller provides or into fresh allocations, never into the source.
//
// # Errors
//
// Every malformed input maps to one of three kinds: ErrPacketTooShort
// when a structurally required field runs past the end of the buffer,
// ErrInvalidPacket when the bytes are present but break a structural
// rule, and ErrInvalidFrameLength when a two-byte frame length encoding
// cannot be completed. No input causes a panic; parsing performs no
// recovery and returns no partial results.
package opuspack
