// errors.go defines public error types for the opuspack package.

package opuspack

import "errors"

// Public error types for packet parsing and assembly.
var (
	// ErrPacketTooShort indicates a structurally required field (TOC byte,
	// frame-count header, a declared frame, or padding) could not be read
	// because the buffer ended first.
	ErrPacketTooShort = errors.New("opuspack: packet too short")

	// ErrInvalidPacket indicates enough bytes were present but a structural
	// rule was broken: odd code-1 remainder, code-3 frame count outside 1-48,
	// a CBR region that does not divide evenly, or explicit VBR lengths that
	// overcommit the frame data region.
	ErrInvalidPacket = errors.New("opuspack: invalid packet structure")

	// ErrInvalidFrameLength indicates a two-byte frame length encoding
	// (first byte 252-255) could not be completed.
	ErrInvalidFrameLength = errors.New("opuspack: invalid frame length encoding")

	// ErrBufferTooSmall indicates the destination buffer cannot hold the
	// assembled packet.
	ErrBufferTooSmall = errors.New("opuspack: output buffer too small")

	// ErrInvalidArgument indicates one or more function arguments are invalid.
	ErrInvalidArgument = errors.New("opuspack: invalid argument")
)
