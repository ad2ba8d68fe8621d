// toc.go implements TOC byte parsing and construction per RFC 6716 Section 3.1.

package opuspack

import (
	"time"

	"github.com/audiowire/opuspack/types"
)

// Mode is an alias for types.Mode representing the Opus coding mode.
type Mode = types.Mode

// Bandwidth is an alias for types.Bandwidth representing the audio bandwidth.
type Bandwidth = types.Bandwidth

// Re-export mode constants for convenience.
const (
	ModeSILK   = types.ModeSILK   // SILK-only mode (configs 0-11)
	ModeHybrid = types.ModeHybrid // Hybrid SILK+CELT (configs 12-15)
	ModeCELT   = types.ModeCELT   // CELT-only mode (configs 16-31)
)

// Re-export bandwidth constants for convenience.
const (
	BandwidthNarrowband    = types.BandwidthNarrowband    // 4kHz audio, 8kHz sample rate
	BandwidthMediumband    = types.BandwidthMediumband    // 6kHz audio, 12kHz sample rate
	BandwidthWideband      = types.BandwidthWideband      // 8kHz audio, 16kHz sample rate
	BandwidthSuperwideband = types.BandwidthSuperwideband // 12kHz audio, 24kHz sample rate
	BandwidthFullband      = types.BandwidthFullband      // 20kHz audio, 48kHz sample rate
)

// TOC represents the parsed Table of Contents byte of an Opus packet.
//
// Config, Mode, Bandwidth, and FrameSamples are opaque to the framing
// layer itself; they are decoded here because the spectral decoders and
// the repacketizer's duration accounting need them.
type TOC struct {
	Config       uint8     // Configuration 0-31
	Mode         Mode      // Derived from config
	Bandwidth    Bandwidth // Derived from config
	FrameSamples int       // Per-frame duration in samples at 48kHz
	Stereo       bool      // True if the channel flag (bit 2) is set
	FrameCode    uint8     // Frame count code 0-3
}

// FrameDuration returns the duration of one frame under this configuration.
func (t TOC) FrameDuration() time.Duration {
	return time.Duration(t.FrameSamples) * time.Second / 48000
}

// configEntry holds the mode, bandwidth, and frame duration for a configuration.
type configEntry struct {
	Mode         Mode
	Bandwidth    Bandwidth
	FrameSamples int // In samples at 48kHz
}

// configTable maps configuration indices 0-31 to their properties.
// Based on the RFC 6716 Section 3.1 table.
var configTable = [32]configEntry{
	// SILK-only NB: configs 0-3 (10/20/40/60ms)
	{ModeSILK, BandwidthNarrowband, 480},
	{ModeSILK, BandwidthNarrowband, 960},
	{ModeSILK, BandwidthNarrowband, 1920},
	{ModeSILK, BandwidthNarrowband, 2880},
	// SILK-only MB: configs 4-7
	{ModeSILK, BandwidthMediumband, 480},
	{ModeSILK, BandwidthMediumband, 960},
	{ModeSILK, BandwidthMediumband, 1920},
	{ModeSILK, BandwidthMediumband, 2880},
	// SILK-only WB: configs 8-11
	{ModeSILK, BandwidthWideband, 480},
	{ModeSILK, BandwidthWideband, 960},
	{ModeSILK, BandwidthWideband, 1920},
	{ModeSILK, BandwidthWideband, 2880},
	// Hybrid SWB: configs 12-13 (10/20ms)
	{ModeHybrid, BandwidthSuperwideband, 480},
	{ModeHybrid, BandwidthSuperwideband, 960},
	// Hybrid FB: configs 14-15
	{ModeHybrid, BandwidthFullband, 480},
	{ModeHybrid, BandwidthFullband, 960},
	// CELT NB: configs 16-19 (2.5/5/10/20ms)
	{ModeCELT, BandwidthNarrowband, 120},
	{ModeCELT, BandwidthNarrowband, 240},
	{ModeCELT, BandwidthNarrowband, 480},
	{ModeCELT, BandwidthNarrowband, 960},
	// CELT WB: configs 20-23
	{ModeCELT, BandwidthWideband, 120},
	{ModeCELT, BandwidthWideband, 240},
	{ModeCELT, BandwidthWideband, 480},
	{ModeCELT, BandwidthWideband, 960},
	// CELT SWB: configs 24-27
	{ModeCELT, BandwidthSuperwideband, 120},
	{ModeCELT, BandwidthSuperwideband, 240},
	{ModeCELT, BandwidthSuperwideband, 480},
	{ModeCELT, BandwidthSuperwideband, 960},
	// CELT FB: configs 28-31
	{ModeCELT, BandwidthFullband, 120},
	{ModeCELT, BandwidthFullband, 240},
	{ModeCELT, BandwidthFullband, 480},
	{ModeCELT, BandwidthFullband, 960},
}

// ParseTOC parses a TOC byte and returns the decoded fields.
// All 256 byte values are structurally valid, so ParseTOC never fails;
// whether a configuration is usable is the spectral decoder's concern.
func ParseTOC(b byte) TOC {
	config := b >> 3          // Top 5 bits
	stereo := (b & 0x04) != 0 // Bit 2
	frameCode := b & 0x03     // Bottom 2 bits

	entry := configTable[config]

	return TOC{
		Config:       config,
		Mode:         entry.Mode,
		Bandwidth:    entry.Bandwidth,
		FrameSamples: entry.FrameSamples,
		Stereo:       stereo,
		FrameCode:    frameCode,
	}
}

// GenerateTOC creates a TOC byte from framing parameters.
// config: Configuration index 0-31
// stereo: True for stereo, false for mono
// frameCode: Frame count code 0-3
//
//	0: 1 frame
//	1: 2 equal-sized frames
//	2: 2 different-sized frames
//	3: arbitrary number of frames
func GenerateTOC(config uint8, stereo bool, frameCode uint8) byte {
	toc := (config & 0x1F) << 3
	if stereo {
		toc |= 0x04
	}
	toc |= frameCode & 0x03
	return toc
}

// ConfigFromParams returns the config index for given mode, bandwidth, and
// per-frame sample count at 48kHz. Returns -1 if the combination is invalid.
func ConfigFromParams(mode Mode, bandwidth Bandwidth, frameSamples int) int {
	for i, entry := range configTable {
		if entry.Mode == mode && entry.Bandwidth == bandwidth && entry.FrameSamples == frameSamples {
			return i
		}
	}
	return -1
}

// ValidConfig returns true if the configuration index is valid.
func ValidConfig(config uint8) bool {
	return config < 32
}
