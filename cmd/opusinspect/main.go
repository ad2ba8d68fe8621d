// opusinspect prints the framing structure of Opus packets: TOC fields,
// frame boundaries, DTX frames, and padding. Packets are given as hex
// strings on the command line or as one raw packet read from a file.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/audiowire/opuspack"
)

func main() {
	file := flag.String("f", "", "read one raw Opus packet from a file")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	var packets [][]byte
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.WithError(err).Fatal("read packet file")
		}
		packets = append(packets, data)
	}
	for _, arg := range flag.Args() {
		data, err := hex.DecodeString(arg)
		if err != nil {
			log.WithError(err).WithField("arg", arg).Fatal("bad hex packet")
		}
		packets = append(packets, data)
	}
	if len(packets) == 0 {
		log.Fatal("no packets: pass hex strings or -f <file>")
	}

	for i, data := range packets {
		if err := inspect(i, data); err != nil {
			log.WithError(err).WithField("packet", i).Error("parse failed")
		}
	}
}

func inspect(idx int, data []byte) error {
	fmt.Printf("packet %d: %d bytes\n", idx, len(data))

	pkt, err := opuspack.ParseFrames(data)
	if err != nil {
		return err
	}

	toc := pkt.TOC
	fmt.Printf("  toc: config=%d mode=%d bandwidth=%d stereo=%v code=%d frame=%v\n",
		toc.Config, toc.Mode, toc.Bandwidth, toc.Stereo, toc.FrameCode, toc.FrameDuration())

	info, _ := opuspack.ParsePacket(data)
	if toc.FrameCode == 3 {
		fmt.Printf("  code3: frames=%d vbr=%v padding_flag=%v\n", info.FrameCount, info.VBR, info.HasPadding)
	}

	for i, frame := range pkt.Frames {
		if frame.Silence {
			fmt.Printf("  frame %d: 0 bytes (DTX)\n", i)
			continue
		}
		max := len(frame.Data)
		if max > 8 {
			max = 8
		}
		fmt.Printf("  frame %d: %d bytes, first%d: % X\n", i, len(frame.Data), max, frame.Data[:max])
	}
	if pkt.Padding != nil {
		fmt.Printf("  padding: %d bytes\n", len(pkt.Padding))
	}
	duration := time.Duration(info.SampleCount()) * time.Second / 48000
	fmt.Printf("  duration: %v (%d samples at 48kHz)\n", duration, info.SampleCount())
	return nil
}
