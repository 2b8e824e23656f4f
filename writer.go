// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"bufio"
	"compress/lzw"
	"errors"
	"fmt"
	"io"
	"time"
)

// Section indicators.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2C
	sTrailer         = 0x3B
)

// Graphic control extension fields.
const (
	gcLabel     = 0xF9
	gcBlockSize = 0x04
)

// Disposal methods for the graphic control extension, matching the wire
// values the format defines.
const (
	DisposalUnspecified byte = iota
	DisposalNone
	DisposalBackground
	DisposalPrevious
)

// Legal global color table sizes.  The table must occupy a power-of-two
// number of slots; the logical screen descriptor carries the exponent.
var log2Lookup = [8]int{2, 4, 8, 16, 32, 64, 128, 256}

func log2Int256(x int) int {
	for i, v := range log2Lookup {
		if x <= v {
			return i
		}
	}
	return -1
}

// Little-endian.
func writeUint16(b []uint8, u uint16) {
	b[0] = uint8(u)
	b[1] = uint8(u >> 8)
}

// Gif is a fully quantized animation, ready to serialize.  Engiffen
// produces one, but a Gif can also be assembled directly from palettized
// frame data.
type Gif struct {
	// Palette is the global color table shared by every frame.
	Palette Palette
	// Width and Height are the canvas dimensions, shared by every frame.
	Width, Height uint16
	// Images holds each frame's pixels as palette indices, row-major.
	Images [][]uint8
	// Delays holds each frame's display duration in 100ths of a second.
	Delays []uint16
	// Disposals holds each frame's disposal method.  May be nil, meaning
	// unspecified disposal for every frame.
	Disposals []byte
	// LoopCount is the number of times the animation repeats.  0 loops
	// forever; -1 plays once and writes no looping extension.
	LoopCount int
	// Transparency, if non-nil, is the palette index rendered as
	// transparent.
	Transparency *uint8
}

type writer interface {
	io.Writer
	io.ByteWriter
}

type encoder struct {
	w            writer
	flush        func() error
	g            *Gif
	bitsPerPixel int
	err          error
	buf          [16]byte
}

// blockWriter chops the LZW stream into the format's 255-byte sub-blocks,
// each preceded by its length.
type blockWriter struct {
	w   writer
	err error
	tmp [256]byte
}

func (b *blockWriter) Write(data []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	total := 0
	for total < len(data) {
		n := copy(b.tmp[1:256], data[total:])
		total += n
		b.tmp[0] = uint8(n)
		if _, b.err = b.w.Write(b.tmp[:n+1]); b.err != nil {
			return 0, b.err
		}
	}
	return total, nil
}

// Write serializes the animation as a GIF89a stream.  The frame, delay, and
// palette invariants are checked before any byte is committed, so a failed
// Write either reports a validation error with the sink untouched or an I/O
// error from the sink itself.
func (g *Gif) Write(w io.Writer) error {
	start := time.Now()
	if err := g.validate(); err != nil {
		return err
	}

	e := &encoder{g: g}
	if ww, ok := w.(writer); ok {
		e.w = ww
	} else {
		bw := bufio.NewWriter(w)
		e.w = bw
		e.flush = bw.Flush
	}

	e.writeHeader()
	for i := range g.Images {
		e.writeFrame(i)
	}
	e.writeByte(sTrailer)
	if e.err == nil && e.flush != nil {
		e.err = e.flush()
	}
	if e.err == nil {
		observeStage(encodeSummary, "wrote stream", start)
	}
	return e.err
}

func (g *Gif) validate() error {
	if len(g.Images) == 0 {
		return errors.New("engiffen: no frames in gif")
	}
	if len(g.Delays) != len(g.Images) {
		return fmt.Errorf("engiffen: %d frames but %d delays", len(g.Images), len(g.Delays))
	}
	if g.Disposals != nil && len(g.Disposals) != len(g.Images) {
		return fmt.Errorf("engiffen: %d frames but %d disposals", len(g.Images), len(g.Disposals))
	}
	if len(g.Palette) == 0 || len(g.Palette) > maxColors {
		return fmt.Errorf("engiffen: palette has %d entries, want 1 to %d", len(g.Palette), maxColors)
	}
	want := int(g.Width) * int(g.Height)
	for i, img := range g.Images {
		if len(img) != want {
			return fmt.Errorf("engiffen: frame %d has %d pixels, want %d", i, len(img), want)
		}
	}
	return nil
}

func (e *encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}

func (e *encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	e.err = e.w.WriteByte(b)
}

func (e *encoder) writeHeader() {
	if _, err := io.WriteString(e.w, "GIF89a"); err != nil {
		e.err = err
		return
	}

	// Logical screen descriptor.
	writeUint16(e.buf[:2], e.g.Width)
	writeUint16(e.buf[2:4], e.g.Height)
	e.write(e.buf[:4])

	e.bitsPerPixel = log2Int256(len(e.g.Palette)) + 1
	e.buf[0] = 0x80 | ((uint8(e.bitsPerPixel) - 1) << 4) | (uint8(e.bitsPerPixel) - 1)
	e.buf[1] = 0x00 // Background Color Index.
	e.buf[2] = 0x00 // Pixel Aspect Ratio.
	e.write(e.buf[:3])

	e.writeColorTable()

	if e.g.LoopCount >= 0 {
		e.buf[0] = sExtension
		e.buf[1] = 0xFF // Application Extension Label.
		e.buf[2] = 0x0B // Block Size.
		e.write(e.buf[:3])
		if _, err := io.WriteString(e.w, "NETSCAPE2.0"); err != nil {
			e.err = err
			return
		}
		e.buf[0] = 0x03 // Sub-block Size.
		e.buf[1] = 0x01 // Sub-block Index.
		writeUint16(e.buf[2:4], uint16(e.g.LoopCount))
		e.buf[4] = 0x00 // Block Terminator.
		e.write(e.buf[:5])
	}
}

// writeColorTable emits the palette padded to the next power-of-two slot
// count.  Slots past the real palette repeat entry 0; decoders never index
// them, only the slot count and the descriptor's size exponent matter.
func (e *encoder) writeColorTable() {
	p := e.g.Palette
	for i := 0; i < log2Lookup[e.bitsPerPixel-1]; i++ {
		c := p[0]
		if i < len(p) {
			c = p[i]
		}
		e.buf[0] = c.R
		e.buf[1] = c.G
		e.buf[2] = c.B
		e.write(e.buf[:3])
	}
}

func (e *encoder) writeFrame(i int) {
	if e.err != nil {
		return
	}

	// Graphic control extension.
	e.buf[0] = sExtension
	e.buf[1] = gcLabel
	e.buf[2] = gcBlockSize
	var disposal byte
	if e.g.Disposals != nil {
		disposal = e.g.Disposals[i]
	}
	e.buf[3] = disposal << 2
	writeUint16(e.buf[4:6], e.g.Delays[i])
	e.buf[6] = 0x00
	if e.g.Transparency != nil {
		e.buf[3] |= 0x01
		e.buf[6] = *e.g.Transparency
	}
	e.buf[7] = 0x00 // Block Terminator.
	e.write(e.buf[:8])

	// Image descriptor.  Every frame covers the whole canvas and uses the
	// global color table, so there is no local table to flag.
	e.buf[0] = sImageDescriptor
	writeUint16(e.buf[1:3], 0)
	writeUint16(e.buf[3:5], 0)
	writeUint16(e.buf[5:7], e.g.Width)
	writeUint16(e.buf[7:9], e.g.Height)
	e.buf[9] = 0x00
	e.write(e.buf[:10])

	litWidth := e.bitsPerPixel
	if litWidth < 2 {
		litWidth = 2
	}
	e.writeByte(uint8(litWidth)) // LZW Minimum Code Size.

	bw := &blockWriter{w: e.w}
	lzww := lzw.NewWriter(bw, lzw.LSB, litWidth)
	if _, err := lzww.Write(e.g.Images[i]); err != nil {
		e.err = err
		lzww.Close()
		return
	}
	if err := lzww.Close(); err != nil && e.err == nil {
		e.err = err
	}
	if bw.err != nil && e.err == nil {
		e.err = bw.err
	}

	e.writeByte(0x00) // Block Terminator.
}
