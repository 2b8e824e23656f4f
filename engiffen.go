// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

// Package engiffen converts a sequence of decoded images into an animated
// GIF.  All frames share one global color palette, computed by a selectable
// Quantizer, and every pixel is re-expressed as an index into that palette
// before the frames are compressed into the output stream.  For typical use
// of building a Gif from image files, see cmd/engiffen/main.go.
package engiffen // import "github.com/TooManyBees/engiffen"

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"
)

// Verbose, when set, causes coarse per-stage timings to be written to the
// standard logger.
var Verbose bool

// Image is a decoded frame plus the path it was loaded from, if any.
type Image struct {
	image.Image
	Path string
}

// ErrNoImages is returned when Engiffen is called with no frames.
var ErrNoImages = errors.New("engiffen: no frames to encode")

// DimensionMismatchError is returned when a frame's dimensions differ from
// the first frame's.  All frames in one run must be the same size; nothing
// is resized automatically.
type DimensionMismatchError struct {
	Want, Got image.Point
	Path      string
}

func (e *DimensionMismatchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("engiffen: frame %s is %dx%d, want %dx%d", e.Path, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
	}
	return fmt.Sprintf("engiffen: frame is %dx%d, want %dx%d", e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

// errEmptyPalette indicates a quantizer produced a zero-size palette, which
// no input can legitimately cause.
var errEmptyPalette = errors.New("engiffen: quantizer produced an empty palette")

// Engiffen builds an animated Gif from imgs at the given frame rate, using q
// to derive the shared palette.  All frames must have identical dimensions;
// the returned Gif loops forever and carries one delay per frame.
func Engiffen(imgs []Image, fps int, q Quantizer) (*Gif, error) {
	if len(imgs) == 0 {
		return nil, ErrNoImages
	}
	if fps <= 0 {
		fps = 30
	}

	start := time.Now()
	pool, err := newPixelPool(imgs)
	if err != nil {
		return nil, err
	}
	observeStage(poolSummary, "pooled pixels", start)

	start = time.Now()
	palette := q.palette(pool)
	if len(palette) == 0 {
		return nil, errEmptyPalette
	}
	observeStage(quantizeSummary, "computed palette", start)

	start = time.Now()
	indexed, transparency, err := palettize(pool, palette)
	if err != nil {
		return nil, err
	}
	observeStage(palettizeSummary, "mapped pixels", start)

	delay := uint16(1000 / fps / 10) // centiseconds per frame
	delays := make([]uint16, len(indexed))
	disposals := make([]byte, len(indexed))
	for i := range delays {
		delays[i] = delay
	}

	framesEncoded.Add(float64(len(indexed)))

	return &Gif{
		Palette:      palette,
		Width:        uint16(pool.width),
		Height:       uint16(pool.height),
		Images:       indexed,
		Delays:       delays,
		Disposals:    disposals,
		LoopCount:    0,
		Transparency: transparency,
	}, nil
}

func observeStage(s interface{ Observe(float64) }, msg string, start time.Time) {
	d := time.Since(start)
	s.Observe(d.Seconds())
	if Verbose {
		log.Printf("engiffen: %s in %v", msg, d)
	}
}
