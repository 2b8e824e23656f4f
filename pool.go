// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"image"

	"github.com/disintegration/imaging"
)

// rgba is a pixel value used as a map key.  Equality is exact per-channel
// equality.
type rgba [4]uint8

// pixelPool aggregates the pixel population of every frame in a run.  It
// exists only to feed palette derivation and the distinct-color index table;
// it holds the normalized frames so later stages don't re-convert them.
type pixelPool struct {
	width, height int
	frames        []*image.NRGBA
	freq          map[rgba]int
}

// newPixelPool verifies that every frame matches the first frame's
// dimensions, then accumulates a color frequency map across all frames.
// The dimension check runs before any pixel is touched so a mismatch fails
// without doing work proportional to pixel count.
func newPixelPool(imgs []Image) (*pixelPool, error) {
	first := imgs[0].Bounds().Size()
	for _, img := range imgs {
		if size := img.Bounds().Size(); size != first {
			return nil, &DimensionMismatchError{Want: first, Got: size, Path: img.Path}
		}
	}

	pool := &pixelPool{
		width:  first.X,
		height: first.Y,
		frames: make([]*image.NRGBA, len(imgs)),
		freq:   make(map[rgba]int),
	}
	for i, img := range imgs {
		frame := imaging.Clone(img)
		normalizeTransparent(frame)
		pool.frames[i] = frame
		for o := 0; o < len(frame.Pix); o += 4 {
			pool.freq[rgba{frame.Pix[o], frame.Pix[o+1], frame.Pix[o+2], frame.Pix[o+3]}]++
		}
	}
	return pool, nil
}

// normalizeTransparent collapses every fully transparent pixel to
// transparent black, so invisible color variation doesn't pollute the
// palette statistics.
func normalizeTransparent(m *image.NRGBA) {
	for o := 0; o < len(m.Pix); o += 4 {
		if m.Pix[o+3] == 0 {
			m.Pix[o] = 0
			m.Pix[o+1] = 0
			m.Pix[o+2] = 0
		}
	}
}

// distinct returns the pool's distinct colors.  Order is unspecified;
// callers that need determinism sort or index independently per color.
func (p *pixelPool) distinct() []rgba {
	colors := make([]rgba, 0, len(p.freq))
	for c := range p.freq {
		colors = append(colors, c)
	}
	return colors
}
