// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"bytes"
	"image/color"
	"sort"
)

// maxColors is the largest palette a GIF color table can hold.
const maxColors = 256

// Palette is an ordered sequence of at most 256 unique colors.  A color's
// position is the index that palettized frames refer to, and the order is
// written verbatim into the output's global color table.
type Palette []color.NRGBA

// A Quantizer reduces the combined pixel population of all frames to a
// Palette of at most 256 colors.
type Quantizer interface {
	palette(pool *pixelPool) Palette
}

// FrequencyQuantizer builds the palette from the 256 most frequently
// occurring colors.  It is the fastest strategy and is lossless when the
// input holds at most 256 distinct colors, but colors that are visually
// prominent yet numerically rare (small bright highlights, thin outlines)
// fall off the end of the ranking and get approximated away, producing
// banding on continuous-tone input.
type FrequencyQuantizer struct{}

func (FrequencyQuantizer) palette(pool *pixelPool) Palette {
	ranked := frequencyRanked(pool)
	if len(ranked) > maxColors {
		ranked = ranked[:maxColors]
	}
	return toPalette(ranked)
}

// frequencyRanked returns the pool's distinct colors ordered by descending
// occurrence count.  Ties are broken by ascending channel values so the
// ranking never depends on map iteration order.
func frequencyRanked(pool *pixelPool) []rgba {
	colors := pool.distinct()
	sort.Slice(colors, func(i, j int) bool {
		ci, cj := pool.freq[colors[i]], pool.freq[colors[j]]
		if ci != cj {
			return ci > cj
		}
		return bytes.Compare(colors[i][:], colors[j][:]) < 0
	})
	return colors
}

func toPalette(colors []rgba) Palette {
	p := make(Palette, len(colors))
	for i, c := range colors {
		p[i] = color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	return p
}
