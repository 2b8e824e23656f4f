// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"runtime"
	"sync"
)

// palettize re-expresses every frame in the pool as palette indices.  It
// returns one indexed raster per input frame, in input order, plus the
// transparent index if the input contained fully transparent pixels.
//
// The nearest palette entry for each distinct color is computed once, by a
// worker pool over disjoint chunks of the distinct-color slice; frames are
// then indexed by one worker per frame writing into its own preallocated
// slot.  The palette and the finished lookup table are read-only during the
// parallel phases, so no locking is needed, and every pixel's result
// depends only on its own color, so partitioning never affects output.
func palettize(pool *pixelPool, p Palette) ([][]uint8, *uint8, error) {
	if len(p) == 0 {
		return nil, nil, errEmptyPalette
	}

	palLab := make([]labColor, len(p))
	for i, c := range p {
		palLab[i] = toLab(rgba{c.R, c.G, c.B, c.A})
	}

	colors := pool.distinct()
	indices := make([]uint8, len(colors))

	workers := min(runtime.NumCPU(), len(colors))
	chunk := (len(colors) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(colors) {
			break
		}
		hi := min(lo+chunk, len(colors))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				indices[i] = nearestIndex(palLab, toLab(colors[i]))
			}
		}(lo, hi)
	}
	wg.Wait()

	var transparency *uint8
	lookup := make(map[rgba]uint8, len(colors))
	for i, c := range colors {
		lookup[c] = indices[i]
		if c[3] == 0 {
			idx := indices[i]
			transparency = &idx
		}
	}

	indexed := make([][]uint8, len(pool.frames))
	for i, frame := range pool.frames {
		wg.Add(1)
		go func(i int, pix []uint8) {
			defer wg.Done()
			out := make([]uint8, len(pix)/4)
			for o := 0; o < len(pix); o += 4 {
				out[o/4] = lookup[rgba{pix[o], pix[o+1], pix[o+2], pix[o+3]}]
			}
			indexed[i] = out
		}(i, frame.Pix)
	}
	wg.Wait()

	return indexed, transparency, nil
}

// nearestIndex returns the palette position minimizing squared L*a*b*
// distance to c.  Exact ties resolve to the lowest index, keeping output
// reproducible.
func nearestIndex(palette []labColor, c labColor) uint8 {
	best, bestDist := 0, palette[0].sqDist(c)
	for i := 1; i < len(palette); i++ {
		if d := palette[i].sqDist(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}
