// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"errors"
	"image/color"
	"testing"
)

func TestPalettize_IndicesInBounds(t *testing.T) {
	pool, err := newPixelPool(frames(gradient(30, 20)))
	if err != nil {
		t.Fatal(err)
	}
	p := FrequencyQuantizer{}.palette(pool)

	indexed, _, err := palettize(pool, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(indexed) != len(pool.frames) {
		t.Fatalf("got %d indexed frames, want %d", len(indexed), len(pool.frames))
	}
	for i, img := range indexed {
		if len(img) != pool.width*pool.height {
			t.Fatalf("frame %d has %d indices, want %d", i, len(img), pool.width*pool.height)
		}
		for _, idx := range img {
			if int(idx) >= len(p) {
				t.Fatalf("frame %d contains index %d, palette size %d", i, idx, len(p))
			}
		}
	}
}

func TestPalettize_ExactMatches(t *testing.T) {
	pool, err := newPixelPool(frames(newImage(2, 2, red, green, blue, yellow)))
	if err != nil {
		t.Fatal(err)
	}
	p := FrequencyQuantizer{}.palette(pool)

	indexed, _, err := palettize(pool, p)
	if err != nil {
		t.Fatal(err)
	}
	for o, idx := range indexed[0] {
		got := p[idx]
		want := pixelAt(pool.frames[0], o%2, o/2)
		if (rgba{got.R, got.G, got.B, got.A}) != want {
			t.Errorf("pixel %d mapped to %v, want exact color %v", o, got, want)
		}
	}
}

func TestPalettize_OrderPreserved(t *testing.T) {
	imgs := frames(newImage(1, 1, red), newImage(1, 1, green), newImage(1, 1, blue))
	pool, err := newPixelPool(imgs)
	if err != nil {
		t.Fatal(err)
	}
	p := FrequencyQuantizer{}.palette(pool)

	indexed, _, err := palettize(pool, p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range imgs {
		want := pixelAt(pool.frames[i], 0, 0)
		got := p[indexed[i][0]]
		if (rgba{got.R, got.G, got.B, got.A}) != want {
			t.Errorf("output frame %d holds %v, want input frame %d color %v", i, got, i, want)
		}
	}
}

func TestPalettize_EmptyPalette(t *testing.T) {
	pool, err := newPixelPool(frames(newImage(1, 1, red)))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := palettize(pool, nil); !errors.Is(err, errEmptyPalette) {
		t.Errorf("palettize with empty palette returned %v, want errEmptyPalette", err)
	}
}

func TestPalettize_Transparency(t *testing.T) {
	pool, err := newPixelPool(frames(newImage(2, 1, red, color.NRGBA{0, 0, 0, 0})))
	if err != nil {
		t.Fatal(err)
	}
	p := FrequencyQuantizer{}.palette(pool)

	indexed, transparency, err := palettize(pool, p)
	if err != nil {
		t.Fatal(err)
	}
	if transparency == nil {
		t.Fatal("transparency = nil, want the transparent pixel's index")
	}
	if got := indexed[0][1]; got != *transparency {
		t.Errorf("transparent pixel maps to %d, transparency says %d", got, *transparency)
	}
}

func TestNearestIndex_TieBreaksLow(t *testing.T) {
	c := toLab(rgba{100, 100, 100, 255})
	palette := []labColor{
		toLab(rgba{200, 0, 0, 255}),
		toLab(rgba{50, 50, 50, 255}),
		toLab(rgba{50, 50, 50, 255}), // identical to index 1
	}
	if got := nearestIndex(palette, c); got != 1 {
		t.Errorf("nearestIndex = %d, want the lower of the tied indices (1)", got)
	}
}
