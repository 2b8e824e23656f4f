// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

// gradient builds a w*h image where every pixel is a distinct color.
func gradient(w, h int) image.Image {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), uint8(x ^ y), 255})
		}
	}
	return m
}

func TestFrequencyQuantizer_RanksByCount(t *testing.T) {
	// 4 red, 2 green, 1 blue, 1 yellow.
	pool, err := newPixelPool(frames(newImage(4, 2,
		red, red, red, red,
		green, green, blue, yellow,
	)))
	if err != nil {
		t.Fatal(err)
	}

	p := FrequencyQuantizer{}.palette(pool)
	if len(p) != 4 {
		t.Fatalf("palette has %d entries, want 4", len(p))
	}
	if p[0] != red {
		t.Errorf("p[0] = %v, want %v", p[0], red)
	}
	if p[1] != green {
		t.Errorf("p[1] = %v, want %v", p[1], green)
	}
	// blue and yellow tie at one occurrence each; ascending channel values
	// put yellow (255,255,0) after blue (0,0,255).
	if p[2] != blue || p[3] != yellow {
		t.Errorf("tied tail = %v, %v, want %v, %v", p[2], p[3], blue, yellow)
	}
}

func TestFrequencyQuantizer_Deterministic(t *testing.T) {
	imgs := frames(gradient(30, 20))
	var palettes []Palette
	for i := 0; i < 2; i++ {
		pool, err := newPixelPool(imgs)
		if err != nil {
			t.Fatal(err)
		}
		palettes = append(palettes, FrequencyQuantizer{}.palette(pool))
	}
	if !reflect.DeepEqual(palettes[0], palettes[1]) {
		t.Error("two runs over identical input produced different palettes")
	}
}

func TestFrequencyQuantizer_CapsAt256(t *testing.T) {
	pool, err := newPixelPool(frames(gradient(30, 20))) // 600 distinct colors
	if err != nil {
		t.Fatal(err)
	}
	if len(pool.freq) <= maxColors {
		t.Fatalf("test input has %d distinct colors, want > %d", len(pool.freq), maxColors)
	}
	p := FrequencyQuantizer{}.palette(pool)
	if len(p) != maxColors {
		t.Errorf("palette has %d entries, want %d", len(p), maxColors)
	}
}

func TestFrequencyQuantizer_NeverPads(t *testing.T) {
	pool, err := newPixelPool(frames(newImage(2, 2, red, red, green, blue)))
	if err != nil {
		t.Fatal(err)
	}
	p := FrequencyQuantizer{}.palette(pool)
	if len(p) != 3 {
		t.Errorf("palette has %d entries, want 3 (the distinct-color count)", len(p))
	}
}
