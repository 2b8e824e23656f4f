// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import (
	"reflect"
	"testing"
)

func TestPerceptualQuantizer_Deterministic(t *testing.T) {
	imgs := frames(gradient(30, 20)) // 600 distinct colors, forces training
	var palettes []Palette
	for i := 0; i < 2; i++ {
		pool, err := newPixelPool(imgs)
		if err != nil {
			t.Fatal(err)
		}
		palettes = append(palettes, PerceptualQuantizer{}.palette(pool))
	}
	if !reflect.DeepEqual(palettes[0], palettes[1]) {
		t.Error("two runs over identical input produced different palettes")
	}
}

// Varying the sample stride changes speed and approximation only; every
// stride still yields a valid bounded palette.
func TestPerceptualQuantizer_SampleStrides(t *testing.T) {
	for _, stride := range []int{0, 1, 2, 3, 7} {
		pool, err := newPixelPool(frames(gradient(30, 20)))
		if err != nil {
			t.Fatal(err)
		}
		p := PerceptualQuantizer{SampleStride: stride}.palette(pool)
		if len(p) == 0 || len(p) > maxColors {
			t.Errorf("stride %d: palette has %d entries, want 1 to %d", stride, len(p), maxColors)
		}
		seen := make(map[rgba]bool)
		for _, c := range p {
			key := rgba{c.R, c.G, c.B, c.A}
			if seen[key] {
				t.Errorf("stride %d: palette contains %v twice", stride, c)
			}
			seen[key] = true
		}
	}
}

// With 256 or fewer distinct colors the perceptual quantizer returns the
// exact population instead of a trained approximation.
func TestPerceptualQuantizer_ExactUnderLimit(t *testing.T) {
	pool, err := newPixelPool(frames(newImage(2, 2, red, green, blue, yellow)))
	if err != nil {
		t.Fatal(err)
	}
	p := PerceptualQuantizer{SampleStride: 2}.palette(pool)
	if len(p) != 4 {
		t.Fatalf("palette has %d entries, want 4", len(p))
	}
	want := map[rgba]bool{
		{255, 0, 0, 255}:   true,
		{0, 255, 0, 255}:   true,
		{0, 0, 255, 255}:   true,
		{255, 255, 0, 255}: true,
	}
	for _, c := range p {
		if !want[rgba{c.R, c.G, c.B, c.A}] {
			t.Errorf("palette contains unexpected color %v", c)
		}
	}
}

func TestPerceptualQuantizer_SingleColor(t *testing.T) {
	pool, err := newPixelPool(frames(newImage(4, 4, blue)))
	if err != nil {
		t.Fatal(err)
	}
	p := PerceptualQuantizer{}.palette(pool)
	if len(p) != 1 || p[0] != blue {
		t.Errorf("palette = %v, want exactly [%v]", p, blue)
	}
}

func TestNetwork_TrainPullsTowardSamples(t *testing.T) {
	// Train on a pure red population; the best-matching candidate should
	// land very near red.
	samples := make([]labColor, 1000)
	target := toLab(rgba{255, 0, 0, 255})
	for i := range samples {
		samples[i] = target
	}
	net := newNetwork()
	net.train(samples)

	best := net.neurons[net.nearest(target)]
	if d := best.sqDist(target); d > 1 {
		t.Errorf("nearest candidate is %v away from the only sample color, want < 1", d)
	}
}
