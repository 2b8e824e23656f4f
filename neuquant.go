// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import "image"

// Training schedule.  Decay happens in fixed segments so that the adjustment
// magnitude and neighborhood radius both taper off as the candidate set
// settles.
const (
	netSize       = 256
	trainSegments = 100
	initialRadius = netSize / 8
)

// Prime steps used to walk the sample population in a scattered but fixed
// order.  Using a stride coprime with the sample count visits every sample
// exactly once without any randomness, so training is reproducible.
var primeSteps = [4]int{499, 491, 487, 503}

// PerceptualQuantizer derives the palette by iteratively training up to 256
// candidate colors against the sampled pixel population in L*a*b* space.
// Each presented sample pulls its nearest candidate (and a shrinking
// neighborhood around it) toward itself, with the pull weakening as
// training progresses.  Slower than FrequencyQuantizer, but degrades
// gracefully on continuous-tone input instead of banding.
type PerceptualQuantizer struct {
	// SampleStride reduces the training population: for a value of N, only
	// pixels on every Nth column of every Nth row participate, so stride 3
	// trains on roughly 1/9 of all pixels.  Values below 1 mean every
	// pixel.  Mapping still covers every pixel regardless.
	SampleStride int
}

func (q PerceptualQuantizer) palette(pool *pixelPool) Palette {
	// With 256 or fewer distinct colors the exact population is the best
	// possible palette; training could only approximate it.
	if len(pool.freq) <= maxColors {
		return toPalette(frequencyRanked(pool))
	}

	samples := q.sample(pool)
	net := newNetwork()
	net.train(samples)
	return toPalette(net.uniqueColors())
}

// sample collects the training population in L*a*b*, converting each
// distinct color once.
func (q PerceptualQuantizer) sample(pool *pixelPool) []labColor {
	stride := q.SampleStride
	if stride < 1 {
		stride = 1
	}

	cache := make(map[rgba]labColor, len(pool.freq))
	var samples []labColor
	for _, frame := range pool.frames {
		for y := 0; y < pool.height; y += stride {
			for x := 0; x < pool.width; x += stride {
				c := pixelAt(frame, x, y)
				lab, ok := cache[c]
				if !ok {
					lab = toLab(c)
					cache[c] = lab
				}
				samples = append(samples, lab)
			}
		}
	}
	return samples
}

func pixelAt(m *image.NRGBA, x, y int) rgba {
	o := m.PixOffset(x, y)
	return rgba{m.Pix[o], m.Pix[o+1], m.Pix[o+2], m.Pix[o+3]}
}

// network is the trainer's working set of candidate colors.  It is local to
// one palette build and discarded afterwards.
type network struct {
	neurons [netSize]labColor
}

// newNetwork spreads the candidates along the gray axis, the conventional
// neutral starting state for this family of quantizers.
func newNetwork() *network {
	n := &network{}
	for i := range n.neurons {
		n.neurons[i] = labColor{l: float32(i) * 100 / (netSize - 1)}
	}
	return n
}

func (n *network) train(samples []labColor) {
	if len(samples) == 0 {
		return
	}

	step := primeSteps[len(primeSteps)-1]
	for _, p := range primeSteps[:len(primeSteps)-1] {
		if len(samples)%p != 0 {
			step = p
			break
		}
	}

	segment := len(samples) / trainSegments
	if segment == 0 {
		segment = 1
	}

	alpha := 1.0
	radius := initialRadius
	pos := 0
	for i := 0; i < len(samples); i++ {
		n.learn(samples[pos], alpha, radius)
		pos = (pos + step) % len(samples)
		if (i+1)%segment == 0 {
			alpha -= alpha / 30
			radius = radius * 29 / 30
		}
	}
}

// learn pulls the candidate nearest to s toward s by alpha, and candidates
// within radius positions by a quadratically falling fraction of alpha.
func (n *network) learn(s labColor, alpha float64, radius int) {
	best := n.nearest(s)
	n.nudge(best, s, alpha)
	for d := 1; d <= radius; d++ {
		f := alpha * float64(radius*radius-d*d) / float64(radius*radius) / 4
		if best-d >= 0 {
			n.nudge(best-d, s, f)
		}
		if best+d < netSize {
			n.nudge(best+d, s, f)
		}
	}
}

func (n *network) nearest(s labColor) int {
	best, bestDist := 0, float32(0)
	for i, c := range n.neurons {
		if d := c.sqDist(s); i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (n *network) nudge(i int, s labColor, f float64) {
	c := &n.neurons[i]
	c.l += float32(f) * (s.l - c.l)
	c.a += float32(f) * (s.a - c.a)
	c.b += float32(f) * (s.b - c.b)
}

// uniqueColors rounds the trained candidates to 8-bit sRGB, dropping
// duplicates while preserving training order.
func (n *network) uniqueColors() []rgba {
	seen := make(map[rgba]bool, netSize)
	colors := make([]rgba, 0, netSize)
	for _, c := range n.neurons {
		rc := fromLab(c)
		if !seen[rc] {
			seen[rc] = true
			colors = append(colors, rc)
		}
	}
	return colors
}
