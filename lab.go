// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package engiffen

import "math"

// labColor is a color in CIE L*a*b* (D65 white point).  Euclidean distance
// in this space tracks perceived color difference far better than distance
// between raw RGB channels, which is why both the perceptual quantizer and
// the nearest-palette-entry search work here.
type labColor struct {
	l, a, b float32
}

func (x labColor) sqDist(y labColor) float32 {
	dl := x.l - y.l
	da := x.a - y.a
	db := x.b - y.b
	return dl*dl + da*da + db*db
}

// toLab converts an 8-bit sRGB color to L*a*b*.  Alpha is ignored; fully
// transparent pixels are normalized to black before they get here.
func toLab(c rgba) labColor {
	r := linearize(float64(c[0]) / 255)
	g := linearize(float64(c[1]) / 255)
	b := linearize(float64(c[2]) / 255)

	// sRGB to XYZ, scaled against the D65 reference white.
	x := labF((0.4124564*r + 0.3575761*g + 0.1804375*b) / 0.95047)
	y := labF(0.2126729*r + 0.7151522*g + 0.0721750*b)
	z := labF((0.0193339*r + 0.1191920*g + 0.9503041*b) / 1.08883)

	return labColor{
		l: float32(116*y - 16),
		a: float32(500 * (x - y)),
		b: float32(200 * (y - z)),
	}
}

// fromLab converts back to 8-bit sRGB, clamping out-of-gamut values.  Used
// to express trained palette candidates as concrete palette entries.
func fromLab(c labColor) rgba {
	fy := (float64(c.l) + 16) / 116
	fx := fy + float64(c.a)/500
	fz := fy - float64(c.b)/200

	x := labFInv(fx) * 0.95047
	y := labFInv(fy)
	z := labFInv(fz) * 1.08883

	r := delinearize(3.2404542*x - 1.5371385*y - 0.4985314*z)
	g := delinearize(-0.9692660*x + 1.8760108*y + 0.0415560*z)
	b := delinearize(0.0556434*x - 0.2040259*y + 1.0572252*z)

	return rgba{clamp8(r), clamp8(g), clamp8(b), 0xFF}
}

func clamp8(c float64) uint8 {
	v := math.Round(c * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func linearize(c float64) float64 {
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

func delinearize(c float64) float64 {
	if c > 0.0031308 {
		return 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return c * 12.92
}

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInv(t float64) float64 {
	if t3 := t * t * t; t3 > labEpsilon {
		return t3
	}
	return (116*t - 16) / labKappa
}
