// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package framesource

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// exifOrientation returns the transforms that undo the EXIF orientation tag
// in r, so camera frames encode the way they display.  Any decode problem
// means no transform.
func exifOrientation(r io.Reader) []func(image.Image) *image.NRGBA {
	// EXIF orientation values.
	const (
		topLeftSide     = 1
		topRightSide    = 2
		bottomRightSide = 3
		bottomLeftSide  = 4
		leftSideTop     = 5
		rightSideTop    = 6
		rightSideBottom = 7
		leftSideBottom  = 8
	)

	ex, err := exif.Decode(r)
	if err != nil {
		return nil
	}
	tag, err := ex.Get(exif.Orientation)
	if err != nil {
		return nil
	}
	orient, err := tag.Int(0)
	if err != nil {
		return nil
	}

	switch orient {
	case topRightSide:
		return []func(image.Image) *image.NRGBA{imaging.FlipH}
	case bottomRightSide:
		return []func(image.Image) *image.NRGBA{imaging.Rotate180}
	case bottomLeftSide:
		return []func(image.Image) *image.NRGBA{imaging.FlipV}
	case leftSideTop:
		return []func(image.Image) *image.NRGBA{imaging.Transpose}
	case rightSideTop:
		return []func(image.Image) *image.NRGBA{imaging.Rotate270}
	case rightSideBottom:
		return []func(image.Image) *image.NRGBA{imaging.Transverse}
	case leftSideBottom:
		return []func(image.Image) *image.NRGBA{imaging.Rotate90}
	}
	return nil
}
