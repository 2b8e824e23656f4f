// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package framesource

import (
	"image"

	"github.com/muesli/smartcrop"
	"github.com/muesli/smartcrop/nfnt"
)

// cropWindow finds the most interesting crop region of aspect size.X:size.Y
// in m.  The returned window may be larger than size; combine with Width to
// scale down afterwards.
func cropWindow(m image.Image, size image.Point) (image.Rectangle, error) {
	analyzer := smartcrop.NewAnalyzer(nfnt.NewDefaultResizer())
	return analyzer.FindBestCrop(m, size.X, size.Y)
}
