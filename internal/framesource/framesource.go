// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

// Package framesource loads animation frames for engiffen from local files,
// remote URLs, filename ranges, and video streams.  Individual frames that
// fail to load are reported and skipped; loading fails only when no frames
// remain.
package framesource

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp frames; imaging registers gif/jpeg/png/bmp/tiff

	"github.com/TooManyBees/engiffen"
)

// Options control how frames are loaded and preprocessed.
type Options struct {
	// Width, if positive, resizes every frame to this width, preserving
	// aspect ratio.
	Width int

	// Crop, if non-zero, crops every frame to this size.  The crop window
	// is chosen once, on the first frame, so the animation stays
	// registered across frames.
	Crop image.Point

	// Client fetches http(s) frame URLs.  If nil, remote paths are
	// treated as load failures.
	Client *http.Client

	Verbose bool
}

// Load reads and decodes each path in order.  Paths may be local files or
// http(s) URLs.  Per-path failures are logged and skipped; an error is
// returned only if nothing loads.
func Load(paths []string, opts *Options) ([]engiffen.Image, error) {
	if opts == nil {
		opts = &Options{}
	}
	imgs := make([]engiffen.Image, 0, len(paths))
	for _, p := range paths {
		m, err := loadOne(p, opts)
		if err != nil {
			log.Printf("framesource: skipping %s: %v", p, err)
			continue
		}
		imgs = append(imgs, engiffen.Image{Image: m, Path: p})
	}
	if len(imgs) == 0 {
		return nil, fmt.Errorf("framesource: no loadable frames among %d paths", len(paths))
	}
	return preprocess(imgs, opts)
}

func loadOne(path string, opts *Options) (image.Image, error) {
	var (
		b   []byte
		err error
	)
	if isRemote(path) {
		if opts.Client == nil {
			return nil, fmt.Errorf("remote frames not enabled")
		}
		b, err = fetch(opts.Client, path)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	m, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	for _, fn := range exifOrientation(bytes.NewReader(b)) {
		m = fn(m)
	}
	return m, nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// preprocess applies the shared crop window and resize to every frame.
func preprocess(imgs []engiffen.Image, opts *Options) ([]engiffen.Image, error) {
	if opts.Crop.X > 0 && opts.Crop.Y > 0 {
		window, err := cropWindow(imgs[0], opts.Crop)
		if err != nil {
			return nil, err
		}
		if opts.Verbose {
			log.Printf("framesource: cropping all frames to %v", window)
		}
		for i := range imgs {
			imgs[i].Image = imaging.Crop(imgs[i], window)
		}
	}
	if opts.Width > 0 {
		for i := range imgs {
			imgs[i].Image = imaging.Resize(imgs[i], opts.Width, 0, imaging.Lanczos)
		}
	}
	return imgs, nil
}
