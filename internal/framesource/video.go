// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package framesource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/TooManyBees/engiffen"
)

// ExtractVideo decodes frames from the video at path, fps frames per
// second, by piping PNG frames out of ffmpeg.  Requires the ffmpeg binary
// on PATH.
func ExtractVideo(ctx context.Context, path string, fps int, opts *Options) ([]engiffen.Image, error) {
	if opts == nil {
		opts = &Options{}
	}
	if fps <= 0 {
		fps = 1
	}

	pr, pw := io.Pipe()
	cmd := ffmpeg.Input(path).
		Output("pipe:1", ffmpeg.KwArgs{
			"format": "image2pipe",
			"vcodec": "png",
			"r":      strconv.Itoa(fps),
		}).
		WithOutput(pw).
		Silent(!opts.Verbose)
	cmd.Context = ctx

	go func() {
		pw.CloseWithError(cmd.Run())
	}()

	var imgs []engiffen.Image
	reader := bufio.NewReader(pr)
	for i := 0; ; i++ {
		m, _, err := image.Decode(reader)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("framesource: decoding frame %d of %s: %w", i, path, err)
		}
		imgs = append(imgs, engiffen.Image{Image: m, Path: fmt.Sprintf("%s#%d", path, i)})
	}
	if len(imgs) == 0 {
		return nil, fmt.Errorf("framesource: no frames extracted from %s", path)
	}
	return preprocess(imgs, opts)
}
