// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

// engiffen converts a sequence of images into an animated gif.  Frames come
// from file arguments, a filename range (-r), newline-separated paths on
// standard input, remote URLs, or a video file (-video).
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/die-net/lrucache"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"

	"github.com/TooManyBees/engiffen"
	"github.com/TooManyBees/engiffen/internal/framesource"
	"github.com/TooManyBees/engiffen/internal/s3sink"
	"github.com/TooManyBees/engiffen/third_party/envy"
)

var (
	outFile      = flag.String("o", "out.gif", "write the gif to this file; \"-\" writes to standard output and s3://region/bucket/key uploads to S3")
	fps          = flag.Int("f", 30, "frames per second")
	quantizer    = flag.String("q", "naive", "palette strategy: \"naive\" (most frequent colors) or \"neuquant\" (trained perceptual palette)")
	sampleStride = flag.Int("s", 1, "neuquant training stride: use only pixels on every Nth column of every Nth row")
	rangeMode    = flag.Bool("r", false, "arguments specify the start and end images of a range")
	videoFile    = flag.String("video", "", "extract frames from this video file instead of image arguments (requires ffmpeg)")
	width        = flag.Int("width", 0, "resize frames to this width, keeping aspect ratio")
	crop         = flag.String("crop", "", "smart-crop all frames toward a WxH window chosen on the first frame")
	cacheSpec    = flag.String("cache", "memory:100", "cache for remote frames: memory:SIZEMB or disk:DIR")
	timeout      = flag.Duration("timeout", 30*time.Second, "time limit for remote frame fetches")
	verbose      = flag.Bool("verbose", false, "print verbose logging messages")
)

func main() {
	envy.Parse("ENGIFFEN")
	flag.Parse()
	engiffen.Verbose = *verbose

	q, err := pickQuantizer()
	if err != nil {
		log.Fatal(err)
	}

	opts, err := sourceOptions()
	if err != nil {
		log.Fatal(err)
	}

	imgs, err := gatherFrames(opts)
	if err != nil {
		log.Fatal(err)
	}

	g, err := engiffen.Engiffen(imgs, *fps, q)
	if err != nil {
		log.Fatal(err)
	}

	if err := writeOutput(g, *outFile); err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.Printf("engiffened %d frames to %s", len(g.Images), *outFile)
	}
}

func pickQuantizer() (engiffen.Quantizer, error) {
	switch *quantizer {
	case "naive":
		return engiffen.FrequencyQuantizer{}, nil
	case "neuquant":
		return engiffen.PerceptualQuantizer{SampleStride: *sampleStride}, nil
	}
	return nil, fmt.Errorf("unknown quantizer %q (want naive or neuquant)", *quantizer)
}

func sourceOptions() (*framesource.Options, error) {
	opts := &framesource.Options{Width: *width, Verbose: *verbose}

	if *crop != "" {
		w, h, ok := parseSize(*crop)
		if !ok {
			return nil, fmt.Errorf("invalid crop %q (want WxH)", *crop)
		}
		opts.Crop = image.Point{X: w, Y: h}
	}

	cache, err := parseCache(*cacheSpec)
	if err != nil {
		return nil, err
	}
	opts.Client, err = framesource.NewClient(cache, *timeout)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

func parseSize(s string) (w, h int, ok bool) {
	ws, hs, found := strings.Cut(s, "x")
	if !found {
		return 0, 0, false
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err = strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func parseCache(spec string) (httpcache.Cache, error) {
	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "memory":
		size := int64(100)
		if arg != "" {
			n, err := strconv.ParseInt(arg, 10, 64)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid memory cache size %q", arg)
			}
			size = n
		}
		return lrucache.New(size<<20, 0), nil
	case "disk":
		if arg == "" {
			return nil, errors.New("disk cache needs a directory: disk:DIR")
		}
		d := diskv.New(diskv.Options{
			BasePath:     arg,
			CacheSizeMax: 100 << 20,
		})
		return diskcache.NewWithDiskv(d), nil
	}
	return nil, fmt.Errorf("unknown cache %q (want memory:SIZEMB or disk:DIR)", spec)
}

func gatherFrames(opts *framesource.Options) ([]engiffen.Image, error) {
	if *videoFile != "" {
		return framesource.ExtractVideo(context.Background(), *videoFile, *fps, opts)
	}

	paths := flag.Args()
	switch {
	case *rangeMode:
		if len(paths) == 0 {
			return nil, errors.New("missing start and end filenames")
		}
		if len(paths) == 1 {
			return nil, errors.New("missing end filename")
		}
		expanded, err := framesource.ExpandRange(paths[0], paths[1])
		if err != nil {
			return nil, err
		}
		paths = expanded
	case len(paths) == 0:
		paths = stdinPaths()
	}
	return framesource.Load(paths, opts)
}

func stdinPaths() []string {
	var paths []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

func writeOutput(g *engiffen.Gif, out string) error {
	switch {
	case out == "-":
		return g.Write(os.Stdout)
	case s3sink.Match(out):
		var buf bytes.Buffer
		if err := g.Write(&buf); err != nil {
			return err
		}
		return s3sink.Upload(out, buf.Bytes())
	}

	// Write to a temp file in the destination directory and rename, so a
	// failed run never leaves a truncated gif at the output path.
	tmp, err := os.CreateTemp(filepath.Dir(out), ".engiffen-*")
	if err != nil {
		return err
	}
	if err := g.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), out)
}
