// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package framesource

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/die-net/lrucache"
)

func TestLoad_RemoteCached(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "max-age=3600")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	client, err := NewClient(lrucache.New(10<<20, 0), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}

	url := srv.URL + "/frame.png"
	imgs, err := Load([]string{url, url}, &Options{Client: client})
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 2 {
		t.Fatalf("loaded %d frames, want 2", len(imgs))
	}
	if hits != 1 {
		t.Errorf("origin served %d requests, want 1 (second from cache)", hits)
	}
}

func TestLoad_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := NewClient(lrucache.New(10<<20, 0), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Load([]string{srv.URL + "/missing.png"}, &Options{Client: client}); err == nil {
		t.Error("Load of a 404 frame succeeded, want error")
	}
}
