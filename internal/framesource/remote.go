// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package framesource

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fcjr/aia-transport-go"
	"github.com/gregjones/httpcache"
)

// maxRemoteFrame caps the size of a single fetched frame.
const maxRemoteFrame = 64 << 20 // 64 MB

// NewClient returns an http.Client for fetching remote frames.  Responses
// are cached in cache, so re-running against the same URLs reuses the
// earlier downloads, and the AIA transport fills in incomplete certificate
// chains from misconfigured origins.
func NewClient(cache httpcache.Cache, timeout time.Duration) (*http.Client, error) {
	transport, err := aia.NewTransport()
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: &httpcache.Transport{
			Transport:           transport,
			Cache:               cache,
			MarkCachedResponses: true,
		},
		Timeout: timeout,
	}, nil
}

func fetch(client *http.Client, u string) ([]byte, error) {
	resp, err := client.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote returned %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxRemoteFrame))
}
