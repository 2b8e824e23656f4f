// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{"320x240", 320, 240, true},
		{"1x1", 1, 1, true},
		{"320", 0, 0, false},
		{"x240", 0, 0, false},
		{"320x", 0, 0, false},
		{"-320x240", 0, 0, false},
		{"0x240", 0, 0, false},
	}
	for _, tt := range tests {
		w, h, ok := parseSize(tt.in)
		if w != tt.w || h != tt.h || ok != tt.ok {
			t.Errorf("parseSize(%q) = %d, %d, %v; want %d, %d, %v", tt.in, w, h, ok, tt.w, tt.h, tt.ok)
		}
	}
}

func TestParseCache(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"memory:100", true},
		{"memory:", true},
		{"disk:" + t.TempDir(), true},
		{"memory:bogus", false},
		{"disk:", false},
		{"redis:localhost", false},
		{"", false},
	}
	for _, tt := range tests {
		c, err := parseCache(tt.in)
		if tt.valid && (err != nil || c == nil) {
			t.Errorf("parseCache(%q) = %v, %v; want a cache", tt.in, c, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("parseCache(%q) succeeded, want error", tt.in)
		}
	}
}
