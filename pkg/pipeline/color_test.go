// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"testing"
)

// --- ParseHexColor ---

func TestParseHexColor_Channels(t *testing.T) {
	t.Parallel()
	cases := []struct {
		hex  string
		want Color
	}{
		{"#FFFFFF", Color{1.000, 1.000, 1.000, 1.0}},
		{"#000000", Color{0.000, 0.000, 0.000, 1.0}},
		{"#ff0000", Color{1.000, 0.000, 0.000, 1.0}},
		{"808080", Color{0.502, 0.502, 0.502, 1.0}},
		{"#1a1a1a", Color{0.102, 0.102, 0.102, 1.0}},
		{"#4a7c59", Color{0.290, 0.486, 0.349, 1.0}},
	}
	for _, tc := range cases {
		got, err := ParseHexColor(tc.hex)
		if err != nil {
			t.Fatalf("ParseHexColor(%q): unexpected error: %v", tc.hex, err)
		}
		if got != tc.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tc.hex, got, tc.want)
		}
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	t.Parallel()
	cases := []string{"", "#fff", "#fffffff", "#gggggg", "12345g", "#12 456"}
	for _, hex := range cases {
		_, err := ParseHexColor(hex)
		if err == nil {
			t.Errorf("ParseHexColor(%q): expected error, got nil", hex)
			continue
		}
		if !errors.Is(err, ErrGeometry) {
			t.Errorf("ParseHexColor(%q): error %v does not wrap ErrGeometry", hex, err)
		}
	}
}

// --- ResolvePalette ---

func TestResolvePalette_FullPalette(t *testing.T) {
	t.Parallel()
	region := &Region{Palette: []string{"#ff0000", "#00ff00", "#0000ff", "#ffffff"}}
	pal, err := ResolvePalette(region)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pal.Primary != (Color{1, 0, 0, 1}) {
		t.Errorf("Primary = %v, want red", pal.Primary)
	}
	if pal.Secondary != (Color{0, 1, 0, 1}) {
		t.Errorf("Secondary = %v, want green", pal.Secondary)
	}
	if pal.Accent != (Color{0, 0, 1, 1}) {
		t.Errorf("Accent = %v, want blue", pal.Accent)
	}
	if pal.Dark != (Color{1, 1, 1, 1}) {
		t.Errorf("Dark = %v, want white", pal.Dark)
	}
}

func TestResolvePalette_Fallbacks(t *testing.T) {
	t.Parallel()
	// One palette entry: secondary, accent, and dark fall back to the
	// fixed defaults (dark-gray, white, near-black).
	region := &Region{Palette: []string{"#ff0000"}}
	pal, err := ResolvePalette(region)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pal.Primary != (Color{1, 0, 0, 1}) {
		t.Errorf("Primary = %v, want red", pal.Primary)
	}
	if pal.Secondary != (Color{0.251, 0.251, 0.251, 1}) {
		t.Errorf("Secondary = %v, want dark-gray fallback", pal.Secondary)
	}
	if pal.Accent != (Color{1, 1, 1, 1}) {
		t.Errorf("Accent = %v, want white fallback", pal.Accent)
	}
	if pal.Dark != (Color{0.102, 0.102, 0.102, 1}) {
		t.Errorf("Dark = %v, want near-black fallback", pal.Dark)
	}
}

func TestResolvePalette_EmptyPalette(t *testing.T) {
	t.Parallel()
	pal, err := ResolvePalette(&Region{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pal.Primary != (Color{0.502, 0.502, 0.502, 1}) {
		t.Errorf("Primary = %v, want mid-gray fallback", pal.Primary)
	}
}

func TestResolvePalette_MalformedEntry(t *testing.T) {
	t.Parallel()
	_, err := ResolvePalette(&Region{Palette: []string{"not-a-color"}})
	if !errors.Is(err, ErrGeometry) {
		t.Errorf("error %v does not wrap ErrGeometry", err)
	}
}
