// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color with channels normalized to [0,1] and rounded to
// three decimal places. Alpha is always 1.0 for palette colors.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Fallback colors substituted when a region palette has fewer than four
// entries: mid-gray, dark-gray, white, near-black.
const (
	fallbackPrimary   = "#808080"
	fallbackSecondary = "#404040"
	fallbackAccent    = "#ffffff"
	fallbackDark      = "#1a1a1a"
)

// PaletteColors holds the four positional palette slots resolved for a
// region. Index 0=primary, 1=secondary, 2=accent, 3=dark.
type PaletteColors struct {
	Primary   Color
	Secondary Color
	Accent    Color
	Dark      Color
}

// ParseHexColor parses a 6-digit hex color (with or without a leading '#')
// into normalized channels, each rounded to 3 decimals, alpha fixed at 1.0.
// Wrong length or non-hex digits fail with a geometry error rather than
// silently producing an incorrect color.
func ParseHexColor(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return Color{}, geometryErrorf("hex color %q: want 6 hex digits, got %d", hex, len(s))
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, geometryErrorf("hex color %q: invalid digits %q", hex, s[i*2:i*2+2])
		}
		ch[i] = round3(float64(v) / 255.0)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: 1.0}, nil
}

// round3 rounds v to three decimal places.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ResolvePalette resolves the four positional colors from a region's ordered
// palette, substituting fixed fallbacks for missing indices. A malformed
// palette entry fails with a geometry error.
func ResolvePalette(region *Region) (PaletteColors, error) {
	fallbacks := [4]string{fallbackPrimary, fallbackSecondary, fallbackAccent, fallbackDark}
	var resolved [4]Color
	for i := range fallbacks {
		hex := fallbacks[i]
		if i < len(region.Palette) {
			hex = region.Palette[i]
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return PaletteColors{}, err
		}
		resolved[i] = c
	}
	return PaletteColors{
		Primary:   resolved[0],
		Secondary: resolved[1],
		Accent:    resolved[2],
		Dark:      resolved[3],
	}, nil
}
