// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"strings"
)

// briefInstructions are the fixed operational instructions appended to every
// authoring brief. Advisory only; the script renderer is what actually
// drives the tool.
var briefInstructions = []string{
	"Reset the scene before building anything.",
	"Apply the region palette to all materials.",
	"Respect the poly budget for this asset type.",
	"Place the finished asset at the world origin.",
	"Name the root object after the asset id.",
	"Apply all transforms before export.",
}

// BuildAuthoringBrief produces the advisory natural-language brief for an
// asset: theme, palette, poly budget, and the fixed operational
// instructions. Informational context only; never executed.
func BuildAuthoringBrief(asset *Asset, region *Region, regionID string, m *Manifest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Asset %s (%s): %s\n", asset.ID, asset.Type, asset.Name)
	if asset.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", asset.Description)
	}
	fmt.Fprintf(&b, "Region %s, theme: %s\n", regionID, region.Theme)
	if len(region.Palette) > 0 {
		fmt.Fprintf(&b, "Palette: %s\n", strings.Join(region.Palette, ", "))
	}
	if m != nil && m.ArtDirection != nil {
		if m.ArtDirection.Style != "" {
			fmt.Fprintf(&b, "Art style: %s\n", m.ArtDirection.Style)
		}
		if budget, ok := m.ArtDirection.PolyBudget[string(asset.Type)]; ok {
			fmt.Fprintf(&b, "Poly budget (%s): %s triangles\n", asset.Type, budget)
		}
	}
	b.WriteString("Instructions:\n")
	for _, inst := range briefInstructions {
		fmt.Fprintf(&b, "- %s\n", inst)
	}
	return b.String()
}
