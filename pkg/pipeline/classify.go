// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import "strings"

// Category is the construction recipe family selected for an asset.
type Category string

const (
	CategoryTree          Category = "tree"
	CategoryRockFormation Category = "rock_formation"
	CategoryContainer     Category = "container"
	CategoryShrine        Category = "shrine"
	CategoryFungus        Category = "glowing_fungus"
	CategoryArchway       Category = "archway"
	CategoryPlaceholder   Category = "placeholder"
)

// classifyRule pairs a set of id substrings with a category. Rules are
// evaluated first-match-wins, so the position of a rule in classifyRules is
// its priority and the classifier's only tie-break mechanism.
type classifyRule struct {
	keywords []string
	category Category
}

// classifyRules is the fixed, ordered keyword table. Matching is
// case-sensitive substring containment over the asset id. New categories are
// added by inserting a rule at the right priority, not by new control flow.
var classifyRules = []classifyRule{
	{[]string{"tree", "oak", "mist_tree"}, CategoryTree},
	{[]string{"rock", "stone", "pillar", "spire"}, CategoryRockFormation},
	{[]string{"chest", "crate", "barrel"}, CategoryContainer},
	{[]string{"altar", "shrine", "wayshrine"}, CategoryShrine},
	{[]string{"mushroom", "fungi"}, CategoryFungus},
	{[]string{"gate", "arch", "door"}, CategoryArchway},
}

// ClassifyAsset maps an asset id to its construction category. An id
// matching more than one rule resolves to the earliest matching rule.
// Ids matching nothing fall through to the generic placeholder.
func ClassifyAsset(id string) Category {
	for _, rule := range classifyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(id, kw) {
				return rule.category
			}
		}
	}
	return CategoryPlaceholder
}

// Shrine emissive tints. The focus crystal glows violet for void- or
// aether-touched shrines, orange otherwise.
var (
	shrineTintVioletIDs = []string{"void", "aeth"}
	shrineTintViolet    = Color{R: 0.541, G: 0.169, B: 0.886, A: 1.0}
	shrineTintOrange    = Color{R: 1.0, G: 0.549, B: 0.102, A: 1.0}
)

// shrineEmissive returns the emissive tint for a shrine asset id.
func shrineEmissive(id string) Color {
	for _, kw := range shrineTintVioletIDs {
		if strings.Contains(id, kw) {
			return shrineTintViolet
		}
	}
	return shrineTintOrange
}
