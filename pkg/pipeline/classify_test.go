// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import "testing"

// --- ClassifyAsset ---

func TestClassifyAsset_Keywords(t *testing.T) {
	t.Parallel()
	cases := []struct {
		id   string
		want Category
	}{
		{"oak_01", CategoryTree},
		{"mist_tree_dense", CategoryTree},
		{"granite_rock_03", CategoryRockFormation},
		{"standing_stone", CategoryRockFormation},
		{"broken_pillar", CategoryRockFormation},
		{"frost_spire", CategoryRockFormation},
		{"loot_chest_small", CategoryContainer},
		{"supply_crate", CategoryContainer},
		{"ale_barrel", CategoryContainer},
		{"forest_altar", CategoryShrine},
		{"wayshrine_01", CategoryShrine},
		{"glow_mushroom_02", CategoryFungus},
		{"cave_fungi_patch", CategoryFungus},
		{"iron_gate", CategoryArchway},
		{"ruined_arch", CategoryArchway},
		{"cellar_door", CategoryArchway},
		{"bench_01", CategoryPlaceholder},
		{"", CategoryPlaceholder},
	}
	for _, tc := range cases {
		if got := ClassifyAsset(tc.id); got != tc.want {
			t.Errorf("ClassifyAsset(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestClassifyAsset_FirstMatchWins(t *testing.T) {
	t.Parallel()
	// Ids matching multiple rules resolve to the earliest rule. The rule
	// order is the classifier's only tie-break mechanism and must not change.
	cases := []struct {
		id   string
		want Category
	}{
		{"stone_tree", CategoryTree},          // tree (rule 1) beats stone (rule 2)
		{"tree_stone", CategoryTree},          // position in the id is irrelevant
		{"rock_chest", CategoryRockFormation}, // rock (rule 2) beats chest (rule 3)
		{"shrine_gate", CategoryShrine},       // shrine (rule 4) beats gate (rule 6)
		{"mushroom_arch", CategoryFungus},     // mushroom (rule 5) beats arch (rule 6)
	}
	for _, tc := range cases {
		if got := ClassifyAsset(tc.id); got != tc.want {
			t.Errorf("ClassifyAsset(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestClassifyAsset_CaseSensitive(t *testing.T) {
	t.Parallel()
	// Matching is case-sensitive substring containment.
	if got := ClassifyAsset("Oak_01"); got != CategoryPlaceholder {
		t.Errorf("ClassifyAsset(\"Oak_01\") = %q, want placeholder (no lowercase match)", got)
	}
}

// --- shrineEmissive ---

func TestShrineEmissive_Tint(t *testing.T) {
	t.Parallel()
	cases := []struct {
		id   string
		want Color
	}{
		{"void_altar", shrineTintViolet},
		{"aether_shrine", shrineTintViolet},
		{"wayshrine_03", shrineTintOrange},
		{"forest_altar", shrineTintOrange},
	}
	for _, tc := range cases {
		if got := shrineEmissive(tc.id); got != tc.want {
			t.Errorf("shrineEmissive(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
