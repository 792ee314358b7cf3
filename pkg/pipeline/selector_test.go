// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import "testing"

// --- NextPendingAsset ---

func TestNextPendingAsset_FIFOAcrossRegions(t *testing.T) {
	t.Parallel()
	m := testManifest()

	pa, ok := NextPendingAsset(m)
	if !ok {
		t.Fatal("ok = false, want a pending asset")
	}
	if pa.Asset.ID != "oak_01" || pa.RegionID != "forest" {
		t.Errorf("got %s in %s, want oak_01 in forest", pa.Asset.ID, pa.RegionID)
	}

	// Completing the first asset moves the pick to the next in the same
	// region, then on to the next region.
	m.Regions.Get("forest").Assets[0].Status = StatusCompleted
	pa, _ = NextPendingAsset(m)
	if pa.Asset.ID != "loot_chest_small" {
		t.Errorf("got %s, want loot_chest_small", pa.Asset.ID)
	}

	m.Regions.Get("forest").Assets[1].Status = StatusFailed
	pa, _ = NextPendingAsset(m)
	if pa.Asset.ID != "glow_mushroom_02" || pa.RegionID != "caves" {
		t.Errorf("got %s in %s, want glow_mushroom_02 in caves", pa.Asset.ID, pa.RegionID)
	}
}

func TestNextPendingAsset_SkipsNonPending(t *testing.T) {
	t.Parallel()
	m := testManifest()
	// Failed and in_progress assets are never eligible; only pending is.
	m.Regions.Get("forest").Assets[0].Status = StatusFailed
	m.Regions.Get("forest").Assets[1].Status = StatusInProgress

	pa, ok := NextPendingAsset(m)
	if !ok {
		t.Fatal("ok = false, want glow_mushroom_02")
	}
	if pa.Asset.ID != "glow_mushroom_02" {
		t.Errorf("got %s, want glow_mushroom_02", pa.Asset.ID)
	}
}

func TestNextPendingAsset_NoneSentinel(t *testing.T) {
	t.Parallel()
	m := testManifest()
	for _, regionID := range m.Regions.Keys() {
		for _, a := range m.Regions.Get(regionID).Assets {
			a.Status = StatusCompleted
		}
	}
	if _, ok := NextPendingAsset(m); ok {
		t.Error("ok = true on a fully completed manifest, want false")
	}

	if _, ok := NextPendingAsset(&Manifest{}); ok {
		t.Error("ok = true on an empty manifest, want false")
	}
}
