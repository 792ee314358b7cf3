// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

// PendingAsset is a selected task together with its owning region.
type PendingAsset struct {
	Asset    *Asset
	Region   *Region
	RegionID string
}

// NextPendingAsset returns the first asset with status pending, scanning
// regions in document order and assets within a region in stored order.
// This is a pure FIFO policy: no priority, no randomness, one task per call.
// The second return value is false when nothing is pending.
func NextPendingAsset(m *Manifest) (PendingAsset, bool) {
	for _, regionID := range m.Regions.Keys() {
		region := m.Regions.Get(regionID)
		for _, a := range region.Assets {
			if a.Status == StatusPending {
				return PendingAsset{Asset: a, Region: region, RegionID: regionID}, true
			}
		}
	}
	return PendingAsset{}, false
}
