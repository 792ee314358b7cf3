// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"math"
	"strings"
)

// Progress is the aggregate view over all assets in the manifest.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
	Percent    int `json:"percent"`
}

// Aggregate computes counts over every asset in one full scan. Percent is
// round(completed/total*100), defined as 0 for an empty manifest.
func Aggregate(m *Manifest) Progress {
	var p Progress
	for _, regionID := range m.Regions.Keys() {
		for _, a := range m.Regions.Get(regionID).Assets {
			p.Total++
			switch a.Status {
			case StatusCompleted:
				p.Completed++
			case StatusInProgress:
				p.InProgress++
			case StatusFailed:
				p.Failed++
			}
		}
	}
	p.Pending = p.Total - p.Completed - p.InProgress - p.Failed
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

// QueryProgress loads the manifest and returns the aggregate view. This and
// SelectAndRun are the entire surface the external scheduler needs.
func (p *Pipeline) QueryProgress() (Progress, error) {
	m, err := p.store.Load()
	if err != nil {
		return Progress{}, err
	}
	return Aggregate(m), nil
}

// StatusReport returns the aggregate view plus a human-readable descriptor
// of the next eligible asset, or a none-sentinel when the queue is empty.
func (p *Pipeline) StatusReport() (string, error) {
	m, err := p.store.Load()
	if err != nil {
		return "", err
	}
	prog := Aggregate(m)

	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d completed (%d%%), %d in progress, %d failed, %d pending\n",
		prog.Completed, prog.Total, prog.Percent, prog.InProgress, prog.Failed, prog.Pending)
	if pa, ok := NextPendingAsset(m); ok {
		fmt.Fprintf(&b, "next: %s (%s)\n", pa.Asset.Name, pa.RegionID)
	} else {
		b.WriteString("next: none\n")
	}
	return b.String(), nil
}
