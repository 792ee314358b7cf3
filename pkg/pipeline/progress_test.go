// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"strings"
	"testing"
)

// --- Aggregate ---

func TestAggregate_Counts(t *testing.T) {
	t.Parallel()
	m := testManifest()
	m.Regions.Get("forest").Assets[0].Status = StatusCompleted
	m.Regions.Get("forest").Assets[1].Status = StatusFailed

	got := Aggregate(m)
	want := Progress{Total: 3, Completed: 1, InProgress: 0, Failed: 1, Pending: 1, Percent: 33}
	if got != want {
		t.Errorf("Aggregate = %+v, want %+v", got, want)
	}
}

func TestAggregate_EmptyManifest(t *testing.T) {
	t.Parallel()
	got := Aggregate(&Manifest{})
	if got.Total != 0 || got.Percent != 0 {
		t.Errorf("Aggregate = %+v, want zero total and zero percent", got)
	}
}

func TestAggregate_PercentRounding(t *testing.T) {
	t.Parallel()
	m := &Manifest{}
	m.Regions.Add("r", &Region{Assets: []*Asset{
		{ID: "a", Status: StatusCompleted},
		{ID: "b", Status: StatusCompleted},
		{ID: "c", Status: StatusPending},
	}})
	// 2/3 = 66.67 rounds to 67.
	if got := Aggregate(m); got.Percent != 67 {
		t.Errorf("Percent = %d, want 67", got.Percent)
	}
}

// --- StatusReport ---

func TestStatusReport_NextAsset(t *testing.T) {
	t.Parallel()
	store := writeTestManifest(t, testManifest())
	p := New(Config{Pipeline: PipelineConfig{ManifestPath: store.Path()}}, nil)

	report, err := p.StatusReport()
	if err != nil {
		t.Fatalf("StatusReport: %v", err)
	}
	if !strings.Contains(report, "next: Old Oak (forest)") {
		t.Errorf("report missing next-asset descriptor:\n%s", report)
	}
	if !strings.Contains(report, "0/3 completed (0%)") {
		t.Errorf("report missing counts:\n%s", report)
	}
}

func TestStatusReport_EmptyQueue(t *testing.T) {
	t.Parallel()
	m := testManifest()
	for _, regionID := range m.Regions.Keys() {
		for _, a := range m.Regions.Get(regionID).Assets {
			a.Status = StatusCompleted
		}
	}
	store := writeTestManifest(t, m)
	p := New(Config{Pipeline: PipelineConfig{ManifestPath: store.Path()}}, nil)

	report, err := p.StatusReport()
	if err != nil {
		t.Fatalf("StatusReport: %v", err)
	}
	if !strings.Contains(report, "next: none") {
		t.Errorf("report missing none-sentinel:\n%s", report)
	}
	if !strings.Contains(report, "3/3 completed (100%)") {
		t.Errorf("report missing counts:\n%s", report)
	}
}
