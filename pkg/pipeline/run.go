// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// The three fixed tool methods issued per task, in order. Export only runs
// after generation fully succeeds; partial export is never attempted.
const (
	methodResetScene  = "reset_scene"
	methodExecuteCode = "execute_code"
	methodExportScene = "export_scene"
)

// Game-engine axis convention passed to the export call.
const (
	exportAxisForward = "-Z"
	exportAxisUp      = "Y"
	exportGlobalScale = 1.0
)

// RunResult is the outcome of one SelectAndRun invocation. A per-task fault
// is reported here, never raised: Success false with the fault's message.
type RunResult struct {
	Success    bool   `json:"success"`
	AssetID    string `json:"assetId,omitempty"`
	OutputPath string `json:"outputPath,omitempty"`
	Error      string `json:"error,omitempty"`
}

// timestamp returns the current UTC time in RFC3339, the format used for
// all lifecycle fields in the manifest.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// exportPath derives the deterministic artifact path for an asset:
// <outputRoot>/<regionId>/<assetId>.<ext>, forward slashes regardless of
// host path conventions.
func (p *Pipeline) exportPath(regionID, assetID string) string {
	root := filepath.ToSlash(p.cfg.Pipeline.OutputRoot)
	return fmt.Sprintf("%s/%s/%s.%s", root, regionID, assetID, p.cfg.Pipeline.ExportFormat)
}

// SelectAndRun picks the next pending asset and drives one full authoring
// session: in_progress transition, scene reset, geometry generation, export,
// final completed/failed transition. Exactly one asset per invocation.
//
// Manifest load/save failures escape as errors wrapping ErrManifest. Every
// per-task fault (tool or geometry) is converted into a failed status plus a
// non-exceptional RunResult.
func (p *Pipeline) SelectAndRun(ctx context.Context) (*RunResult, error) {
	m, err := p.store.Load()
	if err != nil {
		return nil, err
	}

	pa, ok := NextPendingAsset(m)
	if !ok {
		logf("selectAndRun: no pending assets")
		return &RunResult{Success: false, Error: "no_pending_assets"}, nil
	}

	runID := uuid.NewString()[:8]
	setAsset(pa.Asset.ID)
	defer clearAsset()

	if p.cfg.Pipeline.HistoryDir != "" {
		logPath := filepath.Join(p.cfg.Pipeline.HistoryDir, runID, "run.log")
		if err := openLogSink(logPath); err != nil {
			logf("selectAndRun: log sink warning: %v", err)
		} else {
			defer closeLogSink()
		}
	}

	logf("selectAndRun: run=%s region=%s asset=%q type=%s", runID, pa.RegionID, pa.Asset.Name, pa.Asset.Type)

	started := timestamp()
	if _, err := p.store.UpdateAssetStatus(pa.Asset.ID, StatusInProgress, AssetUpdate{StartedAt: &started}); err != nil {
		return nil, err
	}

	brief := BuildAuthoringBrief(pa.Asset, pa.Region, pa.RegionID, m)
	plan, err := BuildRecipe(pa.Asset, pa.Region, pa.RegionID, m)
	if err != nil {
		return p.failAsset(pa.Asset.ID, err)
	}
	script := RenderScript(plan)
	logf("selectAndRun: category=%s steps=%d scriptLen=%d", plan.Category, len(plan.Steps), len(script))
	p.saveRunArtifacts(runID, brief, script)

	setStep("reset")
	_, err = p.bridge.Invoke(ctx, methodResetScene,
		map[string]any{"purge_orphans": true}, p.cfg.ResetTimeout())
	clearStep()
	if err != nil {
		return p.failAsset(pa.Asset.ID, err)
	}

	setStep("generate")
	_, err = p.bridge.Invoke(ctx, methodExecuteCode,
		map[string]any{"code": script}, p.cfg.GenerateTimeout())
	clearStep()
	if err != nil {
		return p.failAsset(pa.Asset.ID, err)
	}

	outPath := p.exportPath(pa.RegionID, pa.Asset.ID)
	setStep("export")
	_, err = p.bridge.Invoke(ctx, methodExportScene, map[string]any{
		"path":         outPath,
		"format":       p.cfg.Pipeline.ExportFormat,
		"axis_forward": exportAxisForward,
		"axis_up":      exportAxisUp,
		"global_scale": exportGlobalScale,
		"selected":     true,
	}, p.cfg.ExportTimeout())
	clearStep()
	if err != nil {
		return p.failAsset(pa.Asset.ID, err)
	}

	completed := timestamp()
	if _, err := p.store.UpdateAssetStatus(pa.Asset.ID, StatusCompleted, AssetUpdate{
		CompletedAt: &completed,
		OutputPath:  &outPath,
	}); err != nil {
		return nil, err
	}
	logf("selectAndRun: completed, output=%s", outPath)
	return &RunResult{Success: true, AssetID: pa.Asset.ID, OutputPath: outPath}, nil
}

// failAsset records a per-task fault: failed status, failure timestamp, and
// the fault's message verbatim. The fault itself is not re-raised; only a
// manifest write failure escapes.
func (p *Pipeline) failAsset(id string, cause error) (*RunResult, error) {
	msg := cause.Error()
	logf("selectAndRun: failed: %s", msg)
	failed := timestamp()
	if _, err := p.store.UpdateAssetStatus(id, StatusFailed, AssetUpdate{
		FailedAt: &failed,
		Error:    &msg,
	}); err != nil {
		return nil, err
	}
	return &RunResult{Success: false, AssetID: id, Error: msg}, nil
}

// saveRunArtifacts writes the brief and rendered script under the history
// directory for debugging. Best-effort: failures are logged, not returned.
func (p *Pipeline) saveRunArtifacts(runID, brief, script string) {
	if p.cfg.Pipeline.HistoryDir == "" {
		return
	}
	dir := filepath.Join(p.cfg.Pipeline.HistoryDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logf("saveRunArtifacts: mkdir warning: %v", err)
		return
	}
	for name, content := range map[string]string{
		"brief.txt": brief,
		"script.py": script,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			logf("saveRunArtifacts: write %s warning: %v", name, err)
		}
	}
}

// ReclaimStale resets in_progress assets whose start timestamp is older
// than the given age back to pending, returning how many were reclaimed.
// An unparseable start timestamp also counts as stale. This never runs
// automatically; an operator invokes it explicitly after an interrupted run
// left assets stuck in_progress.
func (p *Pipeline) ReclaimStale(olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	count := 0
	err := p.store.Mutate(func(m *Manifest) bool {
		for _, regionID := range m.Regions.Keys() {
			for _, a := range m.Regions.Get(regionID).Assets {
				if a.Status != StatusInProgress {
					continue
				}
				startedAt, perr := time.Parse(time.RFC3339, a.StartedAt)
				if perr == nil && !startedAt.Before(cutoff) {
					continue
				}
				logf("reclaimStale: resetting %s (startedAt=%q)", a.ID, a.StartedAt)
				a.Status = StatusPending
				a.StartedAt = ""
				count++
			}
		}
		return count > 0
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
