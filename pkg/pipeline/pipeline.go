// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Pipeline provides the asset generation operations. Create one with New()
// and call SelectAndRun from the external scheduler. Single-worker model:
// the caller must not invoke SelectAndRun concurrently with itself.
type Pipeline struct {
	cfg    Config
	store  *Store
	bridge ToolBridge
}

// New creates a Pipeline with the given configuration and tool bridge.
// It applies defaults to any zero-value Config fields.
func New(cfg Config, bridge ToolBridge) *Pipeline {
	cfg.applyDefaults()
	return &Pipeline{
		cfg:    cfg,
		store:  NewStore(cfg.Pipeline.ManifestPath),
		bridge: bridge,
	}
}

// NewFromFile reads configuration from a YAML file at the given path and
// returns a configured Pipeline.
func NewFromFile(path string, bridge ToolBridge) (*Pipeline, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return New(cfg, bridge), nil
}

// Config returns a copy of the Pipeline's configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Store returns the manifest store.
func (p *Pipeline) Store() *Store { return p.store }

// tagMu protects the currentAsset, currentStep, and stepStart variables
// from concurrent access. Writers use Lock, logf uses RLock.
var tagMu sync.RWMutex

// currentAsset holds the asset id being processed. When set, logf includes
// it right after the timestamp so every log line within a run is tagged.
var currentAsset string

func setAsset(id string) {
	tagMu.Lock()
	currentAsset = id
	tagMu.Unlock()
}

func clearAsset() {
	tagMu.Lock()
	currentAsset = ""
	tagMu.Unlock()
}

// currentStep holds the active pipeline step (e.g. "reset", "generate",
// "export"). When set, logf includes it and the elapsed time since the
// step started.
var currentStep string
var stepStart time.Time

func setStep(name string) {
	tagMu.Lock()
	currentStep = name
	stepStart = time.Now()
	tagMu.Unlock()
}

func clearStep() {
	tagMu.Lock()
	currentStep = ""
	stepStart = time.Time{}
	tagMu.Unlock()
}

// logSink is an optional secondary destination for logf output. When
// non-nil, every logf line is written to both stderr and logSink.
var (
	logSink   io.WriteCloser
	logSinkMu sync.Mutex
)

// openLogSink opens a file at path and sets it as the logf tee destination.
func openLogSink(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("openLogSink: mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("openLogSink: %w", err)
	}
	logSinkMu.Lock()
	defer logSinkMu.Unlock()
	if logSink != nil {
		logSink.Close()
	}
	logSink = f
	return nil
}

// closeLogSink closes the current log sink and stops tee-ing logf output.
func closeLogSink() {
	logSinkMu.Lock()
	defer logSinkMu.Unlock()
	if logSink != nil {
		logSink.Close()
		logSink = nil
	}
}

// logf prints a timestamped log line to stderr. When currentAsset is set,
// the asset id appears right after the timestamp. When currentStep is set,
// the step name and elapsed time since the step started are included.
func logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().Format(time.RFC3339)

	tagMu.RLock()
	asset := currentAsset
	step := currentStep
	start := stepStart
	tagMu.RUnlock()

	var prefix string
	if asset != "" && step != "" {
		elapsed := time.Since(start).Round(time.Second)
		prefix = fmt.Sprintf("[%s] [%s] [%s +%s]", ts, asset, step, elapsed)
	} else if asset != "" {
		prefix = fmt.Sprintf("[%s] [%s]", ts, asset)
	} else if step != "" {
		elapsed := time.Since(start).Round(time.Second)
		prefix = fmt.Sprintf("[%s] [%s +%s]", ts, step, elapsed)
	} else {
		prefix = fmt.Sprintf("[%s]", ts)
	}
	line := fmt.Sprintf("%s %s\n", prefix, msg)
	fmt.Fprint(os.Stderr, line)
	logSinkMu.Lock()
	if logSink != nil {
		logSink.Write([]byte(line))
	}
	logSinkMu.Unlock()
}
