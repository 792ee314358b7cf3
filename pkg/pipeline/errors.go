// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three fault classes the pipeline distinguishes.
// Wrap with manifestErrorf/toolErrorf/geometryErrorf and test with errors.Is.
var (
	// ErrManifest marks load/parse failures of the task manifest. These are
	// fatal to an invocation and escape SelectAndRun.
	ErrManifest = errors.New("manifest error")

	// ErrTool marks remote-call failures or timeouts during the authoring
	// session. These are recovered locally: the asset is marked failed.
	ErrTool = errors.New("tool error")

	// ErrGeometry marks invalid input to color or recipe resolution.
	// Surfaced the same way as ErrTool: the asset is marked failed.
	ErrGeometry = errors.New("geometry error")
)

func manifestErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrManifest, fmt.Sprintf(format, args...))
}

func toolErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTool, fmt.Sprintf(format, args...))
}

func geometryErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeometry, fmt.Sprintf(format, args...))
}
