// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides the mage build targets for the meshsmith repository.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/magefile/mage/mg"
)

// Test groups the testing targets.
type Test mg.Namespace

const binaryPath = "bin/meshsmith"

// logf prints a timestamped log line to stderr.
func logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "[%s] %s\n", time.Now().Format(time.RFC3339), msg)
}

// run executes a command from the repo root with output attached.
func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Build compiles the meshsmith binary.
func Build() error {
	logf("build: compiling %s", binaryPath)
	return run("go", "build", "-o", binaryPath, "./cmd/meshsmith")
}

// Lint runs golangci-lint on the project.
func Lint() error {
	logf("lint: running golangci-lint")
	return run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	logf("clean: removing bin/")
	return run("rm", "-rf", "bin")
}

// Unit runs the pipeline package tests.
func (Test) Unit() error {
	logf("test:unit: running package tests")
	return run("go", "test", "./pkg/...")
}

// E2e runs the end-to-end tests.
func (Test) E2e() error {
	logf("test:e2e: running end-to-end tests")
	return run("go", "test", "./tests/e2e/...")
}

// All runs every test in the repository.
func (Test) All() error {
	logf("test:all: running all tests")
	return run("go", "test", "./...")
}
