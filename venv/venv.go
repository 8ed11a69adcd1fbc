// Package venv builds and syncs the project's isolated Python environment.
// The venv itself is created once and never recreated; the dependency set
// inside it is re-synced from the manifest on every run. Environment
// identity is cheap to keep, dependency state must track the manifest.
package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/projecteru2/core/log"

	"github.com/difli/wxo-adk-on-colima/host"
)

// Builder manages one virtualenv directory.
type Builder struct {
	runner   host.Runner
	dir      string // venv directory, e.g. "venv"
	python   string // interpreter used to create the venv, e.g. "python3.11"
	manifest string // flat requirements file, one package per line
}

// New creates a Builder. The venv is bound to the given interpreter at
// creation time; an existing venv keeps whatever interpreter it was
// created with.
func New(runner host.Runner, dir, python, manifest string) *Builder {
	return &Builder{runner: runner, dir: dir, python: python, manifest: manifest}
}

// Exists reports whether the venv directory already holds an environment.
// pyvenv.cfg is written by `python -m venv` and is the cheapest reliable
// marker.
func (b *Builder) Exists() bool {
	_, err := os.Stat(filepath.Join(b.dir, "pyvenv.cfg"))
	return err == nil
}

// Ensure creates the venv if absent. An existing venv is left untouched —
// never wiped, never recreated.
func (b *Builder) Ensure(ctx context.Context) error {
	logger := log.WithFunc("venv.Ensure")
	if b.Exists() {
		logger.Debugf(ctx, "venv %s already exists", b.dir)
		return nil
	}
	logger.Infof(ctx, "creating venv %s with %s", b.dir, b.python)
	if err := b.runner.Run(ctx, b.python, "-m", "venv", b.dir); err != nil {
		return fmt.Errorf("create venv %s: %w", b.dir, err)
	}
	return nil
}

// Sync upgrades pip and installs the manifest into the venv. Both operations
// run on every invocation regardless of prior state; pip itself converges the
// installed set to the manifest.
func (b *Builder) Sync(ctx context.Context) error {
	if _, err := os.Stat(b.manifest); err != nil {
		return fmt.Errorf("dependency manifest %s: %w", b.manifest, err)
	}
	pip := filepath.Join(b.dir, "bin", "pip")
	logger := log.WithFunc("venv.Sync")
	logger.Infof(ctx, "upgrading pip in %s", b.dir)
	if err := b.runner.Run(ctx, pip, "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("upgrade pip: %w", err)
	}
	logger.Infof(ctx, "syncing dependencies from %s", b.manifest)
	if err := b.runner.Run(ctx, pip, "install", "-r", b.manifest); err != nil {
		return fmt.Errorf("sync dependencies: %w", err)
	}
	return nil
}
