package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projecteru2/core/log"
	coretypes "github.com/projecteru2/core/types"
)

func TestMain(m *testing.M) {
	_ = log.SetupLog(context.Background(), &coretypes.ServerLogConfig{Level: "error"}, "")
	os.Exit(m.Run())
}

type fakeRunner struct {
	errs  map[string]error
	calls []string
}

func (f *fakeRunner) LookPath(name string) (string, error) { return "/usr/local/bin/" + name, nil }

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	return f.errs[key]
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	return "", f.errs[key]
}

// makeVenv drops a pyvenv.cfg marker so the dir looks like an existing venv.
func makeVenv(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pyvenv.cfg"), []byte("home = /opt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// makeManifest writes a minimal requirements file and returns its path.
func makeManifest(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(path, []byte("ibm-watsonx-orchestrate\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnsure_CreatesWhenAbsent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "venv")
	runner := &fakeRunner{}
	b := New(runner, dir, "python3.11", "requirements.txt")

	if b.Exists() {
		t.Fatal("expected venv to be absent")
	}
	if err := b.Ensure(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "python3.11 -m venv " + dir
	if len(runner.calls) != 1 || runner.calls[0] != want {
		t.Errorf("expected %q, got %v", want, runner.calls)
	}
}

func TestEnsure_ExistingVenvUntouched(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "venv")
	makeVenv(t, dir)
	runner := &fakeRunner{}
	b := New(runner, dir, "python3.11", "requirements.txt")

	if !b.Exists() {
		t.Fatal("expected venv to exist")
	}
	if err := b.Ensure(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no invocations for existing venv, got %v", runner.calls)
	}
}

func TestSync_UpgradesPipThenInstallsManifest(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "venv")
	makeVenv(t, dir)
	manifest := makeManifest(t, tmp)
	runner := &fakeRunner{}
	b := New(runner, dir, "python3.11", manifest)

	if err := b.Sync(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pip := filepath.Join(dir, "bin", "pip")
	want := []string{
		pip + " install --upgrade pip",
		pip + " install -r " + manifest,
	}
	if len(runner.calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, runner.calls)
	}
	for i := range want {
		if runner.calls[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], runner.calls[i])
		}
	}
}

func TestSync_MissingManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "venv")
	makeVenv(t, dir)
	runner := &fakeRunner{}
	b := New(runner, dir, "python3.11", filepath.Join(dir, "no-such-file.txt"))

	err := b.Sync(context.Background())
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no pip invocations, got %v", runner.calls)
	}
}

func TestSync_InstallFailure(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "venv")
	makeVenv(t, dir)
	manifest := makeManifest(t, tmp)
	pip := filepath.Join(dir, "bin", "pip")
	runner := &fakeRunner{errs: map[string]error{
		pip + " install -r " + manifest: fmt.Errorf("exit status 1"),
	}}
	b := New(runner, dir, "python3.11", manifest)

	err := b.Sync(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "sync dependencies") {
		t.Errorf("expected wrapped sync error, got: %v", err)
	}
}
