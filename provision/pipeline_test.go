package provision

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/difli/wxo-adk-on-colima/types"
)

type fakeResolver struct {
	missing   []types.PackageRequirement
	installed [][]types.PackageRequirement
	pinned    []string
	instErr   error
	pinErr    error
}

func (f *fakeResolver) Missing([]types.PackageRequirement) []types.PackageRequirement {
	return f.missing
}

func (f *fakeResolver) Install(_ context.Context, reqs ...types.PackageRequirement) error {
	f.installed = append(f.installed, reqs)
	return f.instErr
}

func (f *fakeResolver) EnsurePinned(_ context.Context, pin string) error {
	f.pinned = append(f.pinned, pin)
	return f.pinErr
}

type fakeVM struct {
	converged int
	err       error
}

func (f *fakeVM) Converge(context.Context) error {
	f.converged++
	return f.err
}

type fakeDaemon struct {
	verified int
	err      error
}

func (f *fakeDaemon) VerifyDaemon(context.Context) error {
	f.verified++
	return f.err
}

type fakeEnv struct {
	ensured, synced int
	ensErr, syncErr error
}

func (f *fakeEnv) Ensure(context.Context) error {
	f.ensured++
	return f.ensErr
}

func (f *fakeEnv) Sync(context.Context) error {
	f.synced++
	return f.syncErr
}

var fullSet = []types.PackageRequirement{
	{Formula: "colima", Executable: "colima"},
	{Formula: "docker", Executable: "docker"},
	{Formula: "python@3.11", Executable: "python3.11"},
}

func testPipeline(resolver *fakeResolver, vm *fakeVM, daemon *fakeDaemon, env *fakeEnv, smokeRan *[]string, smokeErr error) *Pipeline {
	return &Pipeline{
		Requirements: fullSet,
		PythonPin:    "3.11",
		Resolver:     resolver,
		VM:           vm,
		Daemon:       daemon,
		Env:          env,
		Smoke: []SmokeCheck{
			{Name: "docker version", Run: func(context.Context) error {
				*smokeRan = append(*smokeRan, "docker version")
				return nil
			}},
			{Name: "docker run hello-world", Run: func(context.Context) error {
				*smokeRan = append(*smokeRan, "docker run hello-world")
				return smokeErr
			}},
			{Name: "orchestrate --help", Run: func(context.Context) error {
				*smokeRan = append(*smokeRan, "orchestrate --help")
				return nil
			}},
		},
	}
}

func TestPipeline_FreshHost(t *testing.T) {
	// Scenario: nothing installed. Everything missing is installed in one
	// batch, the VM is created with the full profile, the venv built and
	// synced, and all smoke checks run.
	resolver := &fakeResolver{missing: fullSet}
	vm := &fakeVM{}
	daemon := &fakeDaemon{}
	env := &fakeEnv{}
	var smoke []string

	result := testPipeline(resolver, vm, daemon, env, &smoke, nil).Sequencer().Run(context.Background())
	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result.Err)
	}

	if len(resolver.installed) != 1 {
		t.Fatalf("expected exactly one batch install, got %d", len(resolver.installed))
	}
	if len(resolver.installed[0]) != 3 {
		t.Errorf("expected all 3 missing formulae in the batch, got %v", resolver.installed[0])
	}
	if len(resolver.pinned) != 1 || resolver.pinned[0] != "3.11" {
		t.Errorf("expected python pin enforced once, got %v", resolver.pinned)
	}
	if vm.converged != 1 || daemon.verified != 1 || env.ensured != 1 || env.synced != 1 {
		t.Errorf("expected each step once, got vm=%d daemon=%d ensure=%d sync=%d",
			vm.converged, daemon.verified, env.ensured, env.synced)
	}
	if strings.Join(smoke, ",") != "docker version,docker run hello-world,orchestrate --help" {
		t.Errorf("expected ordered smoke checks, got %v", smoke)
	}
}

func TestPipeline_ConvergedHost_NoInstall(t *testing.T) {
	// Idempotence: nothing missing, so no install call at all; the pin
	// check, VM convergence and dependency sync still run every time.
	resolver := &fakeResolver{}
	vm := &fakeVM{}
	env := &fakeEnv{}
	var smoke []string

	result := testPipeline(resolver, vm, &fakeDaemon{}, env, &smoke, nil).Sequencer().Run(context.Background())
	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result.Err)
	}
	if len(resolver.installed) != 0 {
		t.Errorf("expected no install calls, got %v", resolver.installed)
	}
	if vm.converged != 1 || env.synced != 1 {
		t.Errorf("expected convergence and sync to run, got vm=%d sync=%d", vm.converged, env.synced)
	}
}

func TestPipeline_DaemonUnreachable_LaterStepsSkipped(t *testing.T) {
	// Scenario: daemon unreachable after VM start. Env and smoke steps
	// must never run.
	resolver := &fakeResolver{}
	env := &fakeEnv{}
	var smoke []string
	daemon := &fakeDaemon{err: fmt.Errorf("daemon unreachable")}

	result := testPipeline(resolver, &fakeVM{}, daemon, env, &smoke, nil).Sequencer().Run(context.Background())
	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if result.Reached != StateVMReady {
		t.Errorf("expected to stop at vm-ready, got %s", result.Reached)
	}
	if env.ensured != 0 || env.synced != 0 || len(smoke) != 0 {
		t.Errorf("env/smoke must not run after daemon failure: ensure=%d sync=%d smoke=%v",
			env.ensured, env.synced, smoke)
	}
}

func TestPipeline_InstallFailureAborts(t *testing.T) {
	resolver := &fakeResolver{missing: fullSet[:1], instErr: fmt.Errorf("exit status 1")}
	vm := &fakeVM{}
	var smoke []string

	result := testPipeline(resolver, vm, &fakeDaemon{}, &fakeEnv{}, &smoke, nil).Sequencer().Run(context.Background())
	if !result.Failed() || result.Reached != StateInit {
		t.Errorf("expected failure before any state, got %+v", result)
	}
	if len(resolver.pinned) != 0 {
		t.Errorf("pin must not run after install failure, got %v", resolver.pinned)
	}
	if vm.converged != 0 {
		t.Error("VM convergence must not run after install failure")
	}
}

func TestPipeline_EnsureFailure_NoSync(t *testing.T) {
	env := &fakeEnv{ensErr: fmt.Errorf("create venv: exit status 1")}
	var smoke []string

	result := testPipeline(&fakeResolver{}, &fakeVM{}, &fakeDaemon{}, env, &smoke, nil).Sequencer().Run(context.Background())
	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if env.synced != 0 {
		t.Error("sync must not run when venv creation failed")
	}
}

func TestPipeline_SmokeFailure_FailFastWithName(t *testing.T) {
	var smoke []string
	result := testPipeline(&fakeResolver{}, &fakeVM{}, &fakeDaemon{}, &fakeEnv{}, &smoke,
		fmt.Errorf("exit status 125")).Sequencer().Run(context.Background())
	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Err.Error(), "smoke test docker run hello-world") {
		t.Errorf("expected failing check named in error, got: %v", result.Err)
	}
	if strings.Join(smoke, ",") != "docker version,docker run hello-world" {
		t.Errorf("later smoke checks must not run, got %v", smoke)
	}
	if result.Reached != StateEnvReady {
		t.Errorf("expected env-ready reached, got %s", result.Reached)
	}
}
