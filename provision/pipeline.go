package provision

import (
	"context"
	"fmt"

	"github.com/difli/wxo-adk-on-colima/types"
)

type (
	// PackageResolver checks and installs host prerequisites and enforces
	// the interpreter pin. Implemented by brew.Brew.
	PackageResolver interface {
		Missing(reqs []types.PackageRequirement) []types.PackageRequirement
		Install(ctx context.Context, reqs ...types.PackageRequirement) error
		EnsurePinned(ctx context.Context, pin string) error
	}

	// VMManager converges the VM onto its declared profile.
	// Implemented by colima.Colima.
	VMManager interface {
		Converge(ctx context.Context) error
	}

	// DaemonVerifier confirms the container daemon is reachable through the
	// VM. Implemented by docker.Docker.
	DaemonVerifier interface {
		VerifyDaemon(ctx context.Context) error
	}

	// EnvBuilder creates the isolated environment if absent and syncs its
	// dependency set. Implemented by venv.Builder.
	EnvBuilder interface {
		Ensure(ctx context.Context) error
		Sync(ctx context.Context) error
	}

	// SmokeCheck is one read-only or disposable verification command.
	SmokeCheck struct {
		Name string
		Run  func(ctx context.Context) error
	}

	// Pipeline bundles the collaborators of the standard sequence.
	Pipeline struct {
		Requirements []types.PackageRequirement
		PythonPin    string
		Resolver     PackageResolver
		VM           VMManager
		Daemon       DaemonVerifier
		Env          EnvBuilder
		Smoke        []SmokeCheck
	}
)

// Steps builds the fixed ordered step list. Each step is a precondition for
// the next; the sequencer enforces that ordering.
func (p *Pipeline) Steps() []Step {
	return []Step{
		{
			Name:   "resolve prerequisites",
			Target: StatePrereqsChecked,
			Run: func(ctx context.Context) error {
				if missing := p.Resolver.Missing(p.Requirements); len(missing) > 0 {
					if err := p.Resolver.Install(ctx, missing...); err != nil {
						return err
					}
				}
				return p.Resolver.EnsurePinned(ctx, p.PythonPin)
			},
		},
		{
			Name:   "converge VM",
			Target: StateVMReady,
			Run:    func(ctx context.Context) error { return p.VM.Converge(ctx) },
		},
		{
			Name:   "verify daemon",
			Target: StateDaemonVerified,
			Run:    func(ctx context.Context) error { return p.Daemon.VerifyDaemon(ctx) },
		},
		{
			Name:   "build environment",
			Target: StateEnvReady,
			Run: func(ctx context.Context) error {
				if err := p.Env.Ensure(ctx); err != nil {
					return err
				}
				return p.Env.Sync(ctx)
			},
		},
		{
			Name:   "smoke tests",
			Target: StateSmokeTested,
			Run: func(ctx context.Context) error {
				for _, check := range p.Smoke {
					if err := check.Run(ctx); err != nil {
						return fmt.Errorf("smoke test %s: %w", check.Name, err)
					}
				}
				return nil
			},
		},
	}
}

// Sequencer builds a ready-to-run sequencer for this pipeline.
func (p *Pipeline) Sequencer() *Sequencer {
	return NewSequencer(p.Steps())
}
