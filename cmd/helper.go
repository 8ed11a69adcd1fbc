package cmd

import (
	"context"
	"fmt"

	units "github.com/docker/go-units"

	"github.com/difli/wxo-adk-on-colima/brew"
	"github.com/difli/wxo-adk-on-colima/colima"
	"github.com/difli/wxo-adk-on-colima/config"
	"github.com/difli/wxo-adk-on-colima/docker"
	"github.com/difli/wxo-adk-on-colima/host"
	"github.com/difli/wxo-adk-on-colima/provision"
	"github.com/difli/wxo-adk-on-colima/types"
	"github.com/difli/wxo-adk-on-colima/venv"
)

// vmProfile builds the declared resource profile from config.
func vmProfile(conf *config.Config) (types.VMProfile, error) {
	memBytes, err := units.RAMInBytes(conf.Memory)
	if err != nil {
		return types.VMProfile{}, fmt.Errorf("invalid memory size %q: %w", conf.Memory, err)
	}
	return types.VMProfile{
		Name:      conf.VMProfile,
		CPUs:      conf.CPUs,
		Memory:    memBytes,
		MountType: conf.MountType,
		VMType:    conf.VMType,
	}, nil
}

// initPipeline wires all collaborators over one shared host runner.
func initPipeline(conf *config.Config) (*provision.Pipeline, error) {
	profile, err := vmProfile(conf)
	if err != nil {
		return nil, err
	}

	runner := host.NewExec()
	dockerCli := docker.New(runner)

	return &provision.Pipeline{
		Requirements: conf.Packages,
		PythonPin:    conf.PythonVersion,
		Resolver:     brew.New(runner),
		VM:           colima.New(runner, profile),
		Daemon:       dockerCli,
		Env:          venv.New(runner, conf.VenvDir, conf.PinnedInterpreter(), conf.RequirementsFile),
		Smoke:        smokeChecks(conf, runner, dockerCli),
	}, nil
}

// smokeChecks is the fixed ordered verification list: a read-only version
// query, a throwaway container run, and the downstream CLI's help screen.
func smokeChecks(conf *config.Config, runner host.Runner, dockerCli *docker.Docker) []provision.SmokeCheck {
	return []provision.SmokeCheck{
		{
			Name: "docker version",
			Run:  dockerCli.Version,
		},
		{
			Name: "docker run " + docker.SmokeImage,
			Run: func(ctx context.Context) error {
				return dockerCli.RunDisposable(ctx, docker.SmokeImage)
			},
		},
		{
			Name: "orchestrate --help",
			Run: func(ctx context.Context) error {
				_, err := runner.Output(ctx, conf.OrchestrateBin(), "--help")
				return err
			},
		},
	}
}
