// Package colima converges the colima VM onto a declared resource profile.
// Convergence never diffs the live configuration: a running VM is stopped
// unconditionally and started again with the full profile, trading a few
// seconds of restart for certainty that the declared settings are applied.
package colima

import (
	"context"
	"fmt"
	"strconv"

	"github.com/projecteru2/core/log"

	"github.com/difli/wxo-adk-on-colima/host"
	"github.com/difli/wxo-adk-on-colima/types"
)

// Colima wraps the colima CLI for one profile.
type Colima struct {
	runner  host.Runner
	profile types.VMProfile
}

// New creates a Colima client for the given profile.
func New(runner host.Runner, profile types.VMProfile) *Colima {
	return &Colima{runner: runner, profile: profile}
}

// Profile returns the declared profile this client converges to.
func (c *Colima) Profile() types.VMProfile { return c.profile }

// Running reports whether the VM is currently up. colima status exits
// non-zero when the VM is absent or stopped; only the exit status is
// consulted, output is ignored.
func (c *Colima) Running(ctx context.Context) bool {
	args := c.profileArgs("status")
	_, err := c.runner.Output(ctx, "colima", args...)
	return err == nil
}

// Stop shuts the VM down. Callers gate this on Running so stopping an
// already-stopped VM never happens, which is what keeps the stop path out
// of the error taxonomy entirely.
func (c *Colima) Stop(ctx context.Context) error {
	log.WithFunc("colima.Stop").Infof(ctx, "stopping VM (profile %s)", c.profile.Name)
	if err := c.runner.Run(ctx, "colima", c.profileArgs("stop")...); err != nil {
		return fmt.Errorf("stop VM: %w", err)
	}
	return nil
}

// Start creates-or-starts the VM with the full declared profile. colima
// start is idempotent at the tool level: it creates the VM when absent and
// applies the given settings otherwise.
func (c *Colima) Start(ctx context.Context) error {
	args := c.profileArgs("start")
	args = append(args,
		"--cpu", strconv.Itoa(c.profile.CPUs),
		"--memory", strconv.Itoa(c.profile.MemoryGiB()),
		"--mount-type", c.profile.MountType,
		"--vm-type", c.profile.VMType,
	)
	log.WithFunc("colima.Start").Infof(ctx, "starting VM with profile: %s", c.profile)
	if err := c.runner.Run(ctx, "colima", args...); err != nil {
		return fmt.Errorf("start VM: %w", err)
	}
	return nil
}

// Converge brings the VM to the declared profile: stop if running, then
// start with the full profile. Drift is self-healing and never surfaced as
// an error.
func (c *Colima) Converge(ctx context.Context) error {
	if c.Running(ctx) {
		if err := c.Stop(ctx); err != nil {
			return err
		}
	}
	return c.Start(ctx)
}

// profileArgs prefixes a subcommand with the profile selector. The default
// profile is left implicit to match what a user typing colima gets.
func (c *Colima) profileArgs(sub string) []string {
	args := []string{sub}
	if c.profile.Name != "" && c.profile.Name != "default" {
		args = append(args, "--profile", c.profile.Name)
	}
	return args
}
