// Package docker probes the container daemon running inside the colima VM.
package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/difli/wxo-adk-on-colima/host"
)

// ErrDaemonUnreachable is the sentinel wrapped by VerifyDaemon failures.
var ErrDaemonUnreachable = errors.New("docker daemon unreachable")

// SmokeImage is the throwaway image run as a smoke test.
const SmokeImage = "hello-world"

// Docker wraps the docker CLI.
type Docker struct {
	runner host.Runner
}

// New creates a Docker client on top of the given runner.
func New(runner host.Runner) *Docker {
	return &Docker{runner: runner}
}

// VerifyDaemon issues a lightweight status query against the daemon. A
// failure here almost always means the colima VM did not come up correctly,
// so the raw CLI error is translated into that diagnosis instead of being
// surfaced as-is.
func (d *Docker) VerifyDaemon(ctx context.Context) error {
	out, err := d.runner.Output(ctx, "docker", "info")
	if err != nil {
		return fmt.Errorf("%w: the colima VM likely did not start correctly (check `colima status`): %v",
			ErrDaemonUnreachable, err)
	}
	log.WithFunc("docker.VerifyDaemon").Debugf(ctx, "docker info returned %d bytes", len(out))
	return nil
}

// Version runs the read-only client version query.
func (d *Docker) Version(ctx context.Context) error {
	if _, err := d.runner.Output(ctx, "docker", "--version"); err != nil {
		return fmt.Errorf("docker version: %w", err)
	}
	return nil
}

// RunDisposable runs a throwaway container that is removed on exit.
func (d *Docker) RunDisposable(ctx context.Context, image string) error {
	if err := d.runner.Run(ctx, "docker", "run", "--rm", image); err != nil {
		return fmt.Errorf("run container %s: %w", image, err)
	}
	return nil
}
