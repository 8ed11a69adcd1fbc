// Package brew resolves host prerequisites through Homebrew. Presence is
// decided by PATH lookups, never by querying the brew database, and missing
// formulae are installed in one batch invocation.
package brew

import (
	"context"
	"fmt"
	"strings"

	"github.com/projecteru2/core/log"

	"github.com/difli/wxo-adk-on-colima/host"
	"github.com/difli/wxo-adk-on-colima/types"
)

// Brew wraps the Homebrew CLI.
type Brew struct {
	runner host.Runner
}

// New creates a Brew client on top of the given runner.
func New(runner host.Runner) *Brew {
	return &Brew{runner: runner}
}

// Missing returns the subset of requirements whose executable is absent from
// PATH. Order is preserved so batch installs are deterministic.
func (b *Brew) Missing(reqs []types.PackageRequirement) []types.PackageRequirement {
	var missing []types.PackageRequirement
	for _, req := range reqs {
		if _, err := b.runner.LookPath(req.Executable); err != nil {
			missing = append(missing, req)
		}
	}
	return missing
}

// Install installs all given formulae with a single `brew install` call.
// One invocation for the whole batch keeps redundant brew startups (and
// repeated auto-update runs) off the critical path.
func (b *Brew) Install(ctx context.Context, reqs ...types.PackageRequirement) error {
	if len(reqs) == 0 {
		return nil
	}
	args := []string{"install"}
	for _, req := range reqs {
		args = append(args, req.Formula)
	}
	log.WithFunc("brew.Install").Infof(ctx, "installing: %s", strings.Join(args[1:], " "))
	if err := b.runner.Run(ctx, "brew", args...); err != nil {
		return fmt.Errorf("install prerequisites: %w", err)
	}
	return nil
}

// PinnedActive reports whether the default python3 invocation reports the
// pinned version. Any failure to run python3 counts as "not pinned" — the
// relink below repairs both cases.
func (b *Brew) PinnedActive(ctx context.Context, pin string) bool {
	out, err := b.runner.Output(ctx, "python3", "--version")
	if err != nil {
		return false
	}
	return strings.Contains(out, "Python "+pin)
}

// EnsurePinned force-links python@{pin} as the default python3 when the
// current default reports a different version. brew link may prompt for
// elevated credentials; the runner keeps stdin attached so the prompt works,
// and a warning is logged when no terminal is available to answer it.
func (b *Brew) EnsurePinned(ctx context.Context, pin string) error {
	logger := log.WithFunc("brew.EnsurePinned")
	if b.PinnedActive(ctx, pin) {
		logger.Debugf(ctx, "python3 already reports %s", pin)
		return nil
	}
	if !host.StdinIsTerminal() {
		logger.Warnf(ctx, "no terminal attached: brew link may fail if it needs credentials")
	}
	logger.Infof(ctx, "linking python@%s as default python3", pin)
	if err := b.runner.Run(ctx, "brew", "link", "--force", "--overwrite", "python@"+pin); err != nil {
		return fmt.Errorf("pin python %s: %w", pin, err)
	}
	return nil
}
