// Package provision runs the ordered, idempotent provisioning sequence that
// converges a macOS host onto the declared ADK stack: prerequisites, pinned
// interpreter, colima VM, docker daemon, project venv, smoke tests.
package provision

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/difli/wxo-adk-on-colima/utils"
)

// Sequencer walks a fixed list of steps, fail-fast. No step is retried, no
// step is skippable, and nothing is rolled back on failure — every step is
// independently idempotent, so the remedy for a failed run is rerunning the
// whole sequence.
type Sequencer struct {
	runID string
	steps []Step
}

// NewSequencer creates a Sequencer over the given steps.
func NewSequencer(steps []Step) *Sequencer {
	return &Sequencer{
		runID: utils.RunID(),
		steps: steps,
	}
}

// RunID returns the identifier tagged into this run's log lines.
func (s *Sequencer) RunID() string { return s.runID }

// Run executes the steps in order. The first non-nil step error terminates
// the run with no later step's side effects. Context cancellation (an
// interactive interrupt) aborts the same way, with no cleanup of
// partially-applied state.
func (s *Sequencer) Run(ctx context.Context) Result {
	logger := log.WithFunc("provision.Run")
	reached := StateInit
	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return Result{State: StateFailed, Reached: reached, Step: step.Name, Err: fmt.Errorf("%s: %w", step.Name, err)}
		}
		logger.Infof(ctx, "run %s: %s", s.runID, step.Name)
		if err := step.Run(ctx); err != nil {
			logger.Errorf(ctx, err, "run %s: %s failed after reaching %s", s.runID, step.Name, reached)
			return Result{State: StateFailed, Reached: reached, Step: step.Name, Err: fmt.Errorf("%s: %w", step.Name, err)}
		}
		reached = step.Target
	}
	logger.Infof(ctx, "run %s: done", s.runID)
	return Result{State: StateDone, Reached: StateDone}
}
