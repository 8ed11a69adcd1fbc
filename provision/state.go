package provision

import "context"

// State is a node in the provisioning state machine. Control flows strictly
// top-to-bottom; every transition requires the step guarding it to succeed,
// and any failure drops into the absorbing Failed state.
type State string

const (
	StateInit           State = "init"
	StatePrereqsChecked State = "prereqs-checked"
	StateVMReady        State = "vm-ready"
	StateDaemonVerified State = "daemon-verified"
	StateEnvReady       State = "env-ready"
	StateSmokeTested    State = "smoke-tested"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// Step is one guarded transition: Run must return nil for the machine to
// advance to Target. Steps are idempotent — each inspects current host state
// before acting, so rerunning the whole sequence from any point is safe.
type Step struct {
	Name   string
	Target State
	Run    func(ctx context.Context) error
}

// Result is the outcome of one sequencer invocation.
type Result struct {
	// State is the terminal state, StateDone or StateFailed.
	State State
	// Reached is the last state whose guard succeeded.
	Reached State
	// Step names the failing step; empty on success.
	Step string
	// Err is the failing step's error; nil on success.
	Err error
}

// Failed reports whether the run ended in the absorbing Failed state.
func (r Result) Failed() bool { return r.Err != nil }
