package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/difli/wxo-adk-on-colima/brew"
	"github.com/difli/wxo-adk-on-colima/colima"
	"github.com/difli/wxo-adk-on-colima/docker"
	"github.com/difli/wxo-adk-on-colima/host"
	"github.com/difli/wxo-adk-on-colima/venv"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report convergence state without changing anything",
	RunE:  runStatus,
}

// runStatus probes every precondition the pipeline converges and prints one
// line per check. Strictly read-only: nothing is installed, started, or
// created here.
func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	profile, err := vmProfile(conf)
	if err != nil {
		return err
	}

	runner := host.NewExec()
	resolver := brew.New(runner)
	vm := colima.New(runner, profile)
	daemon := docker.New(runner)
	env := venv.New(runner, conf.VenvDir, conf.PinnedInterpreter(), conf.RequirementsFile)

	missing := map[string]bool{}
	for _, req := range resolver.Missing(conf.Packages) {
		missing[req.Formula] = true
	}
	for _, req := range conf.Packages {
		printCheck(req.Executable, !missing[req.Formula], "on PATH", "missing (formula "+req.Formula+")")
	}

	printCheck("python3 == "+conf.PythonVersion, resolver.PinnedActive(ctx, conf.PythonVersion),
		"pinned", "not pinned")
	printCheck("colima VM ("+profile.String()+")", vm.Running(ctx), "running", "not running")
	printCheck("docker daemon", daemon.VerifyDaemon(ctx) == nil, "reachable", "unreachable")
	printCheck("venv "+conf.VenvDir, env.Exists(), "present", "absent")
	printCheck("env file "+conf.EnvFile, conf.EnvFileExists(), "present", "absent")

	return nil
}

func printCheck(label string, ok bool, okMsg, badMsg string) {
	state := okMsg
	if !ok {
		state = badMsg
	}
	fmt.Printf("%-40s %s\n", label, state)
}
