package config

import (
	"os"
	"path/filepath"

	"github.com/difli/wxo-adk-on-colima/utils"
)

// EnsureBaseDir creates the tool's state directory.
func (c *Config) EnsureBaseDir() error {
	return utils.EnsureDirs(c.BaseDir)
}

// LockFile is the run-lock path guarding against concurrent invocations.
func (c *Config) LockFile() string { return filepath.Join(c.BaseDir, "run.lock") }

// PinnedInterpreter is the versioned python executable name, e.g. "python3.11".
func (c *Config) PinnedInterpreter() string { return "python" + c.PythonVersion }

// PythonFormula is the Homebrew formula carrying the pinned interpreter.
func (c *Config) PythonFormula() string { return "python@" + c.PythonVersion }

// Venv binary paths. The venv layout is fixed by `python -m venv`.

func (c *Config) VenvBin(name string) string { return filepath.Join(c.VenvDir, "bin", name) }
func (c *Config) VenvPython() string         { return c.VenvBin("python") }
func (c *Config) VenvPip() string            { return c.VenvBin("pip") }

// OrchestrateBin is the downstream ADK CLI installed into the venv.
func (c *Config) OrchestrateBin() string { return c.VenvBin("orchestrate") }

// EnvFileExists reports whether the downstream server's env file is present.
// Contents are deliberately never read or validated here.
func (c *Config) EnvFileExists() bool {
	_, err := os.Stat(c.EnvFile)
	return err == nil
}
