package config

import (
	"os"
	"path/filepath"

	coretypes "github.com/projecteru2/core/types"

	"github.com/difli/wxo-adk-on-colima/types"
)

// Config holds global provisioner configuration. Defaults equal the declared
// resource profile and package set; nothing here is exposed as a CLI flag.
type Config struct {
	// BaseDir is the directory for the tool's own state (run lock).
	// Env: WXO_ADK_BASE_DIR. Default: ~/.wxo-adk.
	BaseDir string `json:"base_dir" mapstructure:"base_dir"`
	// VMProfile is the colima profile name. Default: "default".
	VMProfile string `json:"vm_profile" mapstructure:"vm_profile"`
	// CPUs is the vCPU count for the colima VM. Default: 8.
	CPUs int `json:"cpus" mapstructure:"cpus"`
	// Memory is the VM memory size, go-units syntax. Default: "16GiB".
	Memory string `json:"memory" mapstructure:"memory"`
	// MountType is the filesystem sharing mode. Default: "virtiofs".
	MountType string `json:"mount_type" mapstructure:"mount_type"`
	// VMType is the virtualization backend. Default: "vz".
	VMType string `json:"vm_type" mapstructure:"vm_type"`
	// PythonVersion is the pinned interpreter version. The default python3
	// must report this version or python@{version} is force-linked.
	// Default: "3.11".
	PythonVersion string `json:"python_version" mapstructure:"python_version"`
	// VenvDir is the project-relative virtualenv directory. Created once,
	// never recreated. Default: "venv".
	VenvDir string `json:"venv_dir" mapstructure:"venv_dir"`
	// RequirementsFile is the flat dependency manifest installed into the
	// venv on every run. Default: "requirements.txt".
	RequirementsFile string `json:"requirements_file" mapstructure:"requirements_file"`
	// EnvFile is the downstream server's key=value config file. This tool
	// only checks whether it exists; contents are never read.
	// Default: ".env".
	EnvFile string `json:"env_file" mapstructure:"env_file"`
	// Packages is the fixed prerequisite set checked on every run.
	Packages []types.PackageRequirement `json:"packages" mapstructure:"packages"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns the declared desired state: the resource profile and
// package set from the provisioning contract.
func DefaultConfig() *Config {
	baseDir := ".wxo-adk"
	if home, err := os.UserHomeDir(); err == nil {
		baseDir = filepath.Join(home, ".wxo-adk")
	}
	return &Config{
		BaseDir:          baseDir,
		VMProfile:        "default",
		CPUs:             8,
		Memory:           "16GiB",
		MountType:        "virtiofs",
		VMType:           "vz",
		PythonVersion:    "3.11",
		VenvDir:          "venv",
		RequirementsFile: "requirements.txt",
		EnvFile:          ".env",
		Packages: []types.PackageRequirement{
			{Formula: "colima", Executable: "colima"},
			{Formula: "docker", Executable: "docker"},
			{Formula: "python@3.11", Executable: "python3.11"},
		},
		Log: coretypes.ServerLogConfig{
			Level: "info",
		},
	}
}
