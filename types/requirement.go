package types

// PackageRequirement names one external tool that must be present on the
// host. Presence is checked by looking the executable up on PATH; absent
// tools are installed via their Homebrew formula. Requirements are never
// removed by this tool.
type PackageRequirement struct {
	// Formula is the Homebrew formula name, e.g. "python@3.11".
	Formula string `json:"formula" mapstructure:"formula"`
	// Executable is the command expected on PATH, e.g. "python3.11".
	Executable string `json:"executable" mapstructure:"executable"`
}
