package types

import (
	"fmt"

	units "github.com/docker/go-units"
)

// VMProfile is the declared resource profile for the colima VM. The live VM
// is converged to this profile on every run: a running instance is stopped
// and started again with these exact settings rather than diffed in place.
type VMProfile struct {
	// Name is the colima profile name. Empty or "default" means the
	// default profile and is omitted from CLI arguments.
	Name string `json:"name"`
	// CPUs is the vCPU count given to the VM.
	CPUs int `json:"cpus"`
	// Memory is the VM memory size in bytes.
	Memory int64 `json:"memory"`
	// MountType is the filesystem sharing mode (e.g. "virtiofs").
	MountType string `json:"mount_type"`
	// VMType is the virtualization backend (e.g. "vz" for the macOS
	// Virtualization.framework).
	VMType string `json:"vm_type"`
}

// MemoryGiB returns the memory size in whole GiB, as colima expects it.
func (p VMProfile) MemoryGiB() int {
	return int(p.Memory / units.GiB)
}

// String renders the profile for log output.
func (p VMProfile) String() string {
	return fmt.Sprintf("%d CPU / %s / %s / %s",
		p.CPUs, units.BytesSize(float64(p.Memory)), p.MountType, p.VMType)
}
