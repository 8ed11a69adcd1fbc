package types

import (
	"strings"
	"testing"

	units "github.com/docker/go-units"
)

func TestVMProfile_MemoryGiB(t *testing.T) {
	memBytes, err := units.RAMInBytes("16GiB")
	if err != nil {
		t.Fatal(err)
	}
	p := VMProfile{Memory: memBytes}
	if p.MemoryGiB() != 16 {
		t.Errorf("expected 16 GiB, got %d", p.MemoryGiB())
	}
}

func TestVMProfile_String(t *testing.T) {
	p := VMProfile{CPUs: 8, Memory: 16 * units.GiB, MountType: "virtiofs", VMType: "vz"}
	s := p.String()
	for _, want := range []string{"8 CPU", "16GiB", "virtiofs", "vz"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}
