package release

import (
	"fmt"
	"strings"
)

// Framework names a runtime Setup.exe installs before the application.
type Framework string

// Frameworks known to Squirrel.
const (
	FrameworkNet45          Framework = "net45"
	FrameworkNet451         Framework = "net451"
	FrameworkNet452         Framework = "net452"
	FrameworkNet46          Framework = "net46"
	FrameworkNet461         Framework = "net461"
	FrameworkNet462         Framework = "net462"
	FrameworkNet47          Framework = "net47"
	FrameworkNet471         Framework = "net471"
	FrameworkNet472         Framework = "net472"
	FrameworkNet48          Framework = "net48"
	FrameworkNetCore31X86   Framework = "netcoreapp3.1-x86"
	FrameworkNetCore31X64   Framework = "netcoreapp3.1-x64"
	FrameworkNet5X86        Framework = "net5.0-x86"
	FrameworkNet5X64        Framework = "net5.0-x64"
	FrameworkNet6X86        Framework = "net6.0-x86"
	FrameworkNet6X64        Framework = "net6.0-x64"
	FrameworkVCRedist100X86 Framework = "vcredist100-x86"
	FrameworkVCRedist100X64 Framework = "vcredist100-x64"
	FrameworkVCRedist110X86 Framework = "vcredist110-x86"
	FrameworkVCRedist110X64 Framework = "vcredist110-x64"
	FrameworkVCRedist120X86 Framework = "vcredist120-x86"
	FrameworkVCRedist120X64 Framework = "vcredist120-x64"
	FrameworkVCRedist140X86 Framework = "vcredist140-x86"
	FrameworkVCRedist140X64 Framework = "vcredist140-x64"
	FrameworkVCRedist141X86 Framework = "vcredist141-x86"
	FrameworkVCRedist141X64 Framework = "vcredist141-x64"
	FrameworkVCRedist142X86 Framework = "vcredist142-x86"
	FrameworkVCRedist142X64 Framework = "vcredist142-x64"
	FrameworkVCRedist143X86 Framework = "vcredist143-x86"
	FrameworkVCRedist143X64 Framework = "vcredist143-x64"
)

// knownFrameworks is the closed set accepted by ValidateFrameworks.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFrameworks = frameworkSet(
	FrameworkNet45,
	FrameworkNet451,
	FrameworkNet452,
	FrameworkNet46,
	FrameworkNet461,
	FrameworkNet462,
	FrameworkNet47,
	FrameworkNet471,
	FrameworkNet472,
	FrameworkNet48,
	FrameworkNetCore31X86,
	FrameworkNetCore31X64,
	FrameworkNet5X86,
	FrameworkNet5X64,
	FrameworkNet6X86,
	FrameworkNet6X64,
	FrameworkVCRedist100X86,
	FrameworkVCRedist100X64,
	FrameworkVCRedist110X86,
	FrameworkVCRedist110X64,
	FrameworkVCRedist120X86,
	FrameworkVCRedist120X64,
	FrameworkVCRedist140X86,
	FrameworkVCRedist140X64,
	FrameworkVCRedist141X86,
	FrameworkVCRedist141X64,
	FrameworkVCRedist142X86,
	FrameworkVCRedist142X64,
	FrameworkVCRedist143X86,
	FrameworkVCRedist143X64,
)

func frameworkSet(frameworks ...Framework) map[Framework]struct{} {
	set := make(map[Framework]struct{}, len(frameworks))
	for _, f := range frameworks {
		set[f] = struct{}{}
	}

	return set
}

// IsKnown reports whether f belongs to the closed framework set.
func (f Framework) IsKnown() bool {
	_, ok := knownFrameworks[f]

	return ok
}

// ValidateFrameworks checks every token of a comma-joined framework list.
// The list itself is forwarded to Squirrel untouched.
func ValidateFrameworks(list string) error {
	for token := range strings.SplitSeq(list, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("empty framework token in %q: %w", list, errUnknownFramework)
		}

		if !Framework(token).IsKnown() {
			return fmt.Errorf("%q: %w", token, errUnknownFramework)
		}
	}

	return nil
}

// MSIBitness selects the machine-wide MSI deployment tool flavour.
type MSIBitness string

// Accepted MSI bitness values.
const (
	MSIx86 MSIBitness = "x86"
	MSIx64 MSIBitness = "x64"
)

// IsValid reports whether b is x86 or x64.
func (b MSIBitness) IsValid() bool {
	return b == MSIx86 || b == MSIx64
}
