package release

import "strings"

// NormalizeVersion strips dots from the pre-release part of a semantic version.
//
// Squirrel reserves "." for the numeric segments of a package version, so
// "1.2.3-beta.1" becomes "1.2.3-beta1" and "1.0.0-rc.2-build.5" becomes
// "1.0.0-rc2-build5". Versions without a pre-release part are returned as is.
func NormalizeVersion(version string) string {
	core, suffix, found := strings.Cut(version, "-")
	if !found {
		return core
	}

	return core + "-" + strings.ReplaceAll(suffix, ".", "")
}
