package toolcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\bv?(\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.+-]*)?)`)

// ExtractVersion returns the first version-looking token in a tool's
// version output, e.g. "0.12.0+dev-00123" from
// "Open On-Chip Debugger 0.12.0+dev-00123 (2023-01-01)".
func ExtractVersion(output string) (string, bool) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CompareVersions compares two version strings using semver.
// Returns -1 if current < other, 0 if equal, 1 if current > other.
// A leading "v" is tolerated.
func CompareVersions(current, other string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", current, err)
	}
	ov, err := parseSemver(other)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", other, err)
	}
	return cv.Compare(ov), nil
}

// AtLeast reports whether current satisfies the minimum version min.
// Build metadata on current is ignored, so "0.12.0+dev-123" satisfies
// "0.12.0", but a prerelease such as "0.12.0-rc1" does not.
func AtLeast(current, min string) (bool, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", current, err)
	}
	core, err := cv.SetMetadata("")
	if err != nil {
		return false, err
	}
	mv, err := parseSemver(min)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", min, err)
	}
	return !core.LessThan(mv), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
