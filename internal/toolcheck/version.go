package toolcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// ParseVersion extracts the first dotted version number from a tool's
// --version output, e.g. "ruby 3.3.0p0 (...)" → 3.3.0.
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version number in %q", strings.TrimSpace(output))
	}
	return parseSemver(match)
}

// Satisfies reports whether version meets constraint (e.g. ">= 4.0").
// An empty constraint is always satisfied.
func Satisfies(version, constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := parseSemver(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.Check(v), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
