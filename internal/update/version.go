// Package update holds version parsing helpers shared by the version
// command and the build info shown in the dashboard footer.
package update

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// goInstallRegexp matches pseudo-versions produced by `go install` on
// an untagged commit, e.g. v0.3.1-0.20260102150405-0123456789ab.
var goInstallRegexp = regexp.MustCompile(`^v?\d+\.\d+\.\d+-\d+\.\d{14}-[0-9a-f]{12}$`)

// NormalizeVersion trims whitespace and a leading "v".
func NormalizeVersion(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimPrefix(trimmed, "v")
}

// IsDevelopmentVersion reports whether the binary was built outside a
// tagged release (dev builds never claim a release version).
func IsDevelopmentVersion(raw string) bool {
	value := strings.TrimSpace(raw)
	if value == "" {
		return true
	}
	lower := strings.ToLower(value)
	switch lower {
	case "dev", "devel", "unknown":
		return true
	}
	if strings.Contains(lower, "dirty") {
		return true
	}
	return goInstallRegexp.MatchString(value)
}

func parseSemver(raw string) (*semver.Version, error) {
	normalized := NormalizeVersion(raw)
	if normalized == "" {
		return nil, semver.ErrInvalidSemVer
	}
	return semver.NewVersion(normalized)
}

// CompareVersions compares two semantic versions. It returns a
// negative value when current is older than other.
func CompareVersions(current, other string) (int, error) {
	cur, err := parseSemver(current)
	if err != nil {
		return 0, err
	}
	oth, err := parseSemver(other)
	if err != nil {
		return 0, err
	}
	return cur.Compare(oth), nil
}
