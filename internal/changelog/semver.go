package changelog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// InvalidVersionError reports a version string that is not strict semver.
type InvalidVersionError struct {
	Version string
	Err     error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid semver format %q (expected: MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]): %v", e.Version, e.Err)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// ParseVersion parses s using the full semver 2.0.0 grammar. A "v" prefix,
// missing components and leading zeros are all rejected.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, &InvalidVersionError{Version: s, Err: err}
	}
	return v, nil
}

// CompareVersions compares a and b by semver precedence, ignoring build
// metadata. Both must be valid; callers validate first.
func CompareVersions(a, b *semver.Version) int {
	return a.Compare(b)
}
