// Package version implements the MAJOR.MINOR.PATCH arithmetic behind the
// patch, minor and major commands.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a string is not MAJOR.MINOR.PATCH.
var ErrInvalidVersion = errors.New("invalid version")

// Designation names the part of a version a bump increments.
type Designation int

const (
	Patch Designation = iota
	Minor
	Major
)

func (d Designation) String() string {
	switch d {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return "patch"
	}
}

// Designations returns every designation, smallest first.
func Designations() []Designation {
	return []Designation{Patch, Minor, Major}
}

// ParseDesignation parses "major", "minor" or "patch" (case-insensitive).
func ParseDesignation(s string) (Designation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	default:
		return Patch, fmt.Errorf("unknown version designation %q (expected major, minor or patch)", s)
	}
}

// Version is a plain semantic version without pre-release or build metadata.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse parses "1.2.3". A leading "v" is accepted.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w %q: expected MAJOR.MINOR.PATCH", ErrInvalidVersion, s)
	}

	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w %q: %q is not a number", ErrInvalidVersion, s, p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns v incremented by d. Lower parts reset to zero.
func (v Version) Bump(d Designation) Version {
	switch d {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Releases reports whether bumping with d should cut a release branch.
func Releases(d Designation, releasing []Designation) bool {
	for _, r := range releasing {
		if r == d {
			return true
		}
	}
	return false
}

// ReleaseBranchName names the branch cut for v. Parts below the smallest
// releasing designation are replaced by "X", so with only major releasing,
// 2.0.0 maps to "release/2.X.X".
func ReleaseBranchName(v Version, releasing []Designation) string {
	patch := strconv.FormatUint(v.Patch, 10)
	minor := strconv.FormatUint(v.Minor, 10)
	if !Releases(Patch, releasing) {
		patch = "X"
	}
	if !Releases(Minor, releasing) {
		minor = "X"
	}
	return fmt.Sprintf("release/%d.%s.%s", v.Major, minor, patch)
}
