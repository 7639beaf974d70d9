// Package version parses tor version strings and maps the target
// catalog's prereq identifiers onto minimum versions.
//
// Tor versions are "major.minor.micro[.patch][-status]", e.g.
// "0.2.3.16-alpha". They are not semver: the fourth numeric component
// and the status tag follow tor's own version-spec ordering, so this
// package does its own parsing rather than leaning on a semver
// library.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed tor version.
type Version struct {
	Major  int
	Minor  int
	Micro  int
	Patch  int
	Status string
}

// Parse reads a tor version string such as "0.2.3.16-alpha" or
// "0.2.2.35". The patch component and status tag are optional.
func Parse(s string) (Version, error) {
	var v Version

	base, status, _ := strings.Cut(s, "-")
	v.Status = status

	parts := strings.Split(base, ".")
	if len(parts) < 3 || len(parts) > 4 {
		return Version{}, fmt.Errorf("%q isn't a properly formatted tor version", s)
	}

	fields := []*int{&v.Major, &v.Minor, &v.Micro, &v.Patch}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%q isn't a properly formatted tor version", s)
		}
		*fields[i] = n
	}

	return v, nil
}

// ParseBanner extracts the version from tor's startup banner, e.g.
// "Tor version 0.2.3.25 (git-17c24b3118224d65).". Only the first
// matching line is considered.
func ParseBanner(output string) (Version, error) {
	const prefix = "Tor version "

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		token, _, _ := strings.Cut(strings.TrimPrefix(line, prefix), " ")
		return Parse(strings.TrimSuffix(token, "."))
	}

	return Version{}, fmt.Errorf("no version banner in %q", output)
}

// String renders the version back to tor's format.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Micro, v.Patch)
	if v.Status != "" {
		s += "-" + v.Status
	}
	return s
}

// Compare orders versions per tor's version-spec: numeric components
// first, then the status tag. An untagged version outranks any tagged
// one at the same patch level (a release follows its alphas and rcs);
// tags otherwise compare lexically.
func (v Version) Compare(other Version) int {
	mine := [4]int{v.Major, v.Minor, v.Micro, v.Patch}
	theirs := [4]int{other.Major, other.Minor, other.Micro, other.Patch}

	for i := range mine {
		if mine[i] != theirs[i] {
			if mine[i] < theirs[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case v.Status == other.Status:
		return 0
	case v.Status == "":
		return 1
	case other.Status == "":
		return -1
	}
	return strings.Compare(v.Status, other.Status)
}

// AtLeast reports whether v satisfies the given minimum.
func (v Version) AtLeast(minimum Version) bool {
	return v.Compare(minimum) >= 0
}
