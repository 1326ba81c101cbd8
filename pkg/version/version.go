// Package version provides API version parsing and comparison, and the CEC
// version this source announces.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

// Current is the host API version implemented by this library.
const Current = "1.0.8"

// CEC is the CEC version reported in answer to Get CEC Version.
const CEC = cec.Version1_4

// APIVersion represents a parsed "major.minor.patch" API version.
type APIVersion struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (APIVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return APIVersion{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint16
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.ParseUint(parts[i], 10, 16)
		if err != nil || parts[i] == "" {
			return APIVersion{}, fmt.Errorf("invalid version %q: bad %s component", s, name)
		}
		nums[i] = uint16(n)
	}

	return APIVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) APIVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor.patch".
func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible returns true if the other version has the same major version.
func (v APIVersion) Compatible(other APIVersion) bool {
	return v.Major == other.Major
}

// Less reports whether v orders before other.
func (v APIVersion) Less(other APIVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// ParseCEC parses a CEC version name such as "1.4" or "2.0".
func ParseCEC(s string) (cec.Version, error) {
	for _, v := range []cec.Version{
		cec.Version1_1, cec.Version1_2, cec.Version1_2a, cec.Version1_3,
		cec.Version1_3a, cec.Version1_4, cec.Version2_0,
	} {
		if v.String() == s {
			return v, nil
		}
	}
	return cec.VersionUnknown, fmt.Errorf("unknown CEC version %q", s)
}
