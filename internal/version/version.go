package version

import "fmt"

// Version is a semantic version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AppVersion is the version reported on the splash screen, in the logs and
// by the status API.
var AppVersion = Version{Major: 0, Minor: 1, Patch: 0}
