package bank

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// CurrentFormat is the format version written by this release.
const CurrentFormat = "v1.0"

// checkFormat accepts an empty format or any version with major v1.
// The leading "v" is optional.
func checkFormat(format string) error {
	if format == "" {
		return nil
	}
	v := format
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a version", ErrUnsupportedFormat, format)
	}
	if semver.Major(v) != semver.Major(CurrentFormat) {
		return fmt.Errorf("%w: %s (this build reads %s)", ErrUnsupportedFormat, format, semver.Major(CurrentFormat))
	}
	return nil
}
