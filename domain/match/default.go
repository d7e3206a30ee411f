//go:build !gocv

package match

// New returns the default matcher for this build.
func New() Matcher { return NewNCC() }
