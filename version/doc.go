// Package version reports the qiimewb build.
//
// Release builds inject Version, Commit and Date with
//
//	-ldflags "-X github.com/dendrascience/qiimewb/version.Version=v0.3.0 -X github.com/dendrascience/qiimewb/version.Commit=abc123"
//
// Development builds fall back to the module and VCS data embedded by the Go
// toolchain (debug.ReadBuildInfo). The version string is also stamped into
// every session manifest so a session can be traced to the binary that made it.
package version
