// Package version records the CLI version.
package version

// Version is the kolja version. Overridden at release build time via
// -ldflags "-X github.com/kolja-aws/kolja/pkg/version.Version=...".
var Version = "0.1.0"
