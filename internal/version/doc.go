// Package version exposes build metadata of alarm-clock.
//
// Version, Commit and BuildTime are injected through ldflags; a local build
// falls back to the VCS stamp the Go toolchain embeds. The version subcommand
// prints Full.
package version
