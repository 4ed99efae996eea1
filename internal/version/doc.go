// Package version exposes build metadata for aifiles-setup.
//
// Version, Commit and BuildTime are injected via ldflags at build time.
package version
