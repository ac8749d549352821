// Package version exposes build metadata for squirrel-maker.
//
// Version, Commit and BuildTime are injected at build time via ldflags.
package version
