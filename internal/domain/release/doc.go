// Package release contains the domain types of one packaging run.
//
// Config is the release configuration, resolved against the application
// Manifest and the build Target into a fully-defaulted value before anything
// is compiled into an invocation. NormalizeVersion converts semantic versions
// into the package version format Squirrel expects.
package release
