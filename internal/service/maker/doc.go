// Package maker runs one Squirrel packaging pass for a built application.
//
// A pass resolves the release configuration, compiles and runs the
// "Squirrel.exe pack" invocation into <make-dir>/clowd.squirrel.windows/<arch>
// and then scans that directory for installer artifacts. Steps run strictly
// in sequence; a failed invocation stops the pass before scanning. Runs for
// different arches may proceed concurrently, runs for the same output
// directory are serialized by a lock file.
package maker
