// Package report persists the outcome of a make run.
//
// The FileRepository stores a Report as protobuf JSON next to the artifacts
// so CI jobs can pick up the invocation, exit status and checksums without
// parsing logs.
package report
