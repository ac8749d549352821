// Package squirrel turns a resolved release configuration into a Squirrel
// "pack" invocation and runs it.
//
// Compile is pure and deterministic: the argument order is fixed because
// tooling parses logged invocations. Invoker spawns the tool, waits for it
// and reports a non-zero exit status as an *InvocationError.
package squirrel
