// Package logger wraps zap with a global sugared logger and context helpers.
//
// Every service receives a context and pulls its logger from it, so a run can
// be scoped with WithName/WithKV once and every log line below carries the
// same fields (package id, target arch and so on).
package logger
