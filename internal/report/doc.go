// Package report resolves a report's declared inputs against the registered
// collectors: which primitive values the user must ultimately supply, and,
// when the report cannot run, a human-readable list of why not. Resolution
// degrades to reportable state rather than errors so a UI can probe "can
// this run?" without crashing.
package report
