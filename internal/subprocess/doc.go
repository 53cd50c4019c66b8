// Package subprocess runs action binaries as child processes.
//
// This package implements the config.Runner interface by spawning the action
// and communicating via stdin, stdout, and stderr. Each Run owns one process:
// it writes the request, closes stdin, drains both output streams into capped
// buffers, and reaps the process before returning, on success and on every
// error path.
package subprocess
