package actionbridge

import "github.com/wagiedev/action-bridge-go/internal/config"

// Runner defines the interface for executing one action invocation.
// Implement this to provide custom runners for testing, mocking,
// or alternative sandboxes (e.g., containers or microVMs).
//
// The default implementation spawns the action as a local child process.
// Custom runners can be injected via WithRunner.
type Runner = config.Runner

// Invocation describes one child-process execution handed to a Runner.
type Invocation = config.Invocation

// Output is what a finished child left behind, as reported by a Runner.
type Output = config.Output
