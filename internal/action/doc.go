// Package action locates, pins, and guards the action binary a bridge wraps.
//
// This package provides three capabilities:
//
// # Resolution
//
// The Resolver turns the configured binary into the path that is executed:
//
//	resolver := action.NewResolver(&action.Config{
//	    Binary: "add-l",
//	    Dir:    "/opt/actions",
//	    Logger: slog.Default(),
//	})
//	path, err := resolver.Resolve(ctx)
//
// A path containing a separator is used as given; a relative one is joined to
// Config.Dir and never to the process working directory. A bare name is
// searched for in:
//  1. The system PATH
//  2. Config.SearchPaths, in order
//  3. Config.Dir
//
// # Digest pinning
//
// FileDigest hashes a binary with BLAKE3 and VerifyDigest compares it to a
// pinned hex digest, so a bridge refuses to wrap a binary that was swapped.
//
// # Input validation
//
// A Validator compiles the action's JSON Schema once and checks each encoded
// request against it before any process is started.
package action
