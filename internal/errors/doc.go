// Package errors defines error types for the action bridge.
//
// This package provides structured error types for each failure scenario of
// a child-process invocation: encoding the request, starting the action
// binary, moving bytes through its pipes, the action exiting with an error,
// and the invocation running out of time. All error types support error
// unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
