// Package bridge turns one request into one envelope by running one action
// process.
//
// A Bridge wraps exactly one action binary, fixed at construction. Execute
// never returns an error and never panics: every outcome, from a ping to a
// binary that could not be started, is normalized into the envelope body and
// classified in the accompanying Result.
package bridge
