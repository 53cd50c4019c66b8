// Package codec encodes and decodes the JSON documents exchanged between the
// host, the bridge, and the action process.
//
// Requests travel to the action as compact JSON with HTML escaping disabled,
// so the bytes the action reads match what a serde-style encoder would emit.
// Responses travel back to the host as an Envelope, a single-field object
// whose body is always a string.
package codec
