// Package mcp exposes a bridge as a Model Context Protocol tool.
//
// The server registers one tool named after the action. A tool call's
// arguments become the request, and the result carries the envelope as its
// only text content. Failed invocations are reported with IsError set so
// the calling model can see the failure body.
package mcp
