// Package cli implements the actionbridge command.
//
// Subcommands:
//
//	invoke   run the action once for a request read from a file or stdin
//	serve    expose the action as an MCP tool over stdio
//	digest   print the BLAKE3 digest of an action binary
//	version  print the build version
//
// Bridge settings come from an optional YAML file (--config) and are
// overridden by flags. Request files may contain comments and trailing
// commas.
package cli
