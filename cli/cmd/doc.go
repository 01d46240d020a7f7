// Package cmd provides the eval, fmt, and repl subcommands for working with
// konfi language files.
package cmd

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
var CacheIdentifier = "cache"
