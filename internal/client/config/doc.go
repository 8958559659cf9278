// Package config loads the CLI's runtime settings from defaults, the
// environment, an optional JSON file, and command-line flags, in that
// order of precedence.
package config
