// Package cli implements the command-line interface for afl-tables.
//
// The root command scrapes one season and prints it as JSON, text or iCalendar,
// optionally filtered and sorted. The range subcommand exports several seasons to
// JSON files, and serve runs the HTTP API. Settings come from an optional TOML
// config file with flags taking precedence.
package cli
