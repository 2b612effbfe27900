package main

import (
	"context"
	"io"

	"github.com/fwojciec/vanity"
	"github.com/fwojciec/vanity/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// DB and Runs are set when a database path is given.
	DB   *sqlite.DB
	Runs vanity.RunService

	// Resolver overrides the HTTP resolver built from the mode.
	Resolver vanity.Resolver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Check   CheckCmd   `cmd:"" help:"Check a wordlist for available identifiers"`
	History HistoryCmd `cmd:"" help:"List recorded check runs"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Mode        string  `arg:"" optional:"" default:"profile" enum:"profile,group" help:"Namespace to check (profile or group)"`
	Wordlist    string  `default:"wordlist.json" help:"Wordlist file name inside the wordlist directory"`
	ConfigDir   string  `default:"config" help:"Directory holding config.json and the skip lists"`
	Config      string  `help:"Configuration file (JSON or YAML); defaults to <config-dir>/config.json"`
	WordlistDir string  `default:"wordlists" help:"Directory holding wordlists"`
	OutputDir   string  `default:"output" help:"Directory for result files and the activity log"`
	DB          string  `env:"VANITY_DB" help:"Store results and run history in this SQLite database instead of JSON files"`
	MetricsFile string  `help:"Write Prometheus metrics to this file after the run"`
	Credential  string  `env:"VANITY_CREDENTIAL" help:"Steam Web API key; overrides the configuration file"`
	Concurrency int     `short:"c" help:"Concurrent check limit; overrides the configuration file"`
	RPS         float64 `name:"rps" help:"Global request rate limit per second; overrides the configuration file"`
	Verbose     bool    `short:"v" help:"Enable debug logging"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	DB    string `env:"VANITY_DB" help:"SQLite database holding the run history"`
	Mode  string `help:"Only show runs of this mode (profile or group)"`
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to show"`
}
