// Package main is the entry point for the nodelift CLI.
//
// nodelift runs once per machine at creation time. It resolves the
// resource config describing the cluster the machine belongs to, executes
// the provisioning step sequence with all output mirrored into an
// append-only log, and hands off to the cluster's lifecycle script.
//
// Commands: run, resolve, plan, init, doctor.
//
// For detailed usage information, run:
//
//	nodelift --help
package main

import (
	"fmt"
	"os"

	"github.com/nodelift/nodelift/cmd/nodelift/commands"
	"github.com/nodelift/nodelift/internal/provisioning"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(provisioning.ExitCodeFor(err))
	}
}
