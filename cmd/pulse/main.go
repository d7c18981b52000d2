// Package main is the single-binary entrypoint for Pulse.
// Pulse is a local-first personal tracker — one binary, your data stays home.
package main

import "github.com/pulse-app/pulse/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
