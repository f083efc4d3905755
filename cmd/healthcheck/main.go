// Package main is the entry point for the healthcheck CLI.
//
// The CLI wraps the healthcheck library with a YAML endpoint catalog and
// command-line flags.
//
// Usage:
//
//	healthcheck run -f endpoints.yaml       # Start probing
//	healthcheck validate -f endpoints.yaml  # Validate a catalog
//	healthcheck version                     # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Cyclic availability checker for HTTP endpoints",
	Long: `healthcheck probes a catalog of HTTP endpoints in fixed-length cycles
and prints per-domain availability after every cycle.

An endpoint is UP when it answers with a 2xx status in under 500ms;
everything else counts as DOWN. Percentages are cumulative over the
lifetime of the process.

Quick start:
  1. Create an endpoint file (endpoints.yaml)
  2. Run: healthcheck run -f endpoints.yaml
  3. Stop with Ctrl+C

Example endpoint file:
  - name: fetch index page
    url: https://example.com/
  - name: submit payload
    url: https://example.com/api
    method: POST
    headers:
      content-type: application/json
    body: '{"foo": "bar"}'`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this healthcheck binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("healthcheck %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
