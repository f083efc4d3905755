package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomaanakhan/healthCheckScript/config"
)

// validateCmd validates a catalog file without probing anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an endpoint file",
	Long: `Validate an endpoint file without running any probes.

This command parses the YAML, expands environment variables, and validates
all entries. Useful for CI pipelines or pre-deployment checks.

Exit codes:
  0 - Endpoint file is valid
  1 - Endpoint file is invalid (error details printed to stderr)

Example:
  healthcheck validate -f endpoints.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("file", "f", "", "path to YAML file with endpoints (required)")
	_ = validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	cfgs, err := config.Load(file)
	if err != nil {
		return fmt.Errorf("invalid endpoint file: %w", err)
	}

	endpoints, err := config.BuildEndpoints(cfgs)
	if err != nil {
		return fmt.Errorf("invalid endpoint file: %w", err)
	}

	domains := make(map[string]int)
	for _, ep := range endpoints {
		domains[ep.Domain()]++
	}

	fmt.Printf("Endpoint file is valid!\n")
	fmt.Printf("  Endpoints: %d\n", len(endpoints))
	fmt.Printf("  Domains:   %d\n", len(domains))

	return nil
}
