// Package main provides the entry point for the attrigate CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/attrigate/attrigate/cmd/attrigate/commands"
	"github.com/attrigate/attrigate/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attrigate",
		Short: "Attrigate - AI commit-attribution gate for CI",
		Long: `Attrigate runs a commit-attribution analyzer over git history and
reports AI-usage statistics to the CI environment.

Commands:
  run       Analyze a commit range and publish the result`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		// Run failures are already reported by the pipeline.
		if !errors.Is(err, commands.ErrRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "attrigate %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
