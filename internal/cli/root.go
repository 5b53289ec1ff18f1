// Package cli implements the thinktank command-line harness. The engine's
// programmatic surface is swarm.Orchestrator.Execute; the CLI wires
// collaborators from the environment and feeds it requests.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/scalytics/thinktank/internal/cli.version=1.2.3"
	version = "0.4.1"
)

var rootCmd = &cobra.Command{
	Use:   "thinktank",
	Short: "Think Tank - scatter-gather multi-agent orchestration",
	Long: color.CyanString("Think Tank") + " runs agent swarms against a task, screens responses\n" +
		"through the safety gateway, and synthesizes a consensus answer.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
}
