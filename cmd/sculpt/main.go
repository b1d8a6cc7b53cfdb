// Package main provides the sculpt CLI: apply recorded page edits to HTML
// files, inspect selector matches and preview change sets in a live browser.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sculpt-dev/sculpt/cmd/commands"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "sculpt",
	Short: "Apply, inspect and preview visual page edits",
	Long: `Sculpt records visual page edits as declarative change sets and replays
them against HTML documents or live pages. Change sets are plain JSON or
YAML files, so they diff and review like any other source.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sculpt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sculpt version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(commands.NewApplyCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
