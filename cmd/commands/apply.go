package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sculpt-dev/sculpt/pkg/dom"
	"github.com/sculpt-dev/sculpt/pkg/host"
	"github.com/sculpt-dev/sculpt/pkg/reconcile"
)

var applyOutput string

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <page.html> <changes.json|changes.yaml>",
		Short: "Apply a change set to an HTML file",
		Long: `Parse an HTML document, replay every enabled change from the change set
against it and write the result.

Changes that match no elements are skipped, never fatal, so a change set
recorded against an older version of the page degrades gracefully.

Examples:
  # Rewrite the page in place
  sculpt apply index.html changes.json -o index.html

  # Print the edited page to stdout
  sculpt apply index.html changes.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: runApply,
	}

	cmd.Flags().StringVarP(&applyOutput, "output", "o", "", "Write the result to a file instead of stdout")

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	doc, err := dom.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	changes, err := host.LoadChangeSet(args[1])
	if err != nil {
		return fmt.Errorf("failed to load change set %s: %w", args[1], err)
	}

	reconcile.New(nil).ApplyAll(doc, changes)

	rendered, err := doc.Render()
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	if applyOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	}
	if err := os.WriteFile(applyOutput, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", applyOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d changes to %s\n", len(changes), applyOutput)
	return nil
}
