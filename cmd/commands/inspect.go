package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sculpt-dev/sculpt/pkg/dom"
)

var inspectShowHTML bool

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <page.html> <selector>...",
		Short: "Show which elements a selector matches",
		Long: `Query an HTML document with one or more CSS selectors and print the
canonical selector path of every match. Useful for checking what a change
set will touch before applying it.

Examples:
  # Where do these selectors land?
  sculpt inspect index.html "#hero" ".cta-button"

  # Include each match's outer HTML
  sculpt inspect index.html "nav a" --html`,
		Args: cobra.MinimumNArgs(2),
		RunE: runInspect,
	}

	cmd.Flags().BoolVar(&inspectShowHTML, "html", false, "Print each match's outer HTML")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := dom.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	for _, selector := range args[1:] {
		matches := doc.Query(selector)
		fmt.Fprintf(out, "%s: %d match(es)\n", selector, len(matches))
		for _, el := range matches {
			fmt.Fprintf(out, "  %s\n", dom.SelectorPath(el))
			if inspectShowHTML {
				for _, line := range strings.Split(strings.TrimSpace(el.OuterHTML()), "\n") {
					fmt.Fprintf(out, "    %s\n", line)
				}
			}
		}
	}
	return nil
}
