package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sculpt-dev/sculpt/pkg/browser"
	"github.com/sculpt-dev/sculpt/pkg/config"
	"github.com/sculpt-dev/sculpt/pkg/host"
	"github.com/sculpt-dev/sculpt/pkg/logging"
)

var (
	previewHeaded     bool
	previewScreenshot string
	previewHTML       string
	previewConfigPath string
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <url> <changes.json|changes.yaml>",
		Short: "Preview a change set against a live page",
		Long: `Open the page in a real browser, replay the change set against the live
DOM and optionally capture the result.

With --headed the browser window stays visible; press Ctrl-C to close it.

Examples:
  # Capture the edited page as a screenshot
  sculpt preview https://example.com changes.json --screenshot after.png

  # Dump the edited page's serialized HTML
  sculpt preview https://example.com changes.yaml --dump-html after.html

  # Eyeball the result in a visible browser
  sculpt preview http://localhost:3000 changes.json --headed`,
		Args: cobra.ExactArgs(2),
		RunE: runPreview,
	}

	cmd.Flags().BoolVar(&previewHeaded, "headed", false, "Run the browser with a visible window")
	cmd.Flags().StringVar(&previewScreenshot, "screenshot", "", "Capture the result to a PNG file")
	cmd.Flags().StringVar(&previewHTML, "dump-html", "", "Write the result's serialized HTML to a file")
	cmd.Flags().StringVar(&previewConfigPath, "config", "", "Config file path (default ~/.sculpt/config.json)")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(previewConfigPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	changes, err := host.LoadChangeSet(args[1])
	if err != nil {
		return fmt.Errorf("failed to load change set %s: %w", args[1], err)
	}

	log, err := logging.NewLogger("preview")
	if err == nil {
		defer log.Close()
	}

	browserCfg := config.GetBrowser()
	headless := browserCfg.GetHeadless() && !previewHeaded

	previewer := browser.NewPreviewer(browser.Options{
		Headless:        headless,
		NavigateTimeout: browserCfg.GetNavigateTimeout(),
		Logger:          log,
	})
	if err := previewer.Start(); err != nil {
		return err
	}
	defer previewer.Close()

	if err := previewer.Open(args[0]); err != nil {
		return err
	}

	applied, err := previewer.ApplyChanges(changes)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d of %d changes\n", applied, len(changes))

	if previewScreenshot != "" {
		data, err := previewer.Screenshot()
		if err != nil {
			return err
		}
		if err := os.WriteFile(previewScreenshot, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", previewScreenshot, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Screenshot saved to %s\n", previewScreenshot)
	}

	if previewHTML != "" {
		content, err := previewer.HTML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(previewHTML, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", previewHTML, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "HTML saved to %s\n", previewHTML)
	}

	if !headless {
		fmt.Fprintln(cmd.OutOrStdout(), "Browser open, press Ctrl-C to exit")
		waitForInterrupt()
	}
	return nil
}
