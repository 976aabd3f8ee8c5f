// Package guide prints the built-in workflow guide.
package guide

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideContent string

// GuideCmd returns the guide command
func GuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Show the tarea workflow guide",
		Long: `Render the built-in workflow guide.

The guide doubles as workflow context for agents: --raw emits the
plain markdown, suitable for session hooks and pipes.`,
		RunE: runGuide,
	}

	cmd.Flags().Bool("raw", false, "Print plain markdown without terminal rendering")

	return cmd
}

func runGuide(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")
	if raw {
		fmt.Print(guideContent)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// A glamour failure should not hide the guide
		fmt.Print(guideContent)
		return nil
	}

	rendered, err := renderer.Render(guideContent)
	if err != nil {
		fmt.Print(guideContent)
		return nil
	}

	fmt.Print(rendered)
	return nil
}
