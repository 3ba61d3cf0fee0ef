package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"writemaster-api/internal/workflow/catalog"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List available formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSummaries(cmd.OutOrStdout(), catalog.FormatList())
			return nil
		},
	}
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available writing styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSummaries(cmd.OutOrStdout(), catalog.StyleList())
			return nil
		},
	}
}

func newTonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tones",
		Short: "List available tones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSummaries(cmd.OutOrStdout(), catalog.ToneList())
			return nil
		},
	}
}

func printSummaries(w io.Writer, list []catalog.Summary) {
	for _, s := range list {
		line := fmt.Sprintf("%-14s %s", s.ID, headingStyle.Render(s.Name))
		if s.RequiresResearch {
			line += mutedStyle.Render("  (web research)")
		}
		fmt.Fprintln(w, line)
		if s.Description != "" {
			fmt.Fprintf(w, "%-14s %s\n", "", mutedStyle.Render(s.Description))
		}
	}
}
