package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/application/writer"
	"writemaster-api/internal/workflow/catalog"
)

func newRefineCmd(a *app) *cobra.Command {
	var (
		content     string
		instruction string
		formatID    string
		styleID     string
		toneID      string
		apiKey      string
		markdown    bool
	)

	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Rewrite existing content following an instruction",
		Long: `Refines a piece of content while keeping its format, style and tone.
Pass --content - to read the content from stdin.

Examples:
  writer refine --content "..." --instruction "make it punchier" --format tweet
  pbpaste | writer refine --content - --instruction "shorter" --format thread`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if content == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(b)
			}
			if strings.TrimSpace(instruction) == "" {
				return workspace.ErrBlankInstruction
			}
			if strings.TrimSpace(content) == "" {
				return workspace.ErrNoOutputs
			}

			ws, cleanup, err := a.workspace(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			settings := ws.Controller.Settings()
			if apiKey == "" {
				apiKey = settings.APIKey
			}
			if apiKey == "" {
				return fmt.Errorf("%w: run `writer prefs set-key` or pass --api-key", workspace.ErrMissingAPIKey)
			}
			if !cmd.Flags().Changed("style") {
				styleID = settings.StyleID
			}

			text, err := ws.Refiner.Refine(ctx, &writer.RefineInput{
				APIKey:      apiKey,
				Content:     content,
				Instruction: strings.TrimSpace(instruction),
				FormatID:    formatID,
				StyleID:     styleID,
				ToneID:      toneID,
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), formatID, text, markdown)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "content to refine, or - for stdin")
	cmd.Flags().StringVarP(&instruction, "instruction", "r", "", "how to change the content")
	cmd.Flags().StringVarP(&formatID, "format", "f", catalog.DefaultFormatID, "format id of the content")
	cmd.Flags().StringVarP(&styleID, "style", "s", "", "style id")
	cmd.Flags().StringVarP(&toneID, "tone", "t", "", "tone id (empty for none)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "override the saved API key")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render output as markdown")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("instruction")

	return cmd
}
