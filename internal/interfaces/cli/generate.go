package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/workflow/catalog"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		idea     string
		formats  []string
		styleID  string
		toneID   string
		apiKey   string
		markdown bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate content for one idea in every selected format",
		Long: `Generates one piece of content per format. Formats, style and tone default to the
saved preferences; flags override them for this run only.

Examples:
  writer generate --idea "Leverage is a force multiplier"
  writer generate -i "Boredom is a signal" -f tweet -f thread --style seneca --tone contrarian`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if strings.TrimSpace(idea) == "" {
				return workspace.ErrBlankIdea
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
			run := settings
			run.APIKey = apiKey
			if len(formats) > 0 {
				for _, id := range formats {
					if _, ok := catalog.LookupFormat(id); !ok {
						return fmt.Errorf("unknown format %q (one of %s)", id, strings.Join(catalog.FormatIDs(), ", "))
					}
				}
				run.Formats = formats
			}
			if cmd.Flags().Changed("style") {
				run.StyleID = styleID
			}
			if cmd.Flags().Changed("tone") {
				run.ToneID = toneID
			}

			err = ws.Controller.GenerateWith(ctx, idea, run)
			var failures workspace.FormatErrors
			if err != nil && !errors.As(err, &failures) {
				return err
			}

			snap := ws.Controller.Snapshot()
			out := cmd.OutOrStdout()
			for _, formatID := range catalog.FormatIDs() {
				if ferr, ok := failures[formatID]; ok {
					printError(cmd.ErrOrStderr(), formatID, ferr)
					continue
				}
				for _, o := range snap.Outputs {
					if o.FormatID != formatID {
						continue
					}
					for _, it := range o.Items {
						printResult(out, formatID, it.Content, markdown)
					}
				}
			}
			if len(failures) > 0 {
				return errors.New("some formats failed to generate")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&idea, "idea", "i", "", "the idea to write about")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "format id (repeatable): "+strings.Join(catalog.FormatIDs(), ", "))
	cmd.Flags().StringVarP(&styleID, "style", "s", "", "style id")
	cmd.Flags().StringVarP(&toneID, "tone", "t", "", "tone id (empty for none)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "override the saved API key")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render output as markdown")
	_ = cmd.MarkFlagRequired("idea")

	return cmd
}
