package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"writemaster-api/internal/workflow/catalog"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
	}
	cmd.AddCommand(
		newPrefsShowCmd(a),
		newPrefsSetKeyCmd(a),
		newPrefsSetStyleCmd(a),
		newPrefsSetToneCmd(a),
		newPrefsToggleFormatCmd(a),
	)
	return cmd
}

func newPrefsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, cleanup, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			s := ws.Controller.Settings()
			tone := "none"
			if t := catalog.ResolveTone(s.ToneID); t != nil {
				tone = t.Name
			}
			names := make([]string, 0, len(s.Formats))
			for _, id := range s.Formats {
				names = append(names, catalog.ResolveFormat(id).Name)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", headingStyle.Render("api key:"), maskKey(s.APIKey))
			fmt.Fprintf(out, "%s %s\n", headingStyle.Render("formats:"), strings.Join(names, ", "))
			fmt.Fprintf(out, "%s %s\n", headingStyle.Render("style:  "), catalog.ResolveStyle(s.StyleID).Name)
			fmt.Fprintf(out, "%s %s\n", headingStyle.Render("tone:   "), tone)
			return nil
		},
	}
}

func newPrefsSetKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Save the Anthropic API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, cleanup, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ws.Controller.SetAPIKey(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("api key saved"))
			return nil
		},
	}
}

func newPrefsSetStyleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-style <style-id>",
		Short: "Save the default style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, ok := catalog.LookupStyle(args[0])
			if !ok {
				return fmt.Errorf("unknown style %q", args[0])
			}
			ws, cleanup, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ws.Controller.SetStyle(cmd.Context(), style.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "style set to %s\n", style.Name)
			return nil
		},
	}
}

func newPrefsSetToneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-tone <tone-id|none>",
		Short: "Save the default tone; selecting the current tone again clears it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toneID := args[0]
			if toneID == "none" {
				toneID = ""
			} else if catalog.ResolveTone(toneID) == nil {
				return fmt.Errorf("unknown tone %q", toneID)
			}
			ws, cleanup, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ws.Controller.SetTone(cmd.Context(), toneID); err != nil {
				return err
			}
			current := "none"
			if t := catalog.ResolveTone(ws.Controller.Settings().ToneID); t != nil {
				current = t.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tone set to %s\n", current)
			return nil
		},
	}
}

func newPrefsToggleFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-format <format-id>",
		Short: "Select or deselect a default format; the last selected format stays selected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := catalog.LookupFormat(args[0]); !ok {
				return fmt.Errorf("unknown format %q", args[0])
			}
			ws, cleanup, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ws.Controller.ToggleFormat(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "formats: %s\n", strings.Join(ws.Controller.Settings().Formats, ", "))
			return nil
		},
	}
}

// maskKey 只保留末四位
func maskKey(key string) string {
	if key == "" {
		return mutedStyle.Render("not set")
	}
	r := []rune(key)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", 8) + string(r[len(r)-4:])
}
