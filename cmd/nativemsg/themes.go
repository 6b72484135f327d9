package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nativemsg/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled themes and user themes from ~/.config/nativemsg/themes.

User themes shadow bundled themes of the same name.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("no user themes directory", "error", err)
		dir = ""
	}

	themes, err := theme.ListAvailableThemes(dir)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, t := range themes {
		marker := " "
		if t.Name == cfg.Theme.Name {
			marker = "*"
		}

		var notes []string
		if t.IsBundled {
			notes = append(notes, "bundled")
		} else {
			notes = append(notes, t.Path)
		}
		if t.IsDefault {
			notes = append(notes, "default")
		}
		fmt.Fprintf(out, "%s %-20s %v\n", marker, t.Name, notes)
	}
	return nil
}
