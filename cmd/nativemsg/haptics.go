package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nativemsg/internal/prefs"
)

var hapticsOpts struct {
	quiet bool // Suppress output, return exit code only
}

// hapticsCmd represents the haptics command group.
var hapticsCmd = &cobra.Command{
	Use:   "haptics",
	Short: "Manage the haptic feedback preference",
	Long: `Manage the haptic feedback preference.

When haptics are disabled, presenting a message performs no feedback. The
preference is read whenever a message is shown, so a running demo picks up
changes made here.

Use 'nativemsg haptics status' to check the current state.
Use 'nativemsg haptics on' to enable haptics.
Use 'nativemsg haptics off' to disable haptics.
Use 'nativemsg haptics toggle' to toggle haptics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to showing status
		return hapticsStatusRun(cmd, args)
	},
}

var hapticsOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable haptic feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return hapticsSet(func(bool) bool { return true })
	},
}

var hapticsOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable haptic feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return hapticsSet(func(bool) bool { return false })
	},
}

var hapticsToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle haptic feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return hapticsSet(func(enabled bool) bool { return !enabled })
	},
}

var hapticsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether haptic feedback is enabled",
	RunE:  hapticsStatusRun,
}

func init() {
	hapticsCmd.AddCommand(hapticsOnCmd)
	hapticsCmd.AddCommand(hapticsOffCmd)
	hapticsCmd.AddCommand(hapticsToggleCmd)
	hapticsCmd.AddCommand(hapticsStatusCmd)

	for _, cmd := range []*cobra.Command{hapticsCmd, hapticsOnCmd, hapticsOffCmd, hapticsToggleCmd, hapticsStatusCmd} {
		cmd.Flags().BoolVarP(&hapticsOpts.quiet, "quiet", "q", false,
			"Suppress output, return exit code only (0=on, 1=off)")
	}

	rootCmd.AddCommand(hapticsCmd)
}

func openPrefs() (*prefs.Store, error) {
	path := prefsPath()
	if path == "" {
		return nil, fmt.Errorf("no preferences path available")
	}
	return prefs.Open(path, logger), nil
}

func hapticsSet(next func(enabled bool) bool) error {
	store, err := openPrefs()
	if err != nil {
		if !hapticsOpts.quiet {
			fmt.Fprintf(os.Stderr, "Failed to load preferences: %v\n", err)
		}
		return err
	}

	enabled := next(store.HapticsEnabled())
	if err := store.SetHapticsEnabled(enabled, "cli"); err != nil {
		if !hapticsOpts.quiet {
			fmt.Fprintf(os.Stderr, "Failed to save preferences: %v\n", err)
		}
		return err
	}

	if !hapticsOpts.quiet {
		fmt.Println(hapticsLine(enabled))
	}

	// Exit code: 0=on, 1=off
	if !enabled {
		os.Exit(1)
	}
	return nil
}

func hapticsStatusRun(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		if !hapticsOpts.quiet {
			fmt.Fprintf(os.Stderr, "Failed to load preferences: %v\n", err)
		}
		return err
	}

	p := store.Get()
	if !hapticsOpts.quiet {
		fmt.Println(hapticsLine(p.HapticsEnabled))
		if p.ChangedAt > 0 {
			fmt.Printf("  Last change: %s\n", formatChangeTime(p.ChangedAt))
		}
		if p.ChangedBy != "" {
			fmt.Printf("  Source: %s\n", p.ChangedBy)
		}
		if cfg != nil {
			fmt.Printf("  Backend: %s\n", cfg.Haptics.Backend)
		}
	}

	if !p.HapticsEnabled {
		os.Exit(1)
	}
	return nil
}

func hapticsLine(enabled bool) string {
	if enabled {
		return "Haptics: enabled"
	}
	return "Haptics: disabled"
}

// formatChangeTime formats a Unix timestamp as a relative time.
func formatChangeTime(ts int64) string {
	t := time.Unix(ts, 0)
	return fmt.Sprintf("%s (%s)", humanize.Time(t), t.Format("2006-01-02 15:04:05"))
}
