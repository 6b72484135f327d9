package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nativemsg/internal/demo"
)

var demoOpts struct {
	noWatch bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive demo",
	Long: `Launch a host screen with a menu of every presentation the engine offers.

Key bindings:
  j/k, ↑/↓    Navigate menu
  enter       Show the selected presentation
  x           Hide everything
  h           Toggle haptics (saved to preferences)
  t           Switch to the next theme
  ?           Show help
  q           Quit

While a dialog or action sheet is open:
  ←/→, tab    Move focus
  enter       Choose the focused action
  1-9         Choose an action by number
  esc         Cancel

Changes to the config file and to the active theme file are applied live.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoOpts.noWatch, "no-watch", false,
		"Do not watch the config file for changes")
}

func runDemo(cmd *cobra.Command, args []string) error {
	watchPath := ""
	if !demoOpts.noWatch {
		path, err := configPath()
		if err == nil {
			watchPath = path
		}
	}

	return demo.Run(demo.RunOptions{
		Config:     cfg,
		ConfigPath: watchPath,
		PrefsPath:  prefsPath(),
		Logger:     logger,
	})
}
