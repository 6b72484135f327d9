package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nativemsg/internal/demo"
	"github.com/jmylchreest/nativemsg/internal/i18n"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

var previewOpts struct {
	shape    string
	kind     string
	title    string
	body     string
	actions  []string
	progress float64
	position string
	dim      bool
	width    int
	height   int
	theme    string
	lang     string
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a single presentation as it appears on screen",
	Long: `Render one presentation, fully shown, over a placeholder screen and print it.

Shapes: ` + strings.Join(demo.Shapes, ", ") + `

Examples:
  nativemsg preview --shape banner --kind success --title "Saved"
  nativemsg preview --shape dialog --title "Delete?" --actions Delete,Cancel
  nativemsg preview --shape progress --title "Uploading" --progress 0.4
  nativemsg preview --shape sheet --title "Share" --actions Copy,Mail,Cancel --lang ar`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	f := previewCmd.Flags()
	f.StringVarP(&previewOpts.shape, "shape", "s", "banner", "Presentation shape")
	f.StringVarP(&previewOpts.kind, "kind", "k", "info", "Kind: success, error, warning, info")
	f.StringVarP(&previewOpts.title, "title", "t", "", "Title text")
	f.StringVarP(&previewOpts.body, "body", "b", "", "Body text")
	f.StringSliceVarP(&previewOpts.actions, "actions", "a", nil, "Button titles, first is primary")
	f.Float64Var(&previewOpts.progress, "progress", 0, "Progress value for the progress shape (0-1)")
	f.StringVarP(&previewOpts.position, "position", "p", "", "Position: top, bottom, center (default from config)")
	f.BoolVar(&previewOpts.dim, "dim", false, "Dim the screen behind the presentation")
	f.IntVar(&previewOpts.width, "width", 80, "Screen width in cells")
	f.IntVar(&previewOpts.height, "height", 20, "Screen height in cells")
	f.StringVar(&previewOpts.theme, "theme", "", "Theme name (default from config)")
	f.StringVar(&previewOpts.lang, "lang", "",
		"Language code, bundled: "+strings.Join(i18n.Languages(), ", ")+" (default from config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	kind, ok := model.ParseKind(previewOpts.kind)
	if !ok {
		return fmt.Errorf("unknown kind %q", previewOpts.kind)
	}

	posName := previewOpts.position
	if posName == "" {
		posName = cfg.Banner.Position
	}
	pos, err := model.ParsePosition(posName)
	if err != nil {
		return err
	}

	themeName := previewOpts.theme
	if themeName == "" {
		themeName = cfg.Theme.Name
	}
	loader := theme.NewLoader(logger)
	loader.LoadTheme(themeName)

	lang := previewOpts.lang
	if lang == "" {
		lang = cfg.Locale.Language
	}

	out, err := demo.Preview(demo.PreviewOptions{
		Shape:     previewOpts.shape,
		Kind:      kind,
		Title:     previewOpts.title,
		Body:      previewOpts.body,
		Actions:   previewOpts.actions,
		Progress:  previewOpts.progress,
		Position:  pos,
		Dim:       previewOpts.dim,
		Width:     previewOpts.width,
		Height:    previewOpts.height,
		Theme:     loader,
		Localizer: i18n.New(lang, cfg.Locale.Dir, logger),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
