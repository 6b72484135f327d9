// Package i18n provides the localized-string lookup used by the presentation
// engine and its presets. Catalogs are YAML files keyed by nested symbolic
// identifiers ("presets.saved.title"); bundled catalogs live in locales/ and a
// user directory may override individual keys.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var bundled embed.FS

// DefaultLanguage is the language every lookup falls back to.
const DefaultLanguage = "en"

// ErrUnknownLanguage is returned when neither a bundled nor a user catalog
// exists for a language.
var ErrUnknownLanguage = errors.New("unknown language")

// Localizer resolves a symbolic key to display text.
type Localizer interface {
	Localize(key string) string
}

// Func adapts a function to the Localizer interface.
type Func func(key string) string

// Localize implements Localizer.
func (f Func) Localize(key string) string { return f(key) }

// Format localizes key and formats it with args.
func Format(l Localizer, key string, args ...any) string {
	if l == nil {
		return key
	}
	return fmt.Sprintf(l.Localize(key), args...)
}

// Catalog is a flattened set of translations for one language with English
// as the fallback. Missing keys resolve to the key itself.
type Catalog struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

// New loads the catalog for lang. userDir, if non-empty, is searched for
// <lang>.yaml whose keys override the bundled ones. An unknown language logs a
// warning and yields the English catalog.
func New(lang, userDir string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	if lang == "" {
		lang = DefaultLanguage
	}

	fallback, err := loadBundled(DefaultLanguage)
	if err != nil {
		logger.Error("failed to load default catalog", "error", err)
		fallback = map[string]string{}
	}

	c := &Catalog{lang: lang, fallback: fallback}

	messages, err := Load(lang, userDir)
	if err != nil {
		logger.Warn("falling back to default language", "language", lang, "error", err)
		c.lang = DefaultLanguage
		messages = fallback
	}
	c.messages = messages
	return c
}

// Load reads the bundled catalog for lang and overlays userDir/<lang>.yaml.
func Load(lang, userDir string) (map[string]string, error) {
	messages, bundledErr := loadBundled(lang)
	if bundledErr != nil {
		messages = map[string]string{}
	}

	found := bundledErr == nil
	if userDir != "" {
		data, err := os.ReadFile(filepath.Join(userDir, lang+".yaml"))
		switch {
		case err == nil:
			overrides, err := Parse(data)
			if err != nil {
				return nil, fmt.Errorf("user catalog %s: %w", lang, err)
			}
			for k, v := range overrides {
				messages[k] = v
			}
			found = true
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	return messages, nil
}

func loadBundled(lang string) (map[string]string, error) {
	data, err := bundled.ReadFile("locales/" + lang + ".yaml")
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML catalog into flattened dotted keys.
func Parse(data []byte) (map[string]string, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Language returns the active language code.
func (c *Catalog) Language() string {
	return c.lang
}

// Localize implements Localizer.
func (c *Catalog) Localize(key string) string {
	if v, ok := c.messages[key]; ok {
		return v
	}
	if v, ok := c.fallback[key]; ok {
		return v
	}
	return key
}

// Has reports whether key is defined in the active language.
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Languages lists the bundled languages.
func Languages() []string {
	entries, err := bundled.ReadDir("locales")
	if err != nil {
		return []string{DefaultLanguage}
	}
	var langs []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, ".yaml") {
			langs = append(langs, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(langs)
	return langs
}
