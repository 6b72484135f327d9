package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Loader owns the active theme and resolves tokens against it. Resolution
// falls back to the embedded default palette for tokens the active theme
// does not define. Safe for use from the UI loop and the watcher goroutine.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	themesDir string
	theme     *Theme
	fallback  *Theme
}

// NewLoader creates a new theme loader with the default theme active.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	def := DefaultTheme()
	return &Loader{
		logger:    logger,
		themesDir: themesDir,
		theme:     def,
		fallback:  def,
	}
}

// SetThemesDir overrides the user themes directory.
func (l *Loader) SetThemesDir(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.themesDir = dir
}

// Dir returns the user themes directory in use.
func (l *Loader) Dir() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.themesDir
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "nativemsg", "themes"), nil
}

// LoadTheme loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/nativemsg/themes/<name>.toml)
//  2. Embedded/bundled themes
//  3. The default theme
func (l *Loader) LoadTheme(name string) {
	if name == "" {
		name = DefaultThemeName
	}

	l.mu.RLock()
	dir := l.themesDir
	l.mu.RUnlock()

	if dir != "" {
		path := filepath.Join(dir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err != nil {
				l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
			} else {
				l.set(t)
				l.logger.Info("loaded user theme", "name", name, "path", path)
				return
			}
		}
	}

	if t, found := GetEmbeddedTheme(name); found {
		l.set(t)
		l.logger.Info("loaded bundled theme", "name", name)
		return
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	l.set(DefaultTheme())
}

func (l *Loader) set(t *Theme) {
	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()
}

// Theme returns the currently active theme.
func (l *Loader) Theme() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// Reload re-reads the active theme from disk if it came from a file.
// Returns true if the palette changed.
func (l *Loader) Reload() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.theme.Reload()
}

// ResolveColor implements Resolver.
func (l *Loader) ResolveColor(token Token) (Color, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Fallback{l.theme, l.fallback}.ResolveColor(token)
}

// ResolveFont implements Resolver.
func (l *Loader) ResolveFont(family Family, weight Weight, size int) Font {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme.ResolveFont(family, weight, size)
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool
}

// ListAvailableThemes lists all available themes (bundled + user).
// User themes shadow bundled themes of the same name.
func ListAvailableThemes(themesDir string) ([]ThemeInfo, error) {
	seen := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		seen[name] = len(themes)
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	if themesDir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		name := entry.Name()[:len(entry.Name())-5]
		info := ThemeInfo{Name: name, Path: filepath.Join(themesDir, entry.Name())}
		if i, ok := seen[name]; ok {
			info.IsDefault = themes[i].IsDefault
			themes[i] = info
			continue
		}
		seen[name] = len(themes)
		themes = append(themes, info)
	}

	return themes, nil
}
