// Package theme resolves named colour tokens and font roles for presented
// messages. Themes are TOML palettes loaded from ~/.config/nativemsg/themes/
// with embedded fallbacks, and can be hot-reloaded while the host runs.
package theme
