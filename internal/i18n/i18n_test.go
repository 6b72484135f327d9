package i18n

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse_Flattens(t *testing.T) {
	m, err := Parse([]byte("a:\n  b:\n    c: deep\n  n: 3\ntop: x\n"))
	require.NoError(t, err)
	assert.Equal(t, "deep", m["a.b.c"])
	assert.Equal(t, "3", m["a.n"])
	assert.Equal(t, "x", m["top"])
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("a: [unterminated"))
	assert.Error(t, err)
}

func TestCatalog_English(t *testing.T) {
	c := New("en", "", quietLogger())
	assert.Equal(t, "en", c.Language())
	assert.Equal(t, "OK", c.Localize("common.ok"))
	assert.Equal(t, "Saved", c.Localize("presets.saved.title"))
}

func TestCatalog_ArabicFallsBackPerKey(t *testing.T) {
	c := New("ar", "", quietLogger())
	assert.Equal(t, "ar", c.Language())
	assert.Equal(t, "إلغاء", c.Localize("common.cancel"))
	assert.Equal(t, "تأكيد", c.Localize("presets.delete_confirmation.title"))

	// Not translated in ar.yaml
	assert.False(t, c.Has("progress.percent"))
	assert.Equal(t, "%d%%", c.Localize("progress.percent"))
}

func TestCatalog_MissingKeyReturnsKey(t *testing.T) {
	c := New("en", "", quietLogger())
	assert.Equal(t, "no.such.key", c.Localize("no.such.key"))
}

func TestCatalog_UnknownLanguage(t *testing.T) {
	c := New("xx", t.TempDir(), quietLogger())
	assert.Equal(t, DefaultLanguage, c.Language())
	assert.Equal(t, "OK", c.Localize("common.ok"))

	_, err := Load("xx", "")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestCatalog_UserOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("common:\n  ok: Got it\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.yaml"), []byte("common:\n  ok: Gut\n"), 0o644))

	c := New("en", dir, quietLogger())
	assert.Equal(t, "Got it", c.Localize("common.ok"))
	assert.Equal(t, "Cancel", c.Localize("common.cancel"))

	de := New("de", dir, quietLogger())
	assert.Equal(t, "de", de.Language())
	assert.Equal(t, "Gut", de.Localize("common.ok"))
	assert.Equal(t, "Cancel", de.Localize("common.cancel"))
}

func TestFormat(t *testing.T) {
	c := New("en", "", quietLogger())
	assert.Equal(t, "Email is required.", Format(c, "presets.field_required.body", "Email"))
	assert.Equal(t, "50%", Format(c, "progress.percent", 50))
	assert.Equal(t, "k", Format(nil, "k"))

	f := Func(func(key string) string { return "<" + key + ">" })
	assert.Equal(t, "<x>", f.Localize("x"))
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"ar", "en"}, Languages())
}
