package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

type mapResolver map[theme.Token]theme.Color

func (m mapResolver) ResolveColor(t theme.Token) (theme.Color, bool) {
	c, ok := m[t]
	return c, ok
}

func (m mapResolver) ResolveFont(_ theme.Family, w theme.Weight, _ int) theme.Font {
	return theme.Font{Bold: w >= theme.WeightSemibold}
}

func TestStandardKinds(t *testing.T) {
	tests := []struct {
		kind   Standard
		token  theme.Token
		icon   Icon
		signal haptic.Signal
	}{
		{Success, theme.TokenSuccess, IconSuccess, haptic.Success},
		{Error, theme.TokenError, IconError, haptic.Error},
		{Warning, theme.TokenWarning, IconWarning, haptic.Warning},
		{Info, theme.TokenInfo, IconInfo, haptic.Light},
		{Loading, theme.TokenLoading, IconLoading, haptic.None},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.token, tt.kind.Token())
			assert.Equal(t, tt.icon, tt.kind.Icon())
			assert.Equal(t, tt.signal, tt.kind.Haptic())

			parsed, ok := ParseKind(tt.kind.String())
			assert.True(t, ok)
			assert.Equal(t, tt.kind, parsed)
		})
	}

	_, ok := ParseKind("custom")
	assert.False(t, ok)
}

func TestParsePosition(t *testing.T) {
	for _, p := range []Position{Top, Bottom, Center} {
		got, err := ParsePosition(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePosition("left")
	assert.Error(t, err)
}

func TestDefaultPresentationConfig(t *testing.T) {
	c := DefaultPresentationConfig()
	assert.Equal(t, 3*time.Second, c.Duration)
	assert.Equal(t, Top, c.Position)
	assert.True(t, c.Interactive)
	assert.True(t, c.HapticEnabled)
	assert.False(t, c.DimBackground)
	assert.False(t, c.ShowActionButton)
	assert.False(t, c.Persistent())
}

func TestToastConfig(t *testing.T) {
	c := DefaultToastConfig().Presentation()
	assert.Equal(t, 2*time.Second, c.Duration)
	assert.Equal(t, Bottom, c.Position)
	assert.False(t, c.DimBackground)
	assert.False(t, c.ShowActionButton)

	// Toasts never persist
	c = ToastConfig{Duration: 0, Position: Top}.Presentation()
	assert.Equal(t, 2*time.Second, c.Duration)
}

func TestBuildConfig(t *testing.T) {
	base := DefaultPresentationConfig()

	c := BuildConfig(base, Loading)
	assert.True(t, c.Persistent())
	assert.False(t, c.Interactive)

	c = BuildConfig(base, Loading, WithDuration(5*time.Second))
	assert.Equal(t, 5*time.Second, c.Duration)
	assert.False(t, c.Interactive)

	c = BuildConfig(base, Success,
		WithPosition(Bottom),
		WithPersist(),
		WithDim(true),
		WithInteractive(false),
		WithHaptics(false),
		WithCornerRadius(-4),
		WithActionButton(true),
		nil,
	)
	assert.Equal(t, Bottom, c.Position)
	assert.True(t, c.Persistent())
	assert.True(t, c.DimBackground)
	assert.False(t, c.Interactive)
	assert.False(t, c.HapticEnabled)
	assert.Equal(t, 0, c.CornerRadius)
	assert.True(t, c.ShowActionButton)

	// Base is untouched
	assert.Equal(t, Top, base.Position)
}

func TestResolve_Standard(t *testing.T) {
	r := mapResolver{theme.TokenSuccess: "#00AA00", theme.TokenOnAccent: "#FFFFFF"}
	s := Resolve("Saved", "", Success, DefaultPresentationConfig(), r)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, theme.Color("#00AA00"), s.Background)
	assert.Equal(t, theme.Color("#FFFFFF"), s.Foreground)
	assert.Equal(t, IconSuccess, s.Icon)
	assert.Equal(t, haptic.Success, s.Haptic)
	assert.False(t, s.Spinner)
	assert.False(t, s.Fallback)
	assert.True(t, s.TitleFont.Bold)
	assert.False(t, s.BodyFont.Bold)
}

func TestResolve_ReadsThemeEveryTime(t *testing.T) {
	r := mapResolver{theme.TokenInfo: "#000001"}
	first := Resolve("a", "", Info, DefaultPresentationConfig(), r)
	r[theme.TokenInfo] = "#000002"
	second := Resolve("a", "", Info, DefaultPresentationConfig(), r)

	assert.Equal(t, theme.Color("#000001"), first.Background)
	assert.Equal(t, theme.Color("#000002"), second.Background)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestResolve_UnresolvableTokenUsesBuiltin(t *testing.T) {
	s := Resolve("x", "", Error, DefaultPresentationConfig(), mapResolver{})
	assert.True(t, s.Fallback)
	assert.Equal(t, builtinColors[theme.TokenError], s.Background)

	s = Resolve("x", "", Error, DefaultPresentationConfig(), nil)
	assert.NotEmpty(t, s.Background)
	assert.True(t, s.TitleFont.Bold)
}

func TestResolve_Loading(t *testing.T) {
	s := Resolve("Loading", "", Loading, BuildConfig(DefaultPresentationConfig(), Loading), nil)
	assert.True(t, s.Spinner)
	assert.Equal(t, haptic.None, s.Haptic)
	assert.True(t, s.Config.Persistent())
}

func TestResolve_HapticsDisabled(t *testing.T) {
	s := Resolve("x", "", Error, BuildConfig(DefaultPresentationConfig(), Error, WithHaptics(false)), nil)
	assert.Equal(t, haptic.None, s.Haptic)
}

func TestResolve_Custom(t *testing.T) {
	r := mapResolver{"brand": "#FF00FF", "brand_text": "#010101", theme.TokenInfo: "#0000FF"}

	s := Resolve("x", "", Custom{Background: "brand", Text: "brand_text", Icon: IconStar}, DefaultPresentationConfig(), r)
	assert.False(t, s.Fallback)
	assert.Equal(t, theme.Color("#FF00FF"), s.Background)
	assert.Equal(t, theme.Color("#010101"), s.Foreground)
	assert.Equal(t, IconStar, s.Icon)
	assert.Equal(t, "custom", s.Kind.String())

	// Missing everything falls back to info visuals
	s = Resolve("x", "", Custom{}, DefaultPresentationConfig(), r)
	assert.True(t, s.Fallback)
	assert.Equal(t, theme.Color("#0000FF"), s.Background)
	assert.Equal(t, IconInfo, s.Icon)

	// Unknown token
	s = Resolve("x", "", Custom{Background: "nope", Icon: IconBell}, DefaultPresentationConfig(), r)
	assert.True(t, s.Fallback)
	assert.Equal(t, theme.Color("#0000FF"), s.Background)
	assert.Equal(t, IconBell, s.Icon)
}

func TestEmphasis(t *testing.T) {
	assert.Equal(t, theme.TokenPrimary, PrimaryAction("a", nil).Emphasis.Token())
	assert.Equal(t, theme.TokenNeutral, SecondaryAction("a", nil).Emphasis.Token())
	assert.Equal(t, theme.TokenDestructive, DestructiveAction("a", nil).Emphasis.Token())
	assert.Equal(t, "destructive", Destructive.String())
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, string(a), 26)

	ts, ok := a.Time()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	_, ok = ID("bogus").Time()
	assert.False(t, ok)
}
