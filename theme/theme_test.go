package theme_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hemahemapathi/health-management-client/theme"
)

func TestDefaultsWithoutPersistedPreference(t *testing.T) {
	t.Run("no detector", func(t *testing.T) {
		svc := theme.New(t.TempDir(), nil)
		prefs := svc.Current()
		require.Equal(t, theme.Light, prefs.Theme)
		require.Equal(t, theme.FontMedium, prefs.FontSize)
	})

	t.Run("detector prefers dark", func(t *testing.T) {
		svc := theme.New(t.TempDir(), func() bool { return true })
		require.Equal(t, theme.Dark, svc.Current().Theme)
	})

	t.Run("detector prefers light", func(t *testing.T) {
		svc := theme.New(t.TempDir(), func() bool { return false })
		require.Equal(t, theme.Light, svc.Current().Theme)
	})
}

func TestPersistedPreferenceWinsOverDetector(t *testing.T) {
	dir := t.TempDir()

	first := theme.New(dir, func() bool { return false })
	first.SetTheme(theme.Dark)
	first.SetFontSize(theme.FontLarge)

	second := theme.New(dir, func() bool { return false })
	prefs := second.Current()
	require.Equal(t, theme.Dark, prefs.Theme)
	require.Equal(t, theme.FontLarge, prefs.FontSize)
}

func TestToggle(t *testing.T) {
	svc := theme.New(t.TempDir(), nil)
	svc.Toggle()
	require.Equal(t, theme.Dark, svc.Current().Theme)
	svc.Toggle()
	require.Equal(t, theme.Light, svc.Current().Theme)
}

func TestUnknownValuesIgnored(t *testing.T) {
	svc := theme.New(t.TempDir(), nil)
	svc.SetTheme(theme.Theme("sepia"))
	svc.SetFontSize(theme.FontSize("huge"))
	prefs := svc.Current()
	require.Equal(t, theme.Light, prefs.Theme)
	require.Equal(t, theme.FontMedium, prefs.FontSize)
}

func TestMalformedPreferencesFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.yaml"), []byte("{not yaml"), 0o600))

	svc := theme.New(dir, nil)
	require.Equal(t, theme.Light, svc.Current().Theme)
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	svc := theme.New(t.TempDir(), nil)

	var seen []theme.Preferences
	unsubscribe := svc.Subscribe(func(p theme.Preferences) {
		seen = append(seen, p)
	})

	svc.SetTheme(theme.Dark)
	require.Len(t, seen, 1)
	require.Equal(t, theme.Dark, seen[0].Theme)

	unsubscribe()
	svc.SetFontSize(theme.FontSmall)
	require.Len(t, seen, 1)
}
