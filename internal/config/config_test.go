//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/countdown/internal/countdown"
)

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c, err := New(path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), c.Data)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "New must not create the file")
}

func TestConfig_NewOrExistingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c, err := NewOrExisting(path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), c.Data)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(b, &raw))
	require.Contains(t, raw, "default")
	require.Contains(t, raw, "ui")
}

func TestConfig_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c, err := NewOrExisting(path)
	require.NoError(t, err)
	c.Data.Default = countdown.Duration{Minutes: 1, Seconds: 30}
	c.Data.UI.Bell = false
	require.NoError(t, c.Save())

	c2, err := NewOrExisting(path)
	require.NoError(t, err)
	require.Equal(t, countdown.Duration{Minutes: 1, Seconds: 30}, c2.Data.Default)
	require.False(t, c2.Data.UI.Bell)
}

func TestConfig_InvalidValuesSelfHeal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("default:\n  minutes: 75\n  seconds: 10\nui:\n  alt_screen: false\n  bell: true\n  tint_color: purple\n  track_color: \"#112233\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	c, err := New(path)
	require.NoError(t, err)
	require.Equal(t, Defaults().Default, c.Data.Default)
	require.Equal(t, Defaults().UI.TintColor, c.Data.UI.TintColor)
	require.Equal(t, "#112233", c.Data.UI.TrackColor)
	require.False(t, c.Data.UI.AltScreen)

	// healed values were written back
	c2, err := New(path)
	require.NoError(t, err)
	require.Equal(t, c.Data, c2.Data)
}

func TestConfig_SaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := New(path)
	require.NoError(t, err)

	c.Data.Default.Seconds = 60
	require.Error(t, c.Save())
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/.config/countdown/config.yaml")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "countdown", "config.yaml"), got)

	got, err = expandTilde("/tmp/x.yaml")
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.yaml", got)
}
