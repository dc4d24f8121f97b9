package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicetray/internal/settings"
)

func TestDefaults(t *testing.T) {
	p := settings.Defaults()
	assert.Equal(t, "vanilla", p.Skin)
	assert.True(t, p.Sound)
	assert.True(t, p.Vibration)
	assert.True(t, p.ShakeToRoll)
	assert.Equal(t, 1.0, p.DiceSizeModifier)
	assert.NoError(t, p.Validate())
}

func TestFileStore_MissingFileYieldsDefaults(t *testing.T) {
	s := settings.NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"))
	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), p)
}

func TestFileStore_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skin: arcane\nvibration: false\n"), 0644))

	p, err := settings.NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "arcane", p.Skin)
	assert.False(t, p.Vibration)
	assert.True(t, p.Sound)
	assert.Equal(t, 1.0, p.DiceSizeModifier)
}

func TestFileStore_RejectsBadModifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dice_size_modifier: 0\n"), 0644))

	_, err := settings.NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStore_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skin: [unterminated\n"), 0644))

	_, err := settings.NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStore_SaveRefusesInvalid(t *testing.T) {
	s := settings.NewFileStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	p := settings.Defaults()
	p.Skin = ""
	assert.Error(t, s.Save(p))
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestNewFileStore_PanicsOnEmptyPath(t *testing.T) {
	assert.Panics(t, func() { settings.NewFileStore("") })
}

func TestFileStore_SaveLoad_Property(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		want := settings.Preferences{
			Skin:             rapid.SampledFrom([]string{"vanilla", "cosmic", "arcane"}).Draw(rt, "skin"),
			Sound:            rapid.Bool().Draw(rt, "sound"),
			Vibration:        rapid.Bool().Draw(rt, "vibration"),
			ShakeToRoll:      rapid.Bool().Draw(rt, "shake"),
			DiceSizeModifier: rapid.Float64Range(0.25, 4).Draw(rt, "size"),
		}
		s := settings.NewFileStore(filepath.Join(dir, "nested", "prefs.yaml"))
		require.NoError(rt, s.Save(want))
		got, err := s.Load()
		require.NoError(rt, err)
		assert.Equal(rt, want, got)
	})
}
