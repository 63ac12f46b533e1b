package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, 640, s.Window.Width)
	assert.Equal(t, 32.0, s.Window.Scale)
	assert.Equal(t, 60, s.Sim.TPS)
	assert.Equal(t, "scout", s.Content.Scout)
	assert.Equal(t, "arena", s.Content.Stage)
	assert.True(t, s.Content.HotReload)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	data := []byte(`
window:
  scale: 48
sim:
  tps: 120
  record: out.json
content:
  stage: ledges
  hot_reload: false
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 48.0, s.Window.Scale)
	assert.Equal(t, 120, s.Sim.TPS)
	assert.Equal(t, "out.json", s.Sim.Record)
	assert.Equal(t, "ledges", s.Content.Stage)
	assert.False(t, s.Content.HotReload)
	assert.Equal(t, 360, s.Window.Height, "unset keys keep defaults")
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("SCOUT_CONTENT_SCOUT", "brute")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "brute", s.Content.Scout)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sim: {tps: 0}\n"), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
