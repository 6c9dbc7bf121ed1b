package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.SortAlphabetical, cfg.SortMode())
	assert.Equal(t, language.Und, cfg.LanguageTag())
	assert.Equal(t, "cinelist.db", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: /tmp/movies.db
view:
  sort: year
  language: sv
viewer:
  command: imv
  args: ["-f"]
logging:
  level: debug
`)
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/movies.db", cfg.Storage.Path)
	assert.Equal(t, domain.SortYear, cfg.SortMode())
	assert.Equal(t, language.Swedish, cfg.LanguageTag())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "imv", cfg.Viewer.Command)
	assert.Equal(t, []string{"-f"}, cfg.Viewer.Args)
	assert.NotEmpty(t, cfg.Logging.File, "unset keys keep their defaults")
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "view:\n  sort: year\n")
	t.Setenv("CINELIST_VIEW_SORT", "alphabetical")
	t.Setenv("CINELIST_STORAGE_PATH", "/tmp/env.db")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.SortAlphabetical, cfg.SortMode())
	assert.Equal(t, "/tmp/env.db", cfg.Storage.Path)
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	_, err := LoadConfigFile(writeConfig(t, "view:\n  sort: rating\n"))
	assert.ErrorContains(t, err, "view.sort")

	_, err = LoadConfigFile(writeConfig(t, "view:\n  language: \"not a tag!\"\n"))
	assert.ErrorContains(t, err, "view.language")

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Storage.Path = "/data/cinelist.db"
	cfg.View.Sort = "year"
	cfg.Viewer.Command = "feh"
	cfg.Viewer.Args = []string{"--scale-down"}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
