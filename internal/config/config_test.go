package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/glossd/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, "sqlite", c.Driver())
	assert.Equal(t, DefaultPerPage, c.PerPage())
	assert.Equal(t, query.StrategyAuto, c.Strategy())
	assert.True(t, c.Aliases())
	assert.Zero(t, c.PinnedCollection())
	assert.Empty(t, c.CORSOrigins())
	assert.Equal(t, "#ffe082", c.Colours().HighlightBg)
	assert.False(t, c.IsSet("search.per_page"))
}

func TestSetGet(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("search.per_page", "25"))
	require.NoError(t, c.Set("search.whole_word", "LIKE"))
	require.NoError(t, c.Set("search.aliases", "false"))
	require.NoError(t, c.Set("search.collection", "4"))
	require.NoError(t, c.Set("web.cors_origins", "https://a.example, https://b.example"))
	require.NoError(t, c.Set("display.highlight_bg", "#abc"))

	for key, want := range map[string]string{
		"search.per_page":      "25",
		"search.whole_word":    "like",
		"search.aliases":       "false",
		"search.collection":    "4",
		"display.highlight_bg": "#abc",
	} {
		got, err := c.Get(key)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
		assert.True(t, c.IsSet(key), key)
	}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins())
	assert.Len(t, c.All(), len(ValidKeys()))
}

func TestSetInvalid(t *testing.T) {
	var c Config
	assert.ErrorIs(t, c.Set("search.per_page", "0"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("search.whole_word", "fuzzy"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("search.aliases", "maybe"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("search.collection", "-1"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("log.format", "xml"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("display.primary_color", "blue"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("nope", "x"), ErrUnknownKey)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestLoadSaveLocal(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	c, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, c.Set("web.title", "Biology terms"))
	require.NoError(t, c.Save())
	assert.FileExists(t, filepath.Join(dir, ".glossd", "config.yaml"))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, "Biology terms", loaded.Title())
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, os.MkdirAll(".glossd", 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("search:\n  per_page: 0\n"), 0644))

	_, err = LoadScope(ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
