package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/persist"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (string, *utils.PathResolver, config.DictConfig) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.csv"), []byte("word\ncar\ncat\ntrie\n"), 0644))
	pr, err := utils.NewPathResolver(dir)
	require.NoError(t, err)

	dict := config.DefaultConfig().Dict
	dict.Source = filepath.Join(dir, "words.csv")
	dict.Snapshot = filepath.Join(dir, "words.bin")
	return dir, pr, dict
}

func TestLoadEngineBuildsAndCaches(t *testing.T) {
	_, pr, dict := setup(t)

	e, origin, err := loadEngine(dict, pr)
	require.NoError(t, err)
	assert.Equal(t, dict.Source, origin)
	require.FileExists(t, dict.Snapshot)

	// second start comes from the snapshot
	e2, origin, err := loadEngine(dict, pr)
	require.NoError(t, err)
	assert.Equal(t, dict.Snapshot, origin)
	assert.Equal(t, e.Complete("ca", 5), e2.Complete("ca", 5))
}

func TestLoadEngineCorruptSnapshot(t *testing.T) {
	_, pr, dict := setup(t)
	require.NoError(t, os.WriteFile(dict.Snapshot, []byte("not msgpack"), 0644))

	e, origin, err := loadEngine(dict, pr)
	require.NoError(t, err)
	assert.Equal(t, dict.Source, origin, "rebuilt from source")
	assert.Equal(t, []string{"trie"}, e.Complete("tr", 5))
}

func TestLoadEngineRowStore(t *testing.T) {
	dir, pr, dict := setup(t)
	dict.RowStore = filepath.Join(dir, "words.db")

	store, err := persist.OpenRowStore(dict.RowStore)
	require.NoError(t, err)
	src := suggest.FromWords([]string{"zebra", "zero"}, suggest.DefaultOptions())
	require.NoError(t, src.SaveRows(context.Background(), store))
	require.NoError(t, store.Close())

	e, origin, err := loadEngine(dict, pr)
	require.NoError(t, err)
	assert.Equal(t, dict.RowStore, origin)
	assert.Equal(t, []string{"zebra", "zero"}, e.Complete("ze", 5))
}

func TestLoadEngineEmpty(t *testing.T) {
	_, pr, dict := setup(t)
	dict.Source = filepath.Join(t.TempDir(), "absent.csv")
	dict.Snapshot = ""

	e, origin, err := loadEngine(dict, pr)
	require.NoError(t, err)
	assert.Equal(t, "empty", origin)
	assert.Zero(t, e.Stats()["words"])
}

func TestOverrideDict(t *testing.T) {
	dict := config.DefaultConfig().Dict
	overrideDict(&dict, "w.txt", "", "", "w.db", "nearest")

	assert.Equal(t, "w.txt", dict.Source)
	assert.Equal(t, "word", dict.Column, "empty flags keep config")
	assert.Equal(t, "w.db", dict.RowStore)
	assert.Equal(t, "nearest", dict.Match)
}
