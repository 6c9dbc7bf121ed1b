package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/cinelist/internal/collection"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMovies(t *testing.T) {
	out := renderMovies([]domain.Movie{
		{ID: "1", Title: "Matrix", Year: "1999", Poster: "https://x.com/m.jpg"},
	})
	assert.Contains(t, out, "Matrix")
	assert.Contains(t, out, "1999")
	assert.Contains(t, out, "https://x.com/m.jpg")

	assert.Equal(t, "No movies in your list.", renderMovies(nil))
}

// writeTestConfig points storage and logs into a temp dir
func writeTestConfig(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "cinelist.db")
	cfgPath = filepath.Join(dir, "config.yaml")
	body := "storage:\n  path: " + dbPath + "\nlogging:\n  file: " + filepath.Join(dir, "cinelist.log") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0644))
	return cfgPath, dbPath
}

func seed(t *testing.T, dbPath string, fields ...domain.MovieFields) {
	t.Helper()
	blobs, err := store.NewBoltStore(dbPath)
	require.NoError(t, err)
	defer blobs.Close()

	st := collection.NewStore(store.NewAdapter(blobs))
	require.NoError(t, st.Load())
	for _, f := range fields {
		_, err := st.Add(f)
		require.NoError(t, err)
	}
}

func TestRun_List(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)
	seed(t, dbPath,
		domain.MovieFields{Title: "Matrix", Year: "1999", Poster: "https://x.com/m.jpg"},
		domain.MovieFields{Title: "Inception", Year: "2010", Poster: "https://x.com/i.jpg"},
	)

	var out bytes.Buffer
	require.NoError(t, run(options{configPath: cfgPath, list: true, search: "trix"}, &out))
	assert.Contains(t, out.String(), "Matrix")
	assert.NotContains(t, out.String(), "Inception")

	out.Reset()
	require.NoError(t, run(options{configPath: cfgPath, list: true, sort: "year"}, &out))
	assert.Less(t, strings.Index(out.String(), "Matrix"), strings.Index(out.String(), "Inception"))
}

func TestRun_BadSort(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)
	err := run(options{configPath: cfgPath, list: true, sort: "rating"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_Reset(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)
	seed(t, dbPath, domain.MovieFields{Title: "Matrix", Year: "1999", Poster: "https://x.com/m.jpg"})

	var out bytes.Buffer
	require.NoError(t, run(options{configPath: cfgPath, reset: true}, &out))
	assert.Contains(t, out.String(), "cleared")

	out.Reset()
	require.NoError(t, run(options{configPath: cfgPath, list: true}, &out))
	assert.Contains(t, out.String(), "No movies")
}

func TestRun_CorruptDataStillLists(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)
	blobs, err := store.NewBoltStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, blobs.Put(store.CollectionKey, []byte("not valid data")))
	require.NoError(t, blobs.Close())

	var out bytes.Buffer
	require.NoError(t, run(options{configPath: cfgPath, list: true}, &out))
	assert.Contains(t, out.String(), "No movies")
}
