package exporter

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/glossd/internal/importer"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
collections:
  - name: Biology
    owner: 3
    entries:
      - term: Osmosis
        definition: Movement of water across a *membrane*.
        format: markdown
        aliases: [diffusion of water]
      - term: Draft
        definition: not yet reviewed
        approved: false
  - name: Physics
    entries:
      - term: Force
        definition: <p>Mass times acceleration.</p>
`

func setupStore(t *testing.T) *store.SQLStore {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func seeded(t *testing.T) *store.SQLStore {
	t.Helper()
	s := setupStore(t)
	p := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(p, []byte(fixture), 0644))
	var buf bytes.Buffer
	_, err := importer.Run(context.Background(), &buf, s, p, importer.Options{})
	require.NoError(t, err)
	return s
}

func TestRun_Stdout(t *testing.T) {
	s := seeded(t)

	var buf bytes.Buffer
	res, err := Run(context.Background(), &buf, s, Stdout, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Collections)
	assert.Equal(t, 3, res.Entries)
	assert.Equal(t, 1, res.Aliases)

	f, err := importer.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, f.Collections, 2)

	bio := f.Collections[0]
	assert.Equal(t, "Biology", bio.Name)
	assert.Equal(t, int64(3), bio.Owner)
	require.Len(t, bio.Entries, 2)
	// Entries are ordered by term.
	assert.Equal(t, "Draft", bio.Entries[0].Term)
	require.NotNil(t, bio.Entries[0].Approved)
	assert.False(t, *bio.Entries[0].Approved)
	assert.Equal(t, "Osmosis", bio.Entries[1].Term)
	assert.Nil(t, bio.Entries[1].Approved)
	assert.Equal(t, store.FormatMarkdown, bio.Entries[1].Format)
	assert.Equal(t, []string{"diffusion of water"}, bio.Entries[1].Aliases)

	phys := f.Collections[1]
	assert.Zero(t, phys.Owner)
	assert.Empty(t, phys.Entries[0].Format, "html is the default and is omitted")
}

func TestRun_RoundTrip(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	dst := filepath.Join(t.TempDir(), "out", "glossary.json")

	var buf bytes.Buffer
	_, err := Run(ctx, &buf, s, dst, Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Exported: 2 entries <- Biology")

	fresh := setupStore(t)
	_, err = importer.Run(ctx, &buf, fresh, dst, importer.Options{})
	require.NoError(t, err)

	want, err := s.Stats(ctx)
	require.NoError(t, err)
	got, err := fresh.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRun_Filters(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := Run(ctx, &buf, s, Stdout, Options{Owner: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Collections)
	assert.Contains(t, buf.String(), "Biology")
	assert.NotContains(t, buf.String(), "Physics")

	phys, err := s.FindCollection(ctx, 0, "Physics")
	require.NoError(t, err)
	buf.Reset()
	res, err = Run(ctx, &buf, s, Stdout, Options{Owner: 3, CollectionID: phys.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Collections)
	assert.Contains(t, buf.String(), "Physics")

	_, err = Run(ctx, &buf, s, Stdout, Options{Owner: 99})
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestRun_ExistingFile(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	dst := filepath.Join(t.TempDir(), "glossary.yaml")
	require.NoError(t, os.WriteFile(dst, []byte("keep"), 0644))

	var buf bytes.Buffer
	_, err := Run(ctx, &buf, s, dst, Options{})
	assert.ErrorIs(t, err, fs.ErrExist)
	data, _ := os.ReadFile(dst)
	assert.Equal(t, "keep", string(data))

	_, err = Run(ctx, &buf, s, dst, Options{Force: true})
	require.NoError(t, err)
	data, _ = os.ReadFile(dst)
	assert.True(t, strings.HasPrefix(string(data), "collections:"))
}

func TestRun_UnsupportedFormat(t *testing.T) {
	s := seeded(t)

	var buf bytes.Buffer
	_, err := Run(context.Background(), &buf, s, filepath.Join(t.TempDir(), "out.md"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
