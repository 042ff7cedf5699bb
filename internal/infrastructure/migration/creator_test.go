package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/migrations"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"add users table":        "add_users_table",
		"Add-Users-Table":        "add_users_table",
		"  Tile coverage 2024  ": "tile_coverage_2024",
		"special!chars":          "special_chars",
		"":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), in)
	}
}

func TestCreate_Sequential(t *testing.T) {
	dir := t.TempDir()

	first, err := Create(dir, "add lead source", "Track where a lead came from")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_lead_source.up.sql"), first.UpPath)

	body, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "add lead source (up)")
	assert.Contains(t, string(body), "Track where a lead came from")

	second, err := Create(dir, "index invoices", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.Version)
	assert.FileExists(t, second.DownPath)

	_, err = Create(dir, "!!!", "")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000010_b.up.sql", "000010_b.down.sql", "000002_a.up.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := List(os.DirFS(dir))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, uint64(2), files[0].Version)
	assert.Empty(t, files[0].DownPath)
	assert.Equal(t, "b", files[1].Name)
	assert.Equal(t, "000010_b.down.sql", files[1].DownPath)

	files, err = List(os.DirFS(filepath.Join(dir, "missing")))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestEmbeddedSchemaIsComplete(t *testing.T) {
	files, err := List(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for i, f := range files {
		assert.Equal(t, uint64(i+1), f.Version, "versions are contiguous")
		assert.NotEmpty(t, f.UpPath, f.Name)
		assert.NotEmpty(t, f.DownPath, f.Name)
	}
}
