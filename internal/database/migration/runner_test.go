package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"portfolio-api/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SortsAndChecksums(t *testing.T) {
	src := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("  SELECT 1;\n")},
		"README.md":      {Data: []byte("ignored")},
	}

	migs, err := Runner{FS: src}.Load()
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "first", migs[0].Name)
	assert.Equal(t, "SELECT 1;", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
}

func TestLoad_DuplicateVersion(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := Runner{FS: src}.Load()
	assert.ErrorContains(t, err, "duplicate migration version")
}

func TestLoad_EmptyFile(t *testing.T) {
	src := fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}}
	_, err := Runner{FS: src}.Load()
	assert.ErrorContains(t, err, "empty migration file")
}

func TestLoad_DirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "V9__disk.sql"), []byte("SELECT 9;"), 0o600))

	migs, err := Runner{Dir: dir, FS: migrations.FS}.Load()
	require.NoError(t, err)
	require.Len(t, migs, 1)
	assert.Equal(t, "disk", migs[0].Name)
}

func TestLoad_MissingDir(t *testing.T) {
	migs, err := Runner{Dir: filepath.Join(t.TempDir(), "nope")}.Load()
	require.NoError(t, err)
	assert.Empty(t, migs)
}

func TestLoad_MissingDirFallsBackToFS(t *testing.T) {
	migs, err := Runner{Dir: filepath.Join(t.TempDir(), "nope"), FS: migrations.FS}.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, migs)
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := Runner{FS: migrations.FS}.Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(migs), 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS work_experience")
	assert.Contains(t, migs[1].SQL, "SET NOT NULL")
	assert.NotContains(t, migs[1].SQL, "DELETE FROM profile")
	assert.Contains(t, migs[1].SQL, "RAISE EXCEPTION")
}
