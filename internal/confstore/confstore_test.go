package confstore

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/compass/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectsFixture = `projects:
  atlas:
    name: Atlas Migration
    status: active
    priority: high
    owner: sam
    start_date: "2026-01-01"
    target_date: "2026-06-30"
`

// newTestStore writes the fixture into a temp portfolio root.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "projects.yaml"), []byte(projectsFixture), 0o644))
	return NewStore(root)
}

// hashFile returns the sha256 of a file's bytes.
func hashFile(t *testing.T, path string) [32]byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return sha256.Sum256(data)
}

// TestLoadNotFound verifies the typed error for missing files.
func TestLoadNotFound(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Load("missing.yaml", nil, true)

	var notFound *contract.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Path, "missing.yaml")
}

// TestLoadParseError verifies malformed YAML surfaces as a ParseError.
func TestLoadParseError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.yaml"), []byte("projects: [unclosed"), 0o644))
	s := NewStore(root)

	_, err := s.Load("bad.yaml", nil, true)
	var parseErr *contract.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotNil(t, parseErr.Unwrap())
}

// TestLoadCacheCoherence covers the mtime-based invalidation invariant: a
// cached entry is served while the file is unchanged, and a newer mtime on
// disk forces a fresh parse.
func TestLoadCacheCoherence(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.root, "projects.yaml")

	first, err := s.Load("projects.yaml", nil, true)
	require.NoError(t, err)

	// Rewrite the file bytes but roll the mtime backwards: the cache entry
	// is still considered valid, so the old content must be returned.
	stale := time.Now().Add(-time.Hour)
	require.NoError(t, os.WriteFile(path, []byte("projects: {}\n"), 0o644))
	require.NoError(t, os.Chtimes(path, stale, stale))

	cached, err := s.Load("projects.yaml", nil, true)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	// Advance the mtime past the cached one: the next load must re-read.
	fresh := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, fresh, fresh))

	reloaded, err := s.Load("projects.yaml", nil, true)
	require.NoError(t, err)
	assert.NotEqual(t, first, reloaded)
	assert.Empty(t, reloaded["projects"])
}

// TestLoadBypassCache verifies useCache=false always re-reads the file.
func TestLoadBypassCache(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.root, "projects.yaml")

	_, err := s.Load("projects.yaml", nil, true)
	require.NoError(t, err)

	stale := time.Now().Add(-time.Hour)
	require.NoError(t, os.WriteFile(path, []byte("projects: {}\n"), 0o644))
	require.NoError(t, os.Chtimes(path, stale, stale))

	reloaded, err := s.Load("projects.yaml", nil, false)
	require.NoError(t, err)
	assert.Empty(t, reloaded["projects"])
}

// TestLoadValidationError verifies every violation is reported in one pass.
func TestLoadValidationError(t *testing.T) {
	root := t.TempDir()
	doc := `projects:
  atlas:
    status: bogus
    priority: high
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "projects.yaml"), []byte(doc), 0o644))
	s := NewStore(root)

	_, err := s.Load("projects.yaml", ProjectsSchema(), true)
	var validationErr *contract.ValidationError
	require.ErrorAs(t, err, &validationErr)
	// missing name plus the bad status enum, both in a single error
	assert.Len(t, validationErr.Violations, 2)
}

// TestUpdateMissingFile verifies updates never create new files.
func TestUpdateMissingFile(t *testing.T) {
	s := NewStore(t.TempDir())
	err := s.Update("missing.yaml", Document{"a": 1}, nil, true)

	var notFound *contract.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

// TestUpdateMergesAndInvalidates verifies the merge result lands on disk and
// the cache entry is refreshed on the next load.
func TestUpdateMergesAndInvalidates(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load("projects.yaml", nil, true)
	require.NoError(t, err)

	updates := Document{
		"projects": Document{
			"atlas": Document{"status": "on_hold"},
		},
	}
	require.NoError(t, s.Update("projects.yaml", updates, ProjectsSchema(), true))

	doc, err := s.Load("projects.yaml", nil, true)
	require.NoError(t, err)
	atlas, _ := toDocument(mustRecord(t, doc, "projects", "atlas"))
	assert.Equal(t, "on_hold", atlas["status"])
	assert.Equal(t, "Atlas Migration", atlas["name"]) // untouched field survives

	// backup is cleaned up after a successful update
	entries, err := os.ReadDir(s.root)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".backup.")
	}
}

// TestUpdateAtomicRollback forces a failure between merge and rename and
// verifies the original file bytes are untouched afterwards.
func TestUpdateAtomicRollback(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.root, "projects.yaml")
	before := hashFile(t, path)

	injected := errors.New("injected rename failure")
	s.renameFn = func(oldpath, newpath string) error { return injected }

	err := s.Update("projects.yaml", Document{"projects": Document{"atlas": Document{"owner": "kim"}}}, nil, true)
	require.ErrorIs(t, err, injected)

	assert.Equal(t, before, hashFile(t, path))

	// rollback consumed the backup
	entries, readErr := os.ReadDir(s.root)
	require.NoError(t, readErr)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".backup.")
	}
}

// TestUpdateValidationRollback verifies a schema violation on the merged
// content leaves the original file in place.
func TestUpdateValidationRollback(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.root, "projects.yaml")
	before := hashFile(t, path)

	updates := Document{"projects": Document{"atlas": Document{"status": "bogus"}}}
	err := s.Update("projects.yaml", updates, ProjectsSchema(), true)

	var validationErr *contract.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, before, hashFile(t, path))
}

// mustRecord digs one record out of a nested document.
func mustRecord(t *testing.T, doc Document, rootKey, id string) any {
	t.Helper()
	records, ok := toDocument(doc[rootKey])
	require.True(t, ok)
	raw, ok := records[id]
	require.True(t, ok)
	return raw
}
