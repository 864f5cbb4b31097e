package confstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/compass/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiProjectFixture = `projects:
  atlas:
    name: Atlas Migration
    status: active
    priority: high
    owner: sam
  borealis:
    name: Borealis Rollout
    status: on_hold
    priority: high
    owner: kim
  cedar:
    name: Cedar Cleanup
    status: active
    priority: low
    owner: sam
`

func newRecordsStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "projects.yaml"), []byte(multiProjectFixture), 0o644))
	return NewStore(root)
}

// TestGetRecord covers the found and not-found branches.
func TestGetRecord(t *testing.T) {
	s := newRecordsStore(t)

	record, err := s.GetRecord(ProjectsKind, "atlas")
	require.NoError(t, err)
	assert.Equal(t, "Atlas Migration", record["name"])

	_, err = s.GetRecord(ProjectsKind, "zephyr")
	var notFound *contract.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "zephyr", notFound.Key)
}

// TestGetAllRecordsFilters verifies the per-field allow-list semantics: every
// filtered field must match for a record to be included.
func TestGetAllRecordsFilters(t *testing.T) {
	s := newRecordsStore(t)

	t.Run("no filters returns everything", func(t *testing.T) {
		records, err := s.GetAllRecords(ProjectsKind, nil)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("single field filter", func(t *testing.T) {
		records, err := s.GetAllRecords(ProjectsKind, map[string][]string{"status": {"active"}})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("all filtered fields must match", func(t *testing.T) {
		records, err := s.GetAllRecords(ProjectsKind, map[string][]string{
			"status": {"active"},
			"owner":  {"kim"},
		})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("allow-list with multiple values", func(t *testing.T) {
		records, err := s.GetAllRecords(ProjectsKind, map[string][]string{"owner": {"sam", "kim"}})
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})
}

// TestUpdateRecord verifies the nested payload reaches the right record only.
func TestUpdateRecord(t *testing.T) {
	s := newRecordsStore(t)

	require.NoError(t, s.UpdateRecord(ProjectsKind, "borealis", Document{"status": "active"}))

	borealis, err := s.GetRecord(ProjectsKind, "borealis")
	require.NoError(t, err)
	assert.Equal(t, "active", borealis["status"])

	atlas, err := s.GetRecord(ProjectsKind, "atlas")
	require.NoError(t, err)
	assert.Equal(t, "active", atlas["status"]) // untouched

	err = s.UpdateRecord(ProjectsKind, "zephyr", Document{"status": "active"})
	var notFound *contract.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

// TestGetProjectTyped verifies the typed decode path.
func TestGetProjectTyped(t *testing.T) {
	s := newRecordsStore(t)

	project, err := s.GetProject("atlas")
	require.NoError(t, err)
	assert.Equal(t, "atlas", project.ID)
	assert.Equal(t, "Atlas Migration", project.Name)
	assert.Equal(t, "sam", project.Owner)
}

// TestGetAllProjectsOrdering verifies deterministic ID order.
func TestGetAllProjectsOrdering(t *testing.T) {
	s := newRecordsStore(t)

	projects, err := s.GetAllProjects(nil)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "atlas", projects[0].ID)
	assert.Equal(t, "borealis", projects[1].ID)
	assert.Equal(t, "cedar", projects[2].ID)
}
