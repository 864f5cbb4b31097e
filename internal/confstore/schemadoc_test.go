package confstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDocSchemaValidate covers field presence, type, enum, and date checks.
func TestDocSchemaValidate(t *testing.T) {
	ds := ProjectsSchema()

	t.Run("valid record", func(t *testing.T) {
		doc := Document{"projects": Document{"atlas": Document{
			"name":       "Atlas",
			"status":     "active",
			"priority":   "high",
			"start_date": "2026-01-01",
			"milestones": []any{},
		}}}
		assert.Empty(t, ds.Validate(doc))
	})

	t.Run("missing root key", func(t *testing.T) {
		violations := ds.Validate(Document{"team": Document{}})
		assert.Len(t, violations, 1)
	})

	t.Run("collects every violation", func(t *testing.T) {
		doc := Document{"projects": Document{"atlas": Document{
			"status":     "bogus",        // enum violation
			"priority":   42,             // type violation
			"start_date": "01/01/2026",   // date violation
			"milestones": "not-a-list",   // type violation
		}}}
		violations := ds.Validate(doc)
		// plus the missing required name field
		assert.Len(t, violations, 5)
	})

	t.Run("record must be a mapping", func(t *testing.T) {
		doc := Document{"projects": Document{"atlas": "just-a-string"}}
		violations := ds.Validate(doc)
		assert.Len(t, violations, 1)
	})
}
