package contract

import (
	"testing"

	"github.com/huangsam/compass/schema"
	"github.com/stretchr/testify/assert"
)

// TestGetPlainLabel checks category labels.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		category schema.HealthCategory
		expected string
	}{
		{schema.ExcellentHealth, "Excellent"},
		{schema.GoodHealth, "Good"},
		{schema.FairHealth, "Fair"},
		{schema.PoorHealth, "Poor"},
		{schema.CriticalHealth, "Critical"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.category))
		})
	}
}

// TestParseBoolString checks the accepted spellings.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// TestTruncateName checks ellipsis behavior and the small-width guard.
func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", TruncateName("short", 10))
	assert.Equal(t, "a-very-...", TruncateName("a-very-long-project-name", 10))
	// widths <= 3 are returned unmodified to avoid slicing errors
	assert.Equal(t, "abcdef", TruncateName("abcdef", 3))
}
