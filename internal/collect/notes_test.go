package collect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotesRunnerDisabled verifies the empty-command no-op.
func TestNotesRunnerDisabled(t *testing.T) {
	runner := NewNotesRunner("")
	assert.False(t, runner.Enabled())

	notes, err := runner.FetchNotes(context.Background(), "atlas")
	assert.NoError(t, err)
	assert.Empty(t, notes)
}

// TestNotesRunnerFetch runs a real command and captures trimmed stdout.
func TestNotesRunnerFetch(t *testing.T) {
	runner := NewNotesRunner("echo note for")
	require.True(t, runner.Enabled())

	notes, err := runner.FetchNotes(context.Background(), "atlas")
	require.NoError(t, err)
	assert.Equal(t, "note for atlas", notes)
}

// TestNotesRunnerFailure surfaces the command error.
func TestNotesRunnerFailure(t *testing.T) {
	runner := NewNotesRunner("false")
	_, err := runner.FetchNotes(context.Background(), "atlas")
	assert.Error(t, err)
}
