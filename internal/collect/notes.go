package collect

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// notesTimeout bounds a single notes command invocation.
const notesTimeout = 30 * time.Second

// NotesRunner shells out to an external notes CLI to gather free-text
// context for a project. The command receives the project ID as its last
// argument and its stdout becomes the note body.
type NotesRunner struct {
	command string
}

// NewNotesRunner returns a runner for the configured command line. An empty
// command disables note collection.
func NewNotesRunner(command string) *NotesRunner {
	return &NotesRunner{command: command}
}

// Enabled reports whether a notes command is configured.
func (r *NotesRunner) Enabled() bool {
	return strings.TrimSpace(r.command) != ""
}

// FetchNotes runs the notes command for one project and returns its trimmed
// stdout. Stderr is folded into the error on failure.
func (r *NotesRunner) FetchNotes(ctx context.Context, projectID string) (string, error) {
	if !r.Enabled() {
		return "", nil
	}

	fields := strings.Fields(r.command)
	args := append(fields[1:], projectID)

	ctx, cancel := context.WithTimeout(ctx, notesTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, fields[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("notes command failed for %s: %w (%s)", projectID, err, detail)
		}
		return "", fmt.Errorf("notes command failed for %s: %w", projectID, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
