// Package confstore loads, validates, caches, and atomically updates the
// YAML documents that make up a portfolio (projects, team roster,
// stakeholder profiles).
//
// Readers either see the fully-old or fully-new content of a document,
// never a partial write: updates serialize to a temp file in the same
// directory and replace the original with a single rename. The store does
// NOT provide mutual exclusion between two writer processes; a second
// update racing with the first is last-writer-wins.
package confstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/huangsam/compass/internal/contract"
	"gopkg.in/yaml.v3"
)

// Document is one structured configuration file's parsed content.
type Document = map[string]any

// cacheEntry stores parsed content plus the file's modification time at load.
// An entry is valid iff its stored mtime is >= the file's current mtime.
type cacheEntry struct {
	content Document
	mtime   time.Time
}

// Store owns the document cache for one portfolio root directory.
type Store struct {
	root  string
	clock contract.Clock
	stat  contract.StatFunc

	mu    sync.Mutex
	cache map[string]cacheEntry // keyed by resolved absolute path

	// renameFn is swapped out by tests to inject a rename failure.
	renameFn func(oldpath, newpath string) error
}

// NewStore creates a Store rooted at the given portfolio directory.
func NewStore(root string) *Store {
	return &Store{
		root:     root,
		clock:    contract.SystemClock{},
		stat:     os.Stat,
		cache:    make(map[string]cacheEntry),
		renameFn: os.Rename,
	}
}

// resolve makes path absolute relative to the store root.
func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.root, path)
}

// Load reads one document, optionally validating it against a schema.
//
// With useCache, a valid cache entry is returned without touching disk.
// A missing file yields *contract.NotFoundError, malformed YAML yields
// *contract.ParseError, and a schema violation yields
// *contract.ValidationError listing every violated field. No partially
// validated content is ever returned.
func (s *Store) Load(path string, docSchema *DocSchema, useCache bool) (Document, error) {
	resolved := s.resolve(path)

	info, err := s.stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &contract.NotFoundError{Path: resolved}
		}
		return nil, fmt.Errorf("cannot stat %s: %w", resolved, err)
	}

	if useCache {
		s.mu.Lock()
		entry, ok := s.cache[resolved]
		s.mu.Unlock()
		if ok && !entry.mtime.Before(info.ModTime()) {
			return entry.content, nil
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", resolved, err)
	}

	var content Document
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, &contract.ParseError{Path: resolved, Err: err}
	}
	if content == nil {
		content = Document{}
	}

	if docSchema != nil {
		if violations := docSchema.Validate(content); len(violations) > 0 {
			return nil, &contract.ValidationError{Path: resolved, Violations: violations}
		}
	}

	s.mu.Lock()
	s.cache[resolved] = cacheEntry{content: content, mtime: info.ModTime()}
	s.mu.Unlock()

	return content, nil
}

// Update deep-merges updates into an existing document and replaces the file
// atomically. Updates never create new files. With backup, the current file
// is first copied to <name>.backup.<unix-timestamp> in the same directory;
// on any failure the original is restored from that copy before the error
// propagates, and on success the copy is removed.
func (s *Store) Update(path string, updates Document, docSchema *DocSchema, backup bool) error {
	resolved := s.resolve(path)

	if _, err := s.stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return &contract.NotFoundError{Path: resolved}
		}
		return fmt.Errorf("cannot stat %s: %w", resolved, err)
	}

	backupPath := ""
	if backup {
		backupPath = fmt.Sprintf("%s.backup.%d", resolved, s.clock.Now().Unix())
		if err := copyFile(resolved, backupPath); err != nil {
			return fmt.Errorf("cannot create backup: %w", err)
		}
	}

	if err := s.applyUpdate(resolved, updates, docSchema); err != nil {
		if backupPath != "" {
			// Rename consumes the backup and guarantees the original bytes.
			if restoreErr := os.Rename(backupPath, resolved); restoreErr != nil {
				contract.LogWarn("could not restore backup "+backupPath, restoreErr)
			}
		}
		return err
	}

	s.Invalidate(path)

	if backupPath != "" {
		if err := os.Remove(backupPath); err != nil {
			contract.LogWarn("could not remove backup "+backupPath, err)
		}
	}
	return nil
}

// applyUpdate performs the load-merge-validate-serialize-rename sequence.
// The original file is only touched by the final rename.
func (s *Store) applyUpdate(resolved string, updates Document, docSchema *DocSchema) error {
	// Bypass the cache to avoid merging into stale content.
	current, err := s.Load(resolved, nil, false)
	if err != nil {
		return err
	}

	merged := DeepMerge(current, updates)

	if docSchema != nil {
		if violations := docSchema.Validate(merged); len(violations) > 0 {
			return &contract.ValidationError{Path: resolved, Violations: violations}
		}
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("cannot serialize %s: %w", resolved, err)
	}

	dir := filepath.Dir(resolved)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(resolved)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cannot write temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cannot close temp file %s: %w", tmpPath, err)
	}

	// The only mutation point visible to concurrent readers.
	if err := s.renameFn(tmpPath, resolved); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cannot replace %s: %w", resolved, err)
	}
	return nil
}

// Invalidate drops the cache entry for a path so the next Load re-reads disk.
func (s *Store) Invalidate(path string) {
	resolved := s.resolve(path)
	s.mu.Lock()
	delete(s.cache, resolved)
	s.mu.Unlock()
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
