// Package snapshot records the data directory into git after each
// mutation, when the directory lives inside a repository and snapshots
// are enabled. Every failure here is non-fatal: snapshots are a backup
// trail, not a source of truth.
package snapshot

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Recorder commits files under a data directory.
type Recorder struct {
	dir     string
	enabled bool
}

// New creates a recorder for dir. A disabled recorder swallows every
// Record call.
func New(dir string, enabled bool) *Recorder {
	return &Recorder{dir: dir, enabled: enabled}
}

// Enabled reports whether Record does anything.
func (r *Recorder) Enabled() bool {
	return r.enabled && IsRepo(r.dir)
}

// Record stages the given files and commits them with message. Returns
// nil when disabled, when the directory is not in a git repository, or
// when there is nothing to commit.
func (r *Recorder) Record(message string, files ...string) error {
	if !r.enabled || len(files) == 0 {
		return nil
	}
	root, err := findRepoRoot(r.dir)
	if err != nil {
		return nil
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		return err
	}
	w, err := repo.Worktree()
	if err != nil {
		return err
	}

	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			continue
		}
		if _, err := w.Add(rel); err != nil {
			continue
		}
	}

	status, err := w.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}

	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Quill",
			Email: "quill@local",
		},
	})
	return err
}

// Init initializes a git repository at dir so snapshots can start.
func Init(dir string) error {
	_, err := git.PlainInit(dir, false)
	return err
}

// IsRepo checks whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := findRepoRoot(dir)
	return err == nil
}

// findRepoRoot walks up from path looking for a .git directory.
func findRepoRoot(path string) (string, error) {
	current := path
	if info, err := os.Stat(current); err == nil && !info.IsDir() {
		current = filepath.Dir(current)
	}

	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", os.ErrNotExist
		}
		current = parent
	}
}
