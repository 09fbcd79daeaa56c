// Package adapter contains the infrastructure adapters of the harness:
// filesystem, documents, target process, logs and the results store.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// FSAdapter abstracts filesystem operations that the domain layer relies on
// when preparing a run. It hides direct `os` access so the workflow logic can
// be tested without touching the disk.
type FSAdapter interface {
	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path m.Path) error

	// ResetDir deletes path with all its contents and recreates it empty.
	ResetDir(path m.Path) error

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// UniqueLogFiles picks run, error and crash log names inside dir that do not
	// collide with the logs of an earlier run.
	UniqueLogFiles(dir m.Path, runLogName string) (m.LogFiles, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalFSAdapter is the os-backed FSAdapter.
type LocalFSAdapter struct{}

// NewLocalFSAdapter constructs a LocalFSAdapter instance ready to be wired
// into the workflow.
func NewLocalFSAdapter() *LocalFSAdapter {
	return &LocalFSAdapter{}
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// MkdirAll creates path and any missing parents.
func (a *LocalFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// ResetDir deletes path with all its contents and recreates it empty.
func (a *LocalFSAdapter) ResetDir(path m.Path) error {
	if err := os.RemoveAll(string(path)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	if err := os.MkdirAll(string(path), 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	return nil
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// JoinPath joins path elements into a single path.
func (a *LocalFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// UniqueLogFiles splits runLogName into a numeric counter and a suffix
// ("000_LOG.txt" -> 0, "LOG", ".txt") and increments the counter until no
// run log with that number exists in dir. The error and crash logs share the
// chosen counter: NNN_ERROR.txt and NNN_CRASH.txt.
func (a *LocalFSAdapter) UniqueLogFiles(dir m.Path, runLogName string) (m.LogFiles, error) {
	counter, name, ext := splitLogName(runLogName)

	for {
		runLog := filepath.Join(string(dir), fmt.Sprintf("%03d_%s%s", counter, name, ext))

		_, err := os.Stat(runLog)
		if os.IsNotExist(err) {
			return m.LogFiles{
				Run:   m.Path(runLog),
				Error: m.Path(filepath.Join(string(dir), fmt.Sprintf("%03d_ERROR%s", counter, ext))),
				Crash: m.Path(filepath.Join(string(dir), fmt.Sprintf("%03d_CRASH%s", counter, ext))),
			}, nil
		}

		if err != nil {
			return m.LogFiles{}, fmt.Errorf("failed to check log %s: %w", runLog, err)
		}

		counter++
	}
}

// splitLogName parses "NNN_NAME.ext". A name without a numeric prefix starts
// counting at zero and keeps its whole base as NAME.
func splitLogName(runLogName string) (int, string, string) {
	base := filepath.Base(runLogName)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	prefix, rest, found := strings.Cut(stem, "_")
	if found {
		if counter, err := strconv.Atoi(prefix); err == nil && counter >= 0 {
			return counter, rest, ext
		}
	}

	if stem == "" {
		stem = "LOG"
	}

	return 0, stem, ext
}
