package adapter

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// LogEntry is the block of lines one mutant contributes to each log.
// Empty slices leave the corresponding log untouched.
type LogEntry struct {
	Run         []string
	Error       []string
	Crash       []string
	Diagnostics []byte // raw target stderr appended after the crash lines
}

// LogSink appends entries to the run, error and crash logs of a run.
type LogSink interface {
	// Append writes entry as one uninterrupted block per log.
	Append(entry LogEntry) error
	Files() m.LogFiles
	Close() error
}

// FileLogSink is an append-only LogSink backed by three text files.
// The error and crash logs are only created once something is written to them.
type FileLogSink struct {
	mu     sync.Mutex
	files  m.LogFiles
	run    *os.File
	errs   *os.File
	crash  *os.File
	closed bool
}

// OpenFileLogSink opens (creating if needed) the run log of files.
func OpenFileLogSink(files m.LogFiles) (*FileLogSink, error) {
	run, err := openAppend(files.Run)
	if err != nil {
		return nil, err
	}

	return &FileLogSink{files: files, run: run}, nil
}

// Files returns the paths of the three logs.
func (s *FileLogSink) Files() m.LogFiles {
	return s.files
}

// Append writes entry to the logs it targets.
func (s *FileLogSink) Append(entry LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("log sink closed")
	}

	if err := writeLines(s.run, entry.Run, nil); err != nil {
		return fmt.Errorf("failed to write run log: %w", err)
	}

	if len(entry.Error) > 0 {
		if s.errs == nil {
			f, err := openAppend(s.files.Error)
			if err != nil {
				return err
			}

			s.errs = f
		}

		if err := writeLines(s.errs, entry.Error, nil); err != nil {
			return fmt.Errorf("failed to write error log: %w", err)
		}
	}

	if len(entry.Crash) > 0 {
		if s.crash == nil {
			f, err := openAppend(s.files.Crash)
			if err != nil {
				return err
			}

			s.crash = f
		}

		if err := writeLines(s.crash, entry.Crash, entry.Diagnostics); err != nil {
			return fmt.Errorf("failed to write crash log: %w", err)
		}
	}

	return nil
}

// Close flushes and closes every open log. It is safe to call more than once.
func (s *FileLogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	var errs []error

	for _, f := range []*os.File{s.run, s.errs, s.crash} {
		if f == nil {
			continue
		}

		if err := f.Sync(); err != nil {
			errs = append(errs, err)
		}

		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func openAppend(path m.Path) (*os.File, error) {
	// #nosec G304 - log paths are derived from the configured output directory
	f, err := os.OpenFile(string(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", path, err)
	}

	return f, nil
}

func writeLines(f *os.File, lines []string, trailer []byte) error {
	if len(lines) == 0 {
		return nil
	}

	var b strings.Builder

	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if len(trailer) > 0 {
		b.Write(trailer)

		if trailer[len(trailer)-1] != '\n' {
			b.WriteByte('\n')
		}
	}

	_, err := f.WriteString(b.String())

	return err
}

// LogSinkOpener opens the log sink of a run.
type LogSinkOpener func(files m.LogFiles) (LogSink, error)

// OpenLogSink is the file-backed LogSinkOpener.
func OpenLogSink(files m.LogFiles) (LogSink, error) {
	sink, err := OpenFileLogSink(files)
	if err != nil {
		return nil, err
	}

	return sink, nil
}
