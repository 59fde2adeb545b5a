// Package storage persists a task list to a line-oriented text file.
//
// Each task is one record:
//
//	T | 0 | buy milk
//	D | 1 | pay bills | 2025-09-10T23:59
//	E | 0 | trip | 2025-09-01T00:00 | 2025-09-03T23:59
//
// The file is rewritten in full on every save. Loading skips records that fail to
// decode and keeps the rest.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/cathy-go/internal/task"
)

// Storage reads and writes the task file at a fixed path.
type Storage struct {
	path   string
	logger *log.Logger
}

// New returns a Storage for path. A nil logger discards output.
func New(path string, logger *log.Logger) *Storage {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	return &Storage{path: path, logger: logger}
}

// Path returns the task file path.
func (s *Storage) Path() string {
	return s.path
}

// Load reads the task file. A missing file yields an empty list and no error.
// Corrupted records are logged and skipped. When reading fails part way, the
// records decoded so far are returned along with the error; callers must not
// save that list over the file.
func (s *Storage) Load() (*task.List, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return task.NewList(), nil
		}
		return task.NewList(), fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	list, skipped, err := Scan(f)
	for _, le := range skipped {
		s.logger.Warn("skipping corrupted record", "path", s.path, "line", le.Line, "text", le.Text, "err", le.Err)
	}
	if err != nil {
		return list, fmt.Errorf("read task file: %w", err)
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", list.Len(), "skipped", len(skipped))
	return list, nil
}

// Save overwrites the task file with every task in list. The parent directory is
// created if missing. Records go to a temporary file that replaces the destination
// only after a complete write.
func (s *Storage) Save(list *task.List) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if err := Write(tmp, list); err != nil {
		cleanup()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod task file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace task file: %w", err)
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", list.Len())
	return nil
}

// Report summarizes a consistency check of the task file.
type Report struct {
	Path    string
	Exists  bool
	Loaded  int
	Skipped []LineError
}

// OK reports whether every record decoded.
func (r Report) OK() bool {
	return len(r.Skipped) == 0
}

// Check decodes the task file without logging and reports every bad record.
func (s *Storage) Check() (Report, error) {
	report := Report{Path: s.path}
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, nil
		}
		return report, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	report.Exists = true
	list, skipped, err := Scan(f)
	report.Loaded = list.Len()
	report.Skipped = skipped
	if err != nil {
		return report, fmt.Errorf("read task file: %w", err)
	}
	return report, nil
}
