package state

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the watermark in a single plain-text file holding an
// ISO-8601 date.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (time.Time, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Watermark file unreadable, treating as absent", "path", s.path, "error", err)
		}
		return time.Time{}, false
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return time.Time{}, false
	}

	date, err := time.Parse(DateFormat, content)
	if err != nil {
		// Legacy bulletin-number content lands here as well; fail open.
		slog.Warn("Watermark file malformed, treating as absent", "path", s.path, "content", content)
		return time.Time{}, false
	}

	return date, true
}

func (s *FileStore) Save(date time.Time) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".watermark-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.WriteString(date.Format(DateFormat) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write watermark: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace watermark file: %w", err)
	}

	return nil
}
