// Package local stores images in a directory on a local filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Storage reads and writes files relative to a base directory.
type Storage struct {
	fs      afero.Fs
	baseDir string
}

// NewStorage creates a Storage rooted at baseDir on fs.
// A nil fs means the operating system filesystem.
func NewStorage(fs afero.Fs, baseDir string) *Storage {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Storage{fs: fs, baseDir: baseDir}
}

// Load opens the named file for reading.
func (s *Storage) Load(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := s.fs.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	return f, nil
}

// Save writes src to the named file, replacing any existing content.
// The parent directory must already exist.
// Returns the path of the written file.
func (s *Storage) Save(_ context.Context, name string, src io.Reader) (string, error) {
	dst := s.path(name)

	if _, err := s.fs.Stat(filepath.Dir(dst)); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	f, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return dst, nil
}

// Delete removes the named file.
func (s *Storage) Delete(_ context.Context, name string) error {
	if err := s.fs.Remove(s.path(name)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.baseDir, name)
}
