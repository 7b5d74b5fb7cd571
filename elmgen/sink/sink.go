// Package sink provides output destinations for generated code.
package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// OutputSink receives generated file content.
// Implementations MUST be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the specified path.
	// The path is relative; the sink determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes to a directory on an afero filesystem.
type FilesystemSink struct {
	// Fs is the filesystem written to (default: the OS filesystem).
	Fs afero.Fs

	// Root is the base directory for all writes. It is created on demand.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode
}

// NewFsSink creates a FilesystemSink writing to root on fs.
func NewFsSink(fs afero.Fs, root string) *FilesystemSink {
	return &FilesystemSink{
		Fs:   fs,
		Root: root,
		Mode: 0644,
	}
}

// WriteFile writes content to path within the root directory, replacing
// any existing file. It creates parent directories as needed and writes
// through a temp file renamed into place, so readers never observe a
// partial file.
// This method is safe for concurrent use.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return errors.Wrap(err, "resolve root directory")
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return errors.Wrap(err, "resolve path")
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return errors.Newf("path escapes root directory: %q", path)
	}

	dir := filepath.Dir(fullPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create directories")
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := afero.TempFile(fs, dir, ".tselm-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tempPath := tempFile.Name()

	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()

	// Leftover temp files share the .tselm-*.tmp prefix; removal is best effort.
	cleanupTempFile := func() {
		_ = fs.Remove(tempPath)
	}

	if writeErr != nil {
		cleanupTempFile()
		return errors.Wrap(writeErr, "write temp file")
	}
	if closeErr != nil {
		cleanupTempFile()
		return errors.Wrap(closeErr, "close temp file")
	}
	if err := fs.Chmod(tempPath, mode); err != nil {
		cleanupTempFile()
		return errors.Wrap(err, "set file mode")
	}

	if err := ctx.Err(); err != nil {
		cleanupTempFile()
		return err
	}

	if err := fs.Rename(tempPath, fullPath); err != nil {
		cleanupTempFile()
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}

// MemorySink stores generated files in memory.
// All operations are thread-safe.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		files: make(map[string][]byte),
	}
}

// WriteFile writes content to the in-memory store.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	contentCopy := make([]byte, len(content))
	copy(contentCopy, content)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = contentCopy
	return nil
}

// Files returns a copy of all written files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		contentCopy := make([]byte, len(content))
		copy(contentCopy, content)
		result[path] = contentCopy
	}
	return result
}

// ValidatePath checks if a path is valid for output.
// Paths MUST be relative (no leading /), use / as separator,
// not contain .. components, and be clean (no ./, duplicate /).
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive letters (C:, d:) are rejected on every platform.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}

	cleaned := filepath.ToSlash(filepath.Clean(filepath.ToSlash(path)))
	if cleaned != filepath.ToSlash(path) {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
