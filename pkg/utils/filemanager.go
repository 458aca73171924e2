// =============================================================================
// Branch Sales Aggregator - File Manager Utility
// =============================================================================
//
// This module provides the file access used by every stage of a run:
//   - Regular file existence checks
//   - Directory listing filtered by file name
//   - Scoped line reading (the handle is closed on every exit path)
//   - Atomic writes (temporary sibling, then rename)
//
// All access goes through an afero.Fs so runs can be exercised against an
// in-memory filesystem. Errors are returned as plain wrapped errors; callers
// decide which failure kind they map to.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// maxLineSize bounds a single line read by ReadLines.
const maxLineSize = 1024 * 1024

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations inside one directory.
type FileManager struct {
	// Fs is the filesystem all operations go through.
	Fs afero.Fs

	// Dir is the directory names are resolved against.
	Dir string
}

// NewFileManager creates a FileManager rooted at dir.
// A nil fs means the host filesystem.
func NewFileManager(fs afero.Fs, dir string) *FileManager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileManager{
		Fs:  fs,
		Dir: dir,
	}
}

// Path joins name onto the managed directory.
func (fm *FileManager) Path(name string) string {
	return filepath.Join(fm.Dir, name)
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// IsRegularFile reports whether name exists and is a regular file.
// Symbolic links are followed.
func (fm *FileManager) IsRegularFile(name string) (bool, error) {
	info, err := fm.Fs.Stat(fm.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// ListRegularFiles returns the base names of the regular files in the
// directory accepted by match, in lexical order.
func (fm *FileManager) ListRegularFiles(match func(name string) bool) ([]string, error) {
	infos, err := afero.ReadDir(fm.Fs, fm.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fm.Dir, err)
	}

	var names []string
	for _, info := range infos {
		name := info.Name()
		if !match(name) {
			continue
		}
		regular, err := fm.IsRegularFile(name)
		if err != nil {
			return nil, err
		}
		if regular {
			names = append(names, name)
		}
	}

	return names, nil
}

// =============================================================================
// READING
// =============================================================================

// ReadLines reads every line of name. Line terminators ("\n" or "\r\n") are
// stripped and a trailing terminator does not produce an empty last line.
func (fm *FileManager) ReadLines(name string) (lines []string, err error) {
	file, err := fm.Fs.Open(fm.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close %s: %w", name, cerr))
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return lines, nil
}

// =============================================================================
// WRITING
// =============================================================================

// WriteFileAtomic writes name through write. The content goes to a uniquely
// named temporary sibling that is renamed over name once it is complete and
// closed, so name never holds a partial write.
func (fm *FileManager) WriteFileAtomic(name string, write func(w io.Writer) error) (err error) {
	target := fm.Path(name)
	tmp := fm.Path(fmt.Sprintf(".%s.%s.tmp", name, uuid.New().String()))

	file, err := fm.Fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			// Best effort; the rename never happened.
			_ = fm.Fs.Remove(tmp)
		}
	}()

	buffered := bufio.NewWriter(file)
	werr := write(buffered)
	if werr == nil {
		werr = buffered.Flush()
	}
	if cerr := file.Close(); cerr != nil {
		werr = multierr.Append(werr, fmt.Errorf("failed to close %s: %w", name, cerr))
	}
	if werr != nil {
		return fmt.Errorf("failed to write %s: %w", name, werr)
	}

	if err := fm.Fs.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", name, err)
	}

	return nil
}
