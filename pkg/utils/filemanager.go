// =============================================================================
// Daily Sales - File Manager Utility
// =============================================================================
//
// This module provides the file utilities shared by the session storage and
// the export sinks:
//   - Directory management
//   - Atomic file writes (write temp file, fsync, rename)
//   - Output file naming
//   - Retention of old export files
//
// ATOMIC WRITES:
//   The session state file must never be observed half-written. WriteFileAtomic
//   writes into a temporary file in the same directory and renames it over the
//   target, which is atomic on POSIX filesystems.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fileNameReplacer keeps generated names inside the output directory.
var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", " ", "_")

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for exports.
type FileManager struct {
	// OutputDir is the directory where exported reports are placed.
	OutputDir string

	// NameFormat is the pattern used to name exported files.
	// See GenerateOutputFileName for the supported placeholders.
	NameFormat string
}

// NewFileManager creates a new FileManager for the given output directory.
func NewFileManager(outputDir, nameFormat string) *FileManager {
	if nameFormat == "" {
		nameFormat = "sales_{date}_{uuid}"
	}
	return &FileManager{
		OutputDir:  outputDir,
		NameFormat: nameFormat,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// OutputPath returns a fresh path inside OutputDir for a file with the given
// extension (for example ".txt" or ".pdf").
func (fm *FileManager) OutputPath(ext string, params map[string]string) string {
	return filepath.Join(fm.OutputDir, GenerateOutputFileName(fm.NameFormat, params, ext))
}

// WriteOutput writes data to a new file in OutputDir and returns its path.
func (fm *FileManager) WriteOutput(ext string, params map[string]string, data []byte) (string, error) {
	if err := fm.EnsureDirectories(); err != nil {
		return "", err
	}

	path := fm.OutputPath(ext, params)
	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//             Any key of params can be used as {key} as well.
//   - params: A map of placeholder values.
//   - ext: The extension to enforce, including the dot.
//
// EXAMPLE:
//   format: "sales_{date}_{uuid}"
//   ext:    ".pdf"
//   output: "sales_20261019_a1b2c3d4-e5f6-7890-abcd-ef1234567890.pdf"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Day strings such as 10/19/2026 must not create subdirectories.
	result = fileNameReplacer.Replace(result)

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// IsOutputName reports whether name looks like a file this manager wrote: it
// carries one of exts and starts with the fixed part of NameFormat (the text
// before the first placeholder).
func (fm *FileManager) IsOutputName(name string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	known := false
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			known = true
			break
		}
	}
	if !known {
		return false
	}
	return strings.HasPrefix(name, outputPrefix(fm.NameFormat))
}

// CleanOldOutputs removes files in OutputDir older than maxAge that
// IsOutputName accepts. Anything else in the directory is left alone.
func (fm *FileManager) CleanOldOutputs(maxAge time.Duration, now time.Time, exts ...string) (int, error) {
	return CleanOldFiles(fm.OutputDir, maxAge, now, func(name string) bool {
		return fm.IsOutputName(name, exts...)
	})
}

// outputPrefix returns the part of format before its first placeholder, with
// the same character replacements GenerateOutputFileName applies.
func outputPrefix(format string) string {
	if i := strings.Index(format, "{"); i >= 0 {
		format = format[:i]
	}
	return fileNameReplacer.Replace(format)
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic replaces path with data so that readers see either the old
// content or the new content, never a mix.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any failure path.
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	committed = true
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CleanOldFiles removes regular files in dir whose modification time is older
// than maxAge relative to now. Subdirectories are left alone. When match is
// not nil, only files whose base name it accepts are considered.
//
// RETURNS:
//   - The number of files removed.
//   - An error if the directory cannot be read or a file cannot be removed.
func CleanOldFiles(dir string, maxAge time.Duration, now time.Time, match func(name string) bool) (int, error) {
	cutoff := now.Add(-maxAge)
	removed := 0

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match != nil && !match(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to clean old files: %w", err)
			}
			removed++
		}
	}

	return removed, nil
}
