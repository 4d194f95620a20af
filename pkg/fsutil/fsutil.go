// Package fsutil provides the file system primitives ixtext reads interaction
// files and writes parse output with: size-limited reads and atomic writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the read limit.
	ErrTooLarge = errors.New("file too large")
)

// FileInfo describes a file that was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Mode holds the file's permission bits. Zero for streams.
	Mode os.FileMode

	// Hash is the SHA-256 hash of the file content.
	Hash [32]byte
}

// Digest returns the hex-encoded content hash.
func (fi *FileInfo) Digest() string {
	if fi == nil {
		return ""
	}
	return hex.EncodeToString(fi.Hash[:])
}

// ReadFile reads a file of at most maxBytes bytes. A maxBytes of zero or less
// disables the limit.
func ReadFile(ctx context.Context, path string, maxBytes int64) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if maxBytes > 0 && stat.Size() > maxBytes {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, path, stat.Size(), maxBytes)
	}

	content, err := readLimited(file, path, maxBytes)
	if err != nil {
		return nil, nil, err
	}

	info := newFileInfo(path, content)
	info.ModTime = stat.ModTime()
	info.Mode = stat.Mode().Perm()

	return content, info, nil
}

// ReadFrom reads at most maxBytes bytes from r, naming it name in errors and
// in the returned FileInfo. A maxBytes of zero or less disables the limit.
func ReadFrom(ctx context.Context, r io.Reader, name string, maxBytes int64) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", name, err)
	}

	content, err := readLimited(r, name, maxBytes)
	if err != nil {
		return nil, nil, err
	}

	return content, newFileInfo(name, content), nil
}

// CheckModified reports whether the file info describes has changed on disk
// since it was read. A deleted file counts as modified.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, errors.New("check modified: nil file info")
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}
	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, classify(info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}

func readLimited(r io.Reader, name string, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		// Files may grow between Stat and Read, streams have no size at all.
		r = io.LimitReader(r, maxBytes+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, classify(name, err)
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, maxBytes)
	}
	return content, nil
}

func newFileInfo(path string, content []byte) *FileInfo {
	return &FileInfo{
		Path: path,
		Size: int64(len(content)),
		Hash: sha256.Sum256(content),
	}
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
