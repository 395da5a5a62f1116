// Package security hardens the file and CLI-input boundaries the resolver
// touches directly: the config file it loads/saves, and the flags/args a
// user passes on the command line.
package security

import (
	"fmt"
	"os"
	"path/filepath"
)

// SymlinkPolicy controls how a symlinked path is handled.
type SymlinkPolicy int

const (
	// RejectSymlinks rejects any symlink and returns an error.
	RejectSymlinks SymlinkPolicy = iota
	// ResolveSymlinks resolves the symlink and uses its target.
	ResolveSymlinks
)

// SafeFileInfo describes a path after a symlink check.
type SafeFileInfo struct {
	OriginalPath string
	ResolvedPath string
	IsSymlink    bool
}

// CheckSymlink inspects path under the given policy.
func CheckSymlink(path string, policy SymlinkPolicy) (*SafeFileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	result := &SafeFileInfo{OriginalPath: path, ResolvedPath: path, IsSymlink: info.Mode()&os.ModeSymlink != 0}
	if !result.IsSymlink {
		return result, nil
	}

	switch policy {
	case RejectSymlinks:
		return nil, fmt.Errorf("symlinks are not allowed: %s", path)
	case ResolveSymlinks:
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil, fmt.Errorf("resolving symlink %s: %w", path, err)
		}
		result.ResolvedPath = resolved
		return result, nil
	default:
		return nil, fmt.Errorf("invalid symlink policy: %d", policy)
	}
}

// SafeReadFile reads path after a symlink check, guarding against a
// config or manifest path quietly tracking a symlink to an unexpected
// target.
func SafeReadFile(path string, policy SymlinkPolicy) ([]byte, error) {
	safeInfo, err := CheckSymlink(path, policy)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(safeInfo.ResolvedPath)
}

// SafeWriteFile writes data to path after checking both path itself (if it
// already exists) and its parent directory for symlinks.
func SafeWriteFile(path string, data []byte, perm os.FileMode, policy SymlinkPolicy) error {
	if _, err := os.Lstat(path); err == nil {
		safeInfo, err := CheckSymlink(path, policy)
		if err != nil {
			return fmt.Errorf("existing file symlink check: %w", err)
		}
		path = safeInfo.ResolvedPath
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		if _, err := os.Lstat(dir); err == nil {
			safeInfo, err := CheckSymlink(dir, policy)
			if err != nil {
				return fmt.Errorf("parent directory symlink check: %w", err)
			}
			if safeInfo.ResolvedPath != dir {
				path = filepath.Join(safeInfo.ResolvedPath, filepath.Base(path))
			}
		}
	}

	return os.WriteFile(path, data, perm)
}
