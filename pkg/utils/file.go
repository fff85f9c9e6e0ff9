package utils

import (
	"os"
	"path/filepath"
)

// ToAbsolutePath converts a relative filepath to absolute.
func ToAbsolutePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(base, path))
}

// WorkingPath resolves path against the current working directory.
func WorkingPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return ToAbsolutePath(wd, path)
}
