package fsio

import (
	"io"
	"os"
	"path/filepath"
)

// Hooks for filesystem operations
// used for testing
var (
	Open           = os.Open
	Create         = os.Create
	ReadFile       = os.ReadFile
	WriteFile      = os.WriteFile
	StatFile       = os.Stat
	ReadDir        = os.ReadDir
	Remove         = os.Remove
	Rename         = os.Rename
	CreateTempFile = os.CreateTemp
	MkdirAll       = os.MkdirAll
	Exists         = func(path string) bool { _, err := StatFile(path); return err == nil }
	IsDir          = func(path string) bool { fi, err := StatFile(path); return err == nil && fi.IsDir() }
)

// CopyFile copies src to dst, creating parent directories as needed.
func CopyFile(src, dst string) error {
	if err := MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
