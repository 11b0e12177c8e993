package scan

import (
	"crypto/sha256"
	"fmt"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/mmap"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
)

// HashFile computes the content digest of a file using the selected
// algorithm from config. The whole file is read through a memory map.
func HashFile(path string) (string, error) {
	data, err := readAll(path)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	return hashBytes(data), nil
}

func hashBytes(data []byte) string {
	switch config.SelectedHash() {
	case "sha256":
		sum := sha256.Sum256(data)
		return fmt.Sprintf("%x", sum[:])
	default:
		return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
	}
}

func readAll(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if len(data) == 0 {
		return data, nil
	}
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, err
	}
	return data, nil
}
