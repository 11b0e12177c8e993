package util

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
)

// WriteJSON writes a JSON file atomically via a temp file rename.
var WriteJSON = func(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := fsio.CreateTempFile(filepath.Dir(path), "tmp-*.json")
	if err != nil {
		return err
	}
	defer fsio.Remove(tmp.Name()) // ensure cleanup on error

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return fsio.Rename(tmp.Name(), path)
}

// ReadJSON reads a JSON file and unmarshals it into v
var ReadJSON = func(path string, v any) error {
	data, err := fsio.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SortedKeys returns the keys of a map sorted alphabetically.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	labelSpaces = regexp.MustCompile(`\s+`)
	labelUnsafe = regexp.MustCompile(`[^a-z0-9._-]`)
)

// SanitizeLabel makes a snapshot label filesystem-safe: lowercase, spaces
// collapsed to underscores, anything outside [a-z0-9._-] stripped.
func SanitizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = labelSpaces.ReplaceAllString(label, "_")
	return labelUnsafe.ReplaceAllString(label, "")
}

// PadIndex formats a snapshot sequence number with leading zeros.
func PadIndex(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
