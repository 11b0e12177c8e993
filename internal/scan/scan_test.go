package scan

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestList_SortedRelativePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.txt", "b")
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "sub/dir/c.txt", "c")

	got := List(root, ignore.NewRuleSet())
	want := []string{"a.txt", "b.txt", "sub/dir/c.txt"}
	if !slices.Equal(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestList_NeverIncludesSnapshotsDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, filepath.Join(config.SnapshotsDirName, "0001_x", "a.txt"), "old")

	got := List(root, ignore.NewRuleSet())
	if !slices.Equal(got, []string{"a.txt"}) {
		t.Fatalf("List = %v, storage dir must never be listed", got)
	}
}

func TestList_PrunesExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.txt", "x")
	writeFile(t, root, "node_modules/pkg/index.js", "x")
	writeFile(t, root, "logs/app.log", "x")

	got := List(root, ignore.NewRuleSet("node_modules/", "*.log"))
	if !slices.Equal(got, []string{"keep.txt"}) {
		t.Fatalf("List = %v, want only keep.txt", got)
	}
}

func TestHashFile_ChangeDetection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "same content")
	writeFile(t, root, "b.txt", "same content")
	writeFile(t, root, "c.txt", "different content")

	hashA, err := HashFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	hashB, err := HashFile(filepath.Join(root, "b.txt"))
	if err != nil {
		t.Fatal(err)
	}
	hashC, err := HashFile(filepath.Join(root, "c.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if hashA != hashB {
		t.Error("identical content must hash identically")
	}
	if hashA == hashC {
		t.Error("different content must hash differently")
	}
}

func TestHashFile_EmptyAndMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty.txt", "")

	if _, err := HashFile(filepath.Join(root, "empty.txt")); err != nil {
		t.Errorf("empty file should hash cleanly: %v", err)
	}
	if _, err := HashFile(filepath.Join(root, "missing.txt")); err == nil {
		t.Error("missing file must return an error")
	}
}
