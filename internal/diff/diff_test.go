package diff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

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

func statuses(res *Result) map[string]string {
	m := make(map[string]string, len(res.Files))
	for _, f := range res.Files {
		m[f.File] = f.Status
	}
	return m
}

func TestCompare_IdenticalTrees(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	for _, root := range []string{a, b} {
		writeFile(t, root, "x.txt", "one\ntwo\n")
		writeFile(t, root, "sub/y.txt", "three\n")
	}

	res := Compare(a, b, ignore.NewRuleSet())
	if len(res.Files) != 0 {
		t.Fatalf("identical trees must yield no entries, got %v", res.Files)
	}
}

func TestCompare_Classification(t *testing.T) {
	// Snapshot state: a.txt (2 lines), b.txt. Current state: a.txt grew to
	// 3 lines, b.txt deleted, c.txt added, ignored.txt present but excluded.
	snap := t.TempDir()
	cur := t.TempDir()

	writeFile(t, snap, "a.txt", "lineA1\nlineA2\n")
	writeFile(t, snap, "b.txt", "lineB1\n")

	writeFile(t, cur, "a.txt", "lineA1\nlineA2\nlineA3\n")
	writeFile(t, cur, "c.txt", "lineC1\n")
	writeFile(t, cur, "ignored.txt", "nope\n")

	res := Compare(snap, cur, ignore.NewRuleSet("ignored.txt"))

	got := statuses(res)
	want := map[string]string{
		"a.txt": StatusModified,
		"b.txt": StatusRemoved,
		"c.txt": StatusAdded,
	}
	if len(got) != len(want) {
		t.Fatalf("got entries %v, want %v", got, want)
	}
	for file, status := range want {
		if got[file] != status {
			t.Errorf("%s = %q, want %q", file, got[file], status)
		}
	}

	// Entries are sorted by path.
	for i := 1; i < len(res.Files); i++ {
		if res.Files[i-1].File >= res.Files[i].File {
			t.Fatalf("entries not sorted: %v", res.Files)
		}
	}
}

func TestCompare_AntiSymmetry(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	writeFile(t, a, "only-a.txt", "a\n")
	writeFile(t, b, "only-b.txt", "b\n")
	writeFile(t, a, "both.txt", "v1\n")
	writeFile(t, b, "both.txt", "v2\n")

	forward := statuses(Compare(a, b, ignore.NewRuleSet()))
	backward := statuses(Compare(b, a, ignore.NewRuleSet()))

	if forward["only-a.txt"] != StatusRemoved || backward["only-a.txt"] != StatusAdded {
		t.Errorf("only-a.txt: forward %q backward %q", forward["only-a.txt"], backward["only-a.txt"])
	}
	if forward["only-b.txt"] != StatusAdded || backward["only-b.txt"] != StatusRemoved {
		t.Errorf("only-b.txt: forward %q backward %q", forward["only-b.txt"], backward["only-b.txt"])
	}
	if forward["both.txt"] != StatusModified || backward["both.txt"] != StatusModified {
		t.Errorf("both.txt must be modified in both directions")
	}
}

func TestCompare_ModifiedEntryDetail(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeFile(t, a, "f.txt", "one\ntwo\n")
	writeFile(t, b, "f.txt", "one\ntwo\nthree\nfour\n")

	res := Compare(a, b, ignore.NewRuleSet())
	if len(res.Files) != 1 {
		t.Fatalf("want one entry, got %v", res.Files)
	}

	e := res.Files[0]
	if e.LinesChanged == nil || *e.LinesChanged != 2 {
		t.Errorf("LinesChanged = %v, want 2", e.LinesChanged)
	}
	if !strings.Contains(e.Diff, "+three\n") || !strings.Contains(e.Diff, "@@") {
		t.Errorf("patch body missing expected hunk content:\n%s", e.Diff)
	}
}

func TestCompare_SameLineCountEdit(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeFile(t, a, "f.txt", "alpha\n")
	writeFile(t, b, "f.txt", "bravo\n")

	res := Compare(a, b, ignore.NewRuleSet())
	if len(res.Files) != 1 || res.Files[0].Status != StatusModified {
		t.Fatalf("want one modified entry, got %v", res.Files)
	}
	// The coarse metric reports 0 for in-place edits; the patch still
	// carries the change.
	if *res.Files[0].LinesChanged != 0 {
		t.Errorf("LinesChanged = %d, want 0", *res.Files[0].LinesChanged)
	}
	if !strings.Contains(res.Files[0].Diff, "-alpha") {
		t.Errorf("patch missing removed line:\n%s", res.Files[0].Diff)
	}
}

func TestCompare_UnreadableFileGetsErrorEntry(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeFile(t, a, "ok.txt", "v1\n")
	writeFile(t, b, "ok.txt", "v2\n")

	// A dangling symlink is listed by the walk but cannot be opened for
	// hashing.
	for _, root := range []string{a, b} {
		if err := os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "bad.txt")); err != nil {
			t.Skipf("cannot create symlink: %v", err)
		}
	}

	res := Compare(a, b, ignore.NewRuleSet())

	got := statuses(res)
	if got["bad.txt"] != StatusError {
		t.Errorf("bad.txt = %q, want %q", got["bad.txt"], StatusError)
	}
	// The failure is local: sibling files are still classified.
	if got["ok.txt"] != StatusModified {
		t.Errorf("ok.txt = %q, want %q", got["ok.txt"], StatusModified)
	}

	for _, f := range res.Files {
		if f.File != "bad.txt" {
			continue
		}
		if f.Message == "" {
			t.Error("error entry must carry a human-readable message")
		}
		if f.Diff != "" || f.LinesChanged != nil {
			t.Errorf("error entry must not carry patch detail: %+v", f)
		}
	}
}

func TestCompare_BinaryContent(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeFile(t, a, "blob.bin", "x\x00y")
	writeFile(t, b, "blob.bin", "x\x00z")

	res := Compare(a, b, ignore.NewRuleSet())
	if len(res.Files) != 1 || res.Files[0].Status != StatusModified {
		t.Fatalf("binary change must still report modified, got %v", res.Files)
	}
	if res.Files[0].Diff != "" {
		t.Errorf("binary content should produce an empty patch body")
	}
}
