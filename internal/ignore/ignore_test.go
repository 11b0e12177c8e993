package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
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

func TestMatch_RuleShapes(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		// exact, and everything below it
		{"foo.txt", "foo.txt", true},
		{"foo.txt", "bar.txt", false},
		{"build", "build", true},
		{"build", "build/app.js", true},
		{"build", "builder/app.js", false},

		// directory patterns (trailing slash stripped on load)
		{"dist/", "dist", true},
		{"dist/", "dist/bundle.js", true},
		{"dist/", "distant", false},

		// wildcards match the full path or any single segment
		{"*.log", "debug.log", true},
		{"*.log", "logs/deep/debug.log", true},
		{"*.log", "debug.txt", false},
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},
		{"src/*.js", "src/app.js", true},
		{"src/*.js", "src/sub/app.js", false},
	}

	for _, tt := range cases {
		rs := NewRuleSet(tt.pattern)
		if got := rs.Excluded(tt.path); got != tt.want {
			t.Errorf("pattern %q path %q => got %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestResolve_OverridePrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, config.GitignoreName, "build/\n")

	// ALWAYS subtracts the base rule: build output is captured again.
	writeFile(t, root, config.IgnoreFileName, `
## ALWAYS SNAPSHOT
build/
`)
	rs := Resolve(root, false)
	if rs.Excluded("build/app.js") {
		t.Fatal("ALWAYS entry should re-include build/app.js")
	}

	// NEVER is applied last and wins over ALWAYS for the same pattern.
	writeFile(t, root, config.IgnoreFileName, `
## ALWAYS SNAPSHOT
build/
## NEVER SNAPSHOT
build/
`)
	rs = Resolve(root, false)
	if !rs.Excluded("build/app.js") {
		t.Fatal("NEVER entry should exclude build/app.js again")
	}
}

func TestResolve_SectionParsing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, config.IgnoreFileName, `
stray-line-before-any-section
# plain comment
#----------------------
## ALWAYS SNAPSHOT (Exceptions to .gitignore)
#----------------------
# commented-pattern
keep.me

## NEVER SNAPSHOT (Snapshot-specific ignores)
*.tmp
cache/
`)
	writeFile(t, root, config.GitignoreName, "keep.me\n")

	rs := Resolve(root, false)

	if rs.Excluded("keep.me") {
		t.Error("keep.me should be re-included by the ALWAYS section")
	}
	if !rs.Excluded("scratch.tmp") {
		t.Error("*.tmp from the NEVER section should exclude scratch.tmp")
	}
	if !rs.Excluded("cache/blob.bin") {
		t.Error("cache/ from the NEVER section should exclude its contents")
	}
	if rs.Excluded("stray-line-before-any-section") {
		t.Error("lines before any section marker must be ignored")
	}
	if rs.Excluded("commented-pattern") {
		t.Error("commented patterns must be ignored")
	}
}

func TestResolve_SnapshotsDirAlwaysExcluded(t *testing.T) {
	root := t.TempDir()

	// Even an ALWAYS entry naming the storage directory cannot pull
	// snapshots into snapshots: the force-add happens last.
	writeFile(t, root, config.IgnoreFileName, `
## ALWAYS SNAPSHOT
`+config.SnapshotsDirName+`
`)
	rs := Resolve(root, false)
	if !rs.Excluded(config.SnapshotsDirName) {
		t.Fatal("snapshot storage directory must always be excluded")
	}
	if !rs.Excluded(config.SnapshotsDirName + "/0001_x/a.txt") {
		t.Fatal("snapshot storage contents must always be excluded")
	}
}

func TestResolve_DevMode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, config.GitignoreName, "from-gitignore.txt\n")
	writeFile(t, root, config.IgnoreFileName, `
## NEVER SNAPSHOT
go.mod
secret.pem
`)

	rs := Resolve(root, true)

	if rs.Excluded("from-gitignore.txt") {
		t.Error("dev mode must skip the .gitignore base")
	}
	if rs.Excluded("go.mod") {
		t.Error("dev mode must keep the tool's own support files")
	}
	if !rs.Excluded("secret.pem") {
		t.Error("ordinary NEVER entries still apply in dev mode")
	}
}

func TestResolve_MissingFilesAreFine(t *testing.T) {
	root := t.TempDir()

	rs := Resolve(root, false)
	if rs.Excluded("anything.txt") {
		t.Error("no config files should mean no exclusions beyond the storage dir")
	}
	if !rs.Excluded(config.SnapshotsDirName) {
		t.Error("storage dir exclusion must not depend on config files")
	}
}
