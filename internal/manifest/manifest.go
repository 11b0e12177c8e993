package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/diff"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/scan"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

const separator = "----------------------------------------"

// Record appends one change-manifest block for a freshly created snapshot
// to the log in snapshotsRoot. The block summarizes the diff against the
// immediate predecessor; the first snapshot lists its own files as added.
// The log is append-only: prior content is never rewritten.
func Record(snapshotsRoot string, newIndex int, label string, rules *ignore.RuleSet) error {
	padded := util.PadIndex(newIndex, config.IndexWidth)
	newPath := filepath.Join(snapshotsRoot, snap.FolderName(newIndex, label))
	max := config.ManifestMaxEntries()

	var lines []string
	lines = append(lines,
		fmt.Sprintf("[%s] %s - %q", padded, time.Now().Format("2006-01-02 15:04:05"), label),
		"")

	prevFolder := ""
	if newIndex > 1 {
		prevFolder, _ = snap.FindByIndex(snapshotsRoot, newIndex-1)
	}

	if prevFolder == "" {
		// First snapshot ever, or the predecessor was deleted.
		files := scan.List(newPath, rules)
		if len(files) > 0 {
			lines = append(lines, "Initial snapshot", "", "Added:")
			n := min(len(files), max)
			for _, f := range files[:n] {
				lines = append(lines, "  - "+f)
			}
			if len(files) > max {
				lines = append(lines, fmt.Sprintf("  ...and %d more files", len(files)-max))
			}
		}
	} else {
		res := diff.Compare(filepath.Join(snapshotsRoot, prevFolder), newPath, rules)

		var changed, added, removed []string
		for _, f := range res.Files {
			switch f.Status {
			case diff.StatusModified:
				changed = append(changed, f.File)
			case diff.StatusAdded:
				added = append(added, f.File)
			case diff.StatusRemoved:
				removed = append(removed, f.File)
			}
		}

		lines = append(lines, bucket("Changed", changed, max)...)
		lines = append(lines, bucket("Added", added, max)...)
		lines = append(lines, bucket("Removed", removed, max)...)
	}

	lines = append(lines, separator, "")

	f, err := os.OpenFile(filepath.Join(snapshotsRoot, config.LogFileName),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open manifest log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("append manifest: %w", err)
	}
	return nil
}

// bucket renders one labeled file list, truncated to max entries with a
// single summary line for the rest. Empty buckets render nothing.
func bucket(name string, files []string, max int) []string {
	if len(files) == 0 {
		return nil
	}

	out := []string{name + ":"}
	n := min(len(files), max)
	for _, f := range files[:n] {
		out = append(out, "  - "+f)
	}
	if len(files) > max {
		out = append(out, fmt.Sprintf("  ...and %d more %s files", len(files)-max, strings.ToLower(name)))
	}
	return append(out, "")
}
