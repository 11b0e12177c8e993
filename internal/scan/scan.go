package scan

import (
	"io/fs"
	"path/filepath"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
)

// List walks root and returns the relative POSIX paths of every file not
// excluded by rules. Excluded directories are pruned without descending.
// Unreadable entries are skipped so one locked file cannot block a whole
// snapshot. The result is sorted and duplicate-free.
func List(root string, rules *ignore.RuleSet) []string {
	var paths []string

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("scan: skipping unreadable %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			// Never descend into the storage directory at the root.
			if rel == config.SnapshotsDirName || rules.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if rules.Excluded(rel) {
			return nil
		}

		paths = append(paths, rel)
		return nil
	})

	slices.Sort(paths)
	return paths
}
