package restore

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/scan"
)

// Counts summarizes one restore pass.
type Counts struct {
	Restored int
	Skipped  int
	Deleted  int
}

// Run syncs destRoot to match snapshotRoot: files whose content differs (or
// is missing) are copied over, files absent from the snapshot are deleted.
// All restorations happen before any deletion. In dry-run mode the intended
// actions are reported and counted but nothing on disk changes.
//
// This is a destructive one-directional sync. Per-file failures are logged
// and skipped rather than aborting the pass.
func Run(snapshotRoot, destRoot string, rules *ignore.RuleSet, dryRun bool) Counts {
	var c Counts

	snapFiles := scan.List(snapshotRoot, rules)
	snapSet := make(map[string]struct{}, len(snapFiles))

	for _, rel := range snapFiles {
		snapSet[rel] = struct{}{}

		src := filepath.Join(snapshotRoot, rel)
		dst := filepath.Join(destRoot, rel)

		srcHash, err := scan.HashFile(src)
		if err != nil {
			log.Warnf("restore: cannot read snapshot file %s: %v", rel, err)
			c.Skipped++
			continue
		}
		if dstHash, err := scan.HashFile(dst); err == nil && dstHash == srcHash {
			c.Skipped++
			continue
		}

		if dryRun {
			fmt.Printf("Would restore: %s\n", rel)
			c.Restored++
			continue
		}
		if err := fsio.CopyFile(src, dst); err != nil {
			log.Warnf("restore: %s: %v", rel, err)
			c.Skipped++
			continue
		}
		fmt.Printf("Restored: %s\n", rel)
		c.Restored++
	}

	// Prune everything the snapshot does not contain.
	for _, rel := range scan.List(destRoot, rules) {
		if _, ok := snapSet[rel]; ok {
			continue
		}
		if dryRun {
			fmt.Printf("Would delete: %s\n", rel)
			c.Deleted++
			continue
		}
		if err := fsio.Remove(filepath.Join(destRoot, rel)); err != nil {
			log.Warnf("restore: delete %s: %v", rel, err)
			continue
		}
		fmt.Printf("Deleted: %s\n", rel)
		c.Deleted++
	}

	return c
}
