package diff

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/scan"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

// File statuses in a comparison.
const (
	StatusAdded    = "added"
	StatusRemoved  = "removed"
	StatusModified = "modified"
	StatusError    = "error"
)

// FileEntry is one classified path in a Result.
type FileEntry struct {
	File         string `json:"file"`
	Status       string `json:"status"`
	LinesChanged *int   `json:"lines_changed,omitempty"`
	Diff         string `json:"diff,omitempty"`
	Message      string `json:"message,omitempty"`
}

// Result holds one comparison: the two roots by name and the classified
// entries sorted by path. Byte-identical files produce no entry.
type Result struct {
	Base    string      `json:"base"`
	Compare string      `json:"compare"`
	Files   []FileEntry `json:"files"`
}

// Compare classifies every path present under rootA or rootB as added,
// removed or modified. Both roots are listed with the same rule set. A
// file that cannot be hashed yields an error entry instead of aborting
// the comparison.
func Compare(rootA, rootB string, rules *ignore.RuleSet) *Result {
	result := &Result{
		Base:    filepath.Base(rootA),
		Compare: filepath.Base(rootB),
		Files:   []FileEntry{},
	}

	inA := toSet(scan.List(rootA, rules))
	inB := toSet(scan.List(rootB, rules))

	all := make(map[string]struct{}, len(inA)+len(inB))
	for p := range inA {
		all[p] = struct{}{}
	}
	for p := range inB {
		all[p] = struct{}{}
	}

	for _, rel := range util.SortedKeys(all) {
		_, a := inA[rel]
		_, b := inB[rel]

		switch {
		case a && !b:
			result.Files = append(result.Files, FileEntry{File: rel, Status: StatusRemoved})
		case !a && b:
			result.Files = append(result.Files, FileEntry{File: rel, Status: StatusAdded})
		default:
			if e, changed := compareOne(rel, filepath.Join(rootA, rel), filepath.Join(rootB, rel)); changed {
				result.Files = append(result.Files, e)
			}
		}
	}

	return result
}

// compareOne hashes both versions of a shared path and, when they differ,
// builds the modified entry with its patch and coarse line delta.
func compareOne(rel, pathA, pathB string) (FileEntry, bool) {
	hashA, errA := scan.HashFile(pathA)
	hashB, errB := scan.HashFile(pathB)
	if errA != nil || errB != nil {
		log.Debugf("diff: cannot hash %s: %v %v", rel, errA, errB)
		return FileEntry{
			File:    rel,
			Status:  StatusError,
			Message: "could not read file for comparison",
		}, true
	}
	if hashA == hashB {
		return FileEntry{}, false
	}

	// Patch generation is best-effort: read failures or binary content
	// still report the file as modified, just without a patch body.
	contentA, _ := fsio.ReadFile(pathA)
	contentB, _ := fsio.ReadFile(pathB)

	delta := lineDelta(contentA, contentB)
	return FileEntry{
		File:         rel,
		Status:       StatusModified,
		LinesChanged: &delta,
		Diff:         unified(rel, contentA, contentB),
	}, true
}

func toSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}
