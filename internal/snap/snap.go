package snap

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/progress"
	"github.com/jonwyett/jw-ai-snapshot/internal/scan"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

// ErrNotFound reports that no snapshot folder exists for a requested index.
var ErrNotFound = errors.New("snapshot not found")

var indexPrefix = regexp.MustCompile(`^(\d+)_`)

// Info describes one stored snapshot.
type Info struct {
	Index  int
	Label  string
	Folder string
}

// Dir returns the snapshot storage root for a project.
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, config.SnapshotsDirName)
}

// FolderName builds the storage folder name for an index and raw label.
func FolderName(index int, label string) string {
	return util.PadIndex(index, config.IndexWidth) + "_" + util.SanitizeLabel(label)
}

// NextIndex returns one past the highest sequence number currently stored.
func NextIndex(snapshotsRoot string) int {
	entries, err := fsio.ReadDir(snapshotsRoot)
	if err != nil {
		return 1
	}

	max := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := indexPrefix.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// FindByIndex locates the snapshot folder with the given sequence number.
func FindByIndex(snapshotsRoot string, index int) (string, error) {
	entries, err := fsio.ReadDir(snapshotsRoot)
	if err != nil {
		return "", fmt.Errorf("%w: index %d", ErrNotFound, index)
	}

	prefix := util.PadIndex(index, config.IndexWidth) + "_"
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			return e.Name(), nil
		}
	}
	return "", fmt.Errorf("%w: index %d", ErrNotFound, index)
}

// List returns all stored snapshots ordered by index.
func List(snapshotsRoot string) []Info {
	entries, err := fsio.ReadDir(snapshotsRoot)
	if err != nil {
		return nil
	}

	var infos []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := indexPrefix.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Index:  n,
			Label:  strings.TrimPrefix(e.Name(), m[0]),
			Folder: e.Name(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Index < infos[j].Index })
	return infos
}

// Create copies the filtered project tree into a new snapshot folder and
// returns its name. A file that cannot be copied is logged and skipped so
// one locked file does not block the whole snapshot.
func Create(projectRoot string, index int, label string, rules *ignore.RuleSet) (string, error) {
	folder := FolderName(index, label)
	dest := filepath.Join(Dir(projectRoot), folder)
	if err := fsio.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir %q: %w", dest, err)
	}

	files := scan.List(projectRoot, rules)
	bar := progress.NewProgress(len(files), fmt.Sprintf("Copying %s", folder))
	defer bar.Finish()

	for _, rel := range files {
		if err := fsio.CopyFile(filepath.Join(projectRoot, rel), filepath.Join(dest, rel)); err != nil {
			log.Warnf("snapshot: skipping %s: %v", rel, err)
		}
		bar.Increment()
	}

	return folder, nil
}
