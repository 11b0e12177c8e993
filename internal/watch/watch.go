package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/manifest"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
)

// Watcher takes a snapshot automatically once filesystem changes settle.
// Events are aggregated over a debounce window so a burst of writes (a
// build, a formatter pass) produces one snapshot, not dozens.
type Watcher struct {
	projectRoot string
	labelPrefix string
	devMode     bool
	debounce    time.Duration
}

func New(projectRoot, labelPrefix string, devMode bool, debounce time.Duration) *Watcher {
	return &Watcher{
		projectRoot: projectRoot,
		labelPrefix: labelPrefix,
		devMode:     devMode,
		debounce:    debounce,
	}
}

// Run watches the project tree until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fsw.Close()

	rules := ignore.Resolve(w.projectRoot, w.devMode)
	if err := w.addDirs(fsw, w.projectRoot, rules); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			rel, err := filepath.Rel(w.projectRoot, ev.Name)
			if err != nil || rules.Excluded(filepath.ToSlash(rel)) {
				continue
			}
			// New directories need their own watches.
			if ev.Op.Has(fsnotify.Create) && fsio.IsDir(ev.Name) {
				w.addDirs(fsw, ev.Name, rules)
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch: %v", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.takeSnapshot(); err != nil {
				log.Warnf("watch: snapshot failed: %v", err)
			}
		}
	}
}

// addDirs registers root and every non-excluded directory beneath it.
func (w *Watcher) addDirs(fsw *fsnotify.Watcher, root string, rules *ignore.RuleSet) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.projectRoot, path)
		if err != nil {
			return nil
		}
		if rel != "." && rules.Excluded(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			log.Debugf("watch: cannot watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) takeSnapshot() error {
	// Re-resolve so ignore edits made while watching take effect.
	rules := ignore.Resolve(w.projectRoot, w.devMode)
	root := snap.Dir(w.projectRoot)

	index := snap.NextIndex(root)
	label := fmt.Sprintf("%s %s", w.labelPrefix, time.Now().Format("2006-01-02 15:04:05"))

	folder, err := snap.Create(w.projectRoot, index, label, rules)
	if err != nil {
		return err
	}
	if err := manifest.Record(root, index, label, rules); err != nil {
		return err
	}

	fmt.Printf("Created snapshot %s\n", folder)
	return nil
}
