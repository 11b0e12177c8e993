package regress

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jonwyett/jw-ai-snapshot/internal/diff"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
)

// ErrNoSuccessor reports that the base snapshot exists but has no snapshot
// with the next sequence number to compare against. Distinct from
// snap.ErrNotFound: the precondition failed, the base is fine.
var ErrNoSuccessor = errors.New("no successor snapshot")

// Analysis bundles the two comparisons that share one base snapshot.
type Analysis struct {
	BaseIndex  int
	BaseFolder string
	NextIndex  int
	NextFolder string
	Causal     *diff.Result // base vs immediate successor
	Cumulative *diff.Result // base vs current project tree
}

// Analyze resolves the base snapshot and its immediate successor by
// sequence number (gaps are not skipped) and runs the differ twice with
// the same rule set.
func Analyze(projectRoot string, baseIndex int, rules *ignore.RuleSet) (*Analysis, error) {
	root := snap.Dir(projectRoot)

	baseFolder, err := snap.FindByIndex(root, baseIndex)
	if err != nil {
		return nil, fmt.Errorf("base snapshot: %w", err)
	}

	nextIndex := baseIndex + 1
	nextFolder, err := snap.FindByIndex(root, nextIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot %d appears to be the latest", ErrNoSuccessor, baseIndex)
	}

	basePath := filepath.Join(root, baseFolder)

	causal := diff.Compare(basePath, filepath.Join(root, nextFolder), rules)
	cumulative := diff.Compare(basePath, projectRoot, rules)
	cumulative.Compare = "current"

	return &Analysis{
		BaseIndex:  baseIndex,
		BaseFolder: baseFolder,
		NextIndex:  nextIndex,
		NextFolder: nextFolder,
		Causal:     causal,
		Cumulative: cumulative,
	}, nil
}
