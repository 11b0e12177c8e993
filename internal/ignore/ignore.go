package ignore

import (
	"bufio"
	"path/filepath"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
)

// Override file section markers. Matched by substring so the surrounding
// comment decoration in the template can change without breaking parsing.
const (
	alwaysMarker = "## ALWAYS SNAPSHOT"
	neverMarker  = "## NEVER SNAPSHOT"
)

type section int

const (
	sectionNone section = iota
	sectionAlways
	sectionNever
)

// RuleSet is the resolved set of exclusion rules for one invocation.
type RuleSet struct {
	rules map[string]Rule
}

// NewRuleSet builds a RuleSet from raw pattern lines, mainly for tests and
// for callers that already hold a pattern list.
func NewRuleSet(patterns ...string) *RuleSet {
	rs := &RuleSet{rules: make(map[string]Rule)}
	for _, p := range patterns {
		rs.add(p)
	}
	return rs
}

// Resolve loads the base .gitignore rules plus the two-section override file
// and produces the final rule set. Missing files contribute no patterns.
//
// Application order is fixed: base rules, then ALWAYS removals, then NEVER
// additions, then the snapshot storage directory itself. In dev mode the
// .gitignore base is skipped entirely and the tool's own support files are
// never excluded, so the tool can snapshot itself.
func Resolve(projectRoot string, devMode bool) *RuleSet {
	rs := &RuleSet{rules: make(map[string]Rule)}

	if !devMode {
		for _, line := range readPatternLines(filepath.Join(projectRoot, config.GitignoreName)) {
			rs.add(line)
		}
	}

	always, never := parseOverride(filepath.Join(projectRoot, config.IgnoreFileName))

	for _, p := range always {
		rs.remove(p)
	}
	for _, p := range never {
		if devMode && slices.Contains(config.ProtectedDevFiles, cleanPattern(p)) {
			continue
		}
		rs.add(p)
	}

	// The storage directory is excluded unconditionally, last, so no user
	// configuration can pull snapshots into snapshots.
	rs.add(config.SnapshotsDirName)

	log.Debugf("ignore: resolved %d rules (dev mode: %v)", len(rs.rules), devMode)
	return rs
}

// readPatternLines reads one file of VCS-ignore syntax: one pattern per
// line, blank lines and #-comments skipped.
func readPatternLines(path string) []string {
	f, err := fsio.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseOverride reads the two-section override file. Lines before any
// section marker are skipped, as are blanks and comments.
func parseOverride(path string) (always, never []string) {
	f, err := fsio.Open(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	cur := sectionNone
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			switch {
			case strings.Contains(line, alwaysMarker):
				cur = sectionAlways
			case strings.Contains(line, neverMarker):
				cur = sectionNever
			}
			continue
		}
		switch cur {
		case sectionAlways:
			always = append(always, line)
		case sectionNever:
			never = append(never, line)
		}
	}
	return always, never
}

func (rs *RuleSet) add(pattern string) {
	r := newRule(pattern)
	rs.rules[r.pattern] = r
}

// remove subtracts a pattern. Removal is by literal pattern text after
// normalization; it does not resolve path hierarchy overlaps, so removing
// "build/keep.js" does not unhide it from a "build/" rule.
func (rs *RuleSet) remove(pattern string) {
	delete(rs.rules, cleanPattern(pattern))
}

// Patterns returns the resolved pattern texts, sorted.
func (rs *RuleSet) Patterns() []string {
	out := make([]string, 0, len(rs.rules))
	for p := range rs.rules {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
