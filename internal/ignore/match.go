package ignore

import (
	"path/filepath"
	"strings"
)

type ruleKind int

const (
	// ruleExact matches the path itself or anything below it.
	ruleExact ruleKind = iota
	// ruleDir is an exact rule whose source pattern carried a trailing
	// separator. Kept distinct so the origin of a rule stays visible.
	ruleDir
	// ruleWildcard compiles glob characters against the full path and
	// against every path segment, so "*.log" hits at any depth.
	ruleWildcard
)

// Rule is one exclusion pattern in its normalized form.
type Rule struct {
	pattern string
	kind    ruleKind
}

func newRule(pattern string) Rule {
	clean := cleanPattern(pattern)
	switch {
	case strings.ContainsAny(clean, "*?["):
		return Rule{pattern: clean, kind: ruleWildcard}
	case strings.HasSuffix(pattern, "/"):
		return Rule{pattern: clean, kind: ruleDir}
	default:
		return Rule{pattern: clean, kind: ruleExact}
	}
}

func cleanPattern(pattern string) string {
	return strings.TrimRight(filepath.ToSlash(strings.TrimSpace(pattern)), "/")
}

// Excluded reports whether relPath is excluded by any rule. There is no
// re-inclusion at this layer; ALWAYS overrides are already subtracted
// during Resolve.
func (rs *RuleSet) Excluded(relPath string) bool {
	path := filepath.ToSlash(relPath)
	for _, r := range rs.rules {
		if r.match(path) {
			return true
		}
	}
	return false
}

func (r Rule) match(path string) bool {
	switch r.kind {
	case ruleWildcard:
		if ok, _ := filepath.Match(r.pattern, path); ok {
			return true
		}
		for _, seg := range strings.Split(path, "/") {
			if ok, _ := filepath.Match(r.pattern, seg); ok {
				return true
			}
		}
		return false
	default:
		return path == r.pattern || strings.HasPrefix(path, r.pattern+"/")
	}
}
